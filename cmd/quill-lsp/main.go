// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"quill/internal/lsp"
)

const lsName = "quill"

var handler protocol.Handler

func main() {
	commonlog.Configure(1, nil)

	quillHandler := lsp.NewQuillHandler()

	handler = protocol.Handler{
		Initialize:             quillHandler.Initialize,
		Initialized:            quillHandler.Initialized,
		Shutdown:               quillHandler.Shutdown,
		SetTrace:               quillHandler.SetTrace,
		TextDocumentDidOpen:    quillHandler.TextDocumentDidOpen,
		TextDocumentDidClose:   quillHandler.TextDocumentDidClose,
		TextDocumentDidChange:  quillHandler.TextDocumentDidChange,
		TextDocumentCompletion: quillHandler.TextDocumentCompletion,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting quill LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting quill LSP server:", err)
		os.Exit(1)
	}
}
