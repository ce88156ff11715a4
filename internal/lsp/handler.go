// Package lsp serves parse diagnostics for quill documents over the
// Language Server Protocol.
package lsp

import (
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Statement keywords offered as completions.
var keywords = []string{
	"ALLOCATE", "SEED", "LET", "H", "X", "Z", "T", "TDG", "RZ",
	"CNOT", "SWAP", "CCX", "HADAMARD_LAYER", "DIFFUSION",
	"MEASURE", "AS", "SHOTS", "FOR", "IN",
}

// QuillHandler implements the LSP handlers for the quill language.
type QuillHandler struct {
	mu      sync.RWMutex
	content map[protocol.DocumentUri]string
}

func NewQuillHandler() *QuillHandler {
	return &QuillHandler{content: make(map[protocol.DocumentUri]string)}
}

// Initialize advertises full-document sync and keyword completion.
func (h *QuillHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
		},
	}, nil
}

func (h *QuillHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (h *QuillHandler) Shutdown(ctx *glsp.Context) error {
	return nil
}

func (h *QuillHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen stores the document and publishes diagnostics.
func (h *QuillHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

// TextDocumentDidChange re-diagnoses on every full-document change.
func (h *QuillHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			h.update(ctx, params.TextDocument.URI, c.Text)
		case protocol.TextDocumentContentChangeEvent:
			// full sync is advertised, so a ranged change still carries
			// the whole document
			h.update(ctx, params.TextDocument.URI, c.Text)
		}
	}
	return nil
}

func (h *QuillHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, params.TextDocument.URI)
	return nil
}

// TextDocumentCompletion offers the statement keywords.
func (h *QuillHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	kind := protocol.CompletionItemKindKeyword
	items := make([]protocol.CompletionItem, 0, len(keywords))
	for _, kw := range keywords {
		kw := kw
		items = append(items, protocol.CompletionItem{Label: kw, Kind: &kind})
	}
	return &protocol.CompletionList{IsIncomplete: false, Items: items}, nil
}

func (h *QuillHandler) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	h.mu.Lock()
	h.content[uri] = text
	h.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: Diagnose(string(uri), text),
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
