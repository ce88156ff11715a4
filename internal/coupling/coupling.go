// Package coupling models the hardware connectivity graph the router
// schedules against: undirected edges between physical qubit indices.
package coupling

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	ErrMalformedCouplingSpec     = errors.New("malformed coupling spec")
	ErrDisconnectedCouplingGraph = errors.New("disconnected coupling graph")
)

// Map is an undirected graph over physical qubits 0..Size()-1. The
// adjacency lists are kept sorted ascending so that path search visits
// lower physical indices first, which fixes the tie-break order.
type Map struct {
	size int
	adj  [][]int
}

// Parse reads the textual list-of-pairs representation used on the CLI,
// e.g. [[0,1],[1,2]]. The vertex count is inferred from the largest index.
func Parse(spec string) (*Map, error) {
	var pairs [][]int
	if err := json.Unmarshal([]byte(spec), &pairs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCouplingSpec, err)
	}
	edges := make([][2]int, 0, len(pairs))
	size := 0
	for _, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: edge %v is not a pair", ErrMalformedCouplingSpec, p)
		}
		edges = append(edges, [2]int{p[0], p[1]})
		for _, v := range p {
			if v+1 > size {
				size = v + 1
			}
		}
	}
	return New(size, edges)
}

// New builds a map over the given number of physical qubits. Every edge
// must connect two distinct in-range vertices; the graph need not be
// connected.
func New(size int, edges [][2]int) (*Map, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrMalformedCouplingSpec, size)
	}
	m := &Map{size: size, adj: make([][]int, size)}
	for _, e := range edges {
		a, b := e[0], e[1]
		if a < 0 || b < 0 || a >= size || b >= size {
			return nil, fmt.Errorf("%w: edge (%d,%d) out of range for %d vertices", ErrMalformedCouplingSpec, a, b, size)
		}
		if a == b {
			return nil, fmt.Errorf("%w: self edge (%d,%d)", ErrMalformedCouplingSpec, a, b)
		}
		m.addEdge(a, b)
		m.addEdge(b, a)
	}
	for _, ns := range m.adj {
		sort.Ints(ns)
	}
	return m, nil
}

func (m *Map) addEdge(a, b int) {
	for _, n := range m.adj[a] {
		if n == b {
			return
		}
	}
	m.adj[a] = append(m.adj[a], b)
}

func (m *Map) Size() int { return m.size }

// Neighbors returns the sorted adjacency of q, nil for isolated or
// out-of-range vertices.
func (m *Map) Neighbors(q int) []int {
	if q < 0 || q >= m.size {
		return nil
	}
	return m.adj[q]
}

// Adjacent reports whether a and b share an edge.
func (m *Map) Adjacent(a, b int) bool {
	for _, n := range m.Neighbors(a) {
		if n == b {
			return true
		}
	}
	return false
}

// ShortestPath runs an unweighted breadth-first search from s to t and
// returns the vertex sequence including both endpoints. Because adjacency
// lists are sorted, the first path found is the lowest-index one among all
// shortest paths. Vertices in different components yield
// ErrDisconnectedCouplingGraph.
func (m *Map) ShortestPath(s, t int) ([]int, error) {
	if s == t {
		return []int{s}, nil
	}
	prev := map[int]int{s: -1}
	queue := []int{s}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range m.Neighbors(u) {
			if _, seen := prev[v]; seen {
				continue
			}
			prev[v] = u
			if v == t {
				path := []int{t}
				for cur := u; cur != -1; cur = prev[cur] {
					path = append(path, cur)
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path, nil
			}
			queue = append(queue, v)
		}
	}
	return nil, fmt.Errorf("%w: no path between physical qubits %d and %d", ErrDisconnectedCouplingGraph, s, t)
}
