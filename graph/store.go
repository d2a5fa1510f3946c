package graph

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"github.com/webgraph-go/bvgraph/properties"
)

// Store encodes g and atomically writes the <basename>.graph,
// <basename>.offsets and <basename>.properties triple. An existing
// triple at basename is left untouched if encoding fails.
func Store(basename string, g *Graph, params Params, huffmanMode bool) error {
	graphBytes, offsetBytes, props, err := Compress(g, params, huffmanMode)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(basename+".graph", bytes.NewReader(graphBytes)); err != nil {
		return fmt.Errorf("graph: writing %s.graph: %w", basename, err)
	}
	if err := atomic.WriteFile(basename+".offsets", bytes.NewReader(offsetBytes)); err != nil {
		return fmt.Errorf("graph: writing %s.offsets: %w", basename, err)
	}
	if err := atomic.WriteFile(basename+".properties", bytes.NewReader(props.Marshal())); err != nil {
		return fmt.Errorf("graph: writing %s.properties: %w", basename, err)
	}
	return nil
}

// LoadCompressed reads the <basename>.graph, <basename>.offsets and
// <basename>.properties triple written by Store.
func LoadCompressed(basename string) (*CompressedGraph, error) {
	propBytes, err := os.ReadFile(basename + ".properties")
	if err != nil {
		return nil, fmt.Errorf("graph: reading %s.properties: %w", basename, err)
	}
	props, err := properties.Parse(propBytes)
	if err != nil {
		return nil, fmt.Errorf("graph: parsing %s.properties: %w", basename, err)
	}
	graphBytes, err := os.ReadFile(basename + ".graph")
	if err != nil {
		return nil, fmt.Errorf("graph: reading %s.graph: %w", basename, err)
	}
	offsetBytes, err := os.ReadFile(basename + ".offsets")
	if err != nil {
		return nil, fmt.Errorf("graph: reading %s.offsets: %w", basename, err)
	}
	return Load(props, graphBytes, offsetBytes)
}

// Decompress fully decodes a CompressedGraph back into an in-memory
// Graph, visiting every node exactly once.
func Decompress(cg *CompressedGraph) (*Graph, error) {
	g := NewGraph(cg.NumNodes())
	it := cg.Iter()
	for it.HasNext() {
		x := it.Next()
		if err := it.Err(); err != nil {
			return nil, fmt.Errorf("graph: decoding node %d: %w", x, err)
		}
		g.SetSuccessors(x, append([]uint64(nil), it.SuccessorArray()...))
	}
	return g, nil
}
