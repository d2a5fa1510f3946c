/*
Package graph implements the differential successor-list codec: an
in-memory source Graph and a NodeIterator for feeding the encoder, and
a CompressedGraph (decode.go) for reading back an encoded stream.
*/
package graph

import (
	"bufio"
	"fmt"
	"os"
	"sort"
)

// Graph is an uncompressed, in-memory adjacency list: the source a
// Compress call reads from, or the result of decoding a compressed
// graph in full.
type Graph struct {
	n          int
	successors [][]uint64
}

// NewGraph returns a graph with n nodes and no arcs.
func NewGraph(n int) *Graph {
	return &Graph{n: n, successors: make([][]uint64, n)}
}

// FromArcList builds a graph from n nodes and a list of (from, to)
// arcs. Successor lists are sorted and de-duplicated arcs are
// rejected, matching the hard error on repeated successors observed
// at encode time.
func FromArcList(n int, arcs [][2]uint64) (*Graph, error) {
	g := NewGraph(n)
	for _, a := range arcs {
		u, v := a[0], a[1]
		if u >= uint64(n) || v >= uint64(n) {
			return nil, fmt.Errorf("%w: arc (%d, %d)", ErrNodeOOB, u, v)
		}
		g.successors[u] = append(g.successors[u], v)
	}
	for x, list := range g.successors {
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
		for i := 1; i < len(list); i++ {
			if list[i] == list[i-1] {
				return nil, fmt.Errorf("%w: node %d, value %d", ErrRepeatedSuccessor, x, list[i])
			}
		}
	}
	return g, nil
}

// SetSuccessors installs x's successor list directly. The caller must
// provide a sorted, duplicate-free list; use FromArcList if that is
// not already guaranteed.
func (g *Graph) SetSuccessors(x int, successors []uint64) {
	g.successors[x] = successors
}

// NumNodes returns n.
func (g *Graph) NumNodes() int { return g.n }

// NumArcs returns the total number of arcs across all successor lists.
func (g *Graph) NumArcs() int {
	m := 0
	for _, l := range g.successors {
		m += len(l)
	}
	return m
}

// Successors returns x's successor list.
func (g *Graph) Successors(x int) ([]uint64, error) {
	if x < 0 || x >= g.n {
		return nil, fmt.Errorf("%w: %d", ErrNodeOOB, x)
	}
	return g.successors[x], nil
}

// Outdegree returns the length of x's successor list.
func (g *Graph) Outdegree(x int) (int, error) {
	if x < 0 || x >= g.n {
		return 0, fmt.Errorf("%w: %d", ErrNodeOOB, x)
	}
	return len(g.successors[x]), nil
}

// Iter returns a fresh NodeIterator positioned before node 0.
func (g *Graph) Iter() *NodeIterator {
	return &NodeIterator{g: g, cur: -1}
}

// NodeIterator visits a Graph's nodes in id order exactly once,
// mirroring the BVGraphNodeIterator contract: HasNext/Next advance,
// Outdegree/SuccessorArray describe the node Next last returned.
type NodeIterator struct {
	g   *Graph
	cur int
}

// HasNext reports whether Next would return another node.
func (it *NodeIterator) HasNext() bool {
	return it.cur+1 < it.g.n
}

// Next advances to and returns the next node id.
func (it *NodeIterator) Next() int {
	it.cur++
	return it.cur
}

// Outdegree returns the outdegree of the node Next last returned.
func (it *NodeIterator) Outdegree() int {
	return len(it.g.successors[it.cur])
}

// SuccessorArray returns the successor list of the node Next last
// returned.
func (it *NodeIterator) SuccessorArray() []uint64 {
	return it.g.successors[it.cur]
}

// LoadUncompressed reads a plain-text adjacency list written by
// WriteUncompressed: a header line "n m", then one line per node,
// "x: s1 s2 s3" (an empty successor list is "x:").
func LoadUncompressed(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graph: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	if !sc.Scan() {
		return nil, fmt.Errorf("%w: empty uncompressed graph file", ErrTruncated)
	}
	var n, m int
	if _, err := fmt.Sscanf(sc.Text(), "%d %d", &n, &m); err != nil {
		return nil, fmt.Errorf("graph: malformed header %q: %w", sc.Text(), err)
	}
	g := NewGraph(n)
	for sc.Scan() {
		line := sc.Text()
		var x int
		var rest string
		colon := -1
		for i, c := range line {
			if c == ':' {
				colon = i
				break
			}
		}
		if colon < 0 {
			return nil, fmt.Errorf("graph: malformed node line %q", line)
		}
		if _, err := fmt.Sscanf(line[:colon], "%d", &x); err != nil {
			return nil, fmt.Errorf("graph: malformed node id in %q: %w", line, err)
		}
		rest = line[colon+1:]
		var list []uint64
		var v uint64
		for _, tok := range splitFields(rest) {
			if _, err := fmt.Sscanf(tok, "%d", &v); err != nil {
				return nil, fmt.Errorf("graph: malformed successor %q: %w", tok, err)
			}
			list = append(list, v)
		}
		if x < 0 || x >= n {
			return nil, fmt.Errorf("%w: %d", ErrNodeOOB, x)
		}
		g.successors[x] = list
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("graph: %w", err)
	}
	return g, nil
}

func splitFields(s string) []string {
	var fields []string
	start := -1
	for i, c := range s {
		if c == ' ' || c == '\t' {
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}

// WriteUncompressed writes g in the format LoadUncompressed reads.
func WriteUncompressed(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("graph: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d %d\n", g.n, g.NumArcs())
	for x, list := range g.successors {
		fmt.Fprintf(w, "%d:", x)
		for _, v := range list {
			fmt.Fprintf(w, " %d", v)
		}
		fmt.Fprint(w, "\n")
	}
	return w.Flush()
}
