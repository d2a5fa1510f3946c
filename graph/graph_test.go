package graph_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/webgraph-go/bvgraph/graph"
)

func buildGraph(t *testing.T, n int, lists map[int][]uint64) *graph.Graph {
	t.Helper()
	g := graph.NewGraph(n)
	for x, l := range lists {
		g.SetSuccessors(x, l)
	}
	return g
}

func compressAndDecode(t *testing.T, g *graph.Graph, params graph.Params, huffmanMode bool) *graph.CompressedGraph {
	t.Helper()
	graphBytes, offsetBytes, props, err := graph.Compress(g, params, huffmanMode)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	cg, err := graph.Load(props, graphBytes, offsetBytes)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cg
}

func assertSuccessors(t *testing.T, cg *graph.CompressedGraph, x int, want []uint64) {
	t.Helper()
	got, err := cg.Successors(x)
	if err != nil {
		t.Fatalf("Successors(%d): %v", x, err)
	}
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Successors(%d) mismatch (-want +got):\n%s", x, diff)
	}
}

// E1 — trivial: all lists empty.
func TestScenarioE1TrivialEmptyGraph(t *testing.T) {
	g := graph.NewGraph(3)
	params := graph.DefaultParams()

	graphBytes, offsetBytes, props, err := graph.Compress(g, params, false)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if props.Nodes != 3 || props.Arcs != 0 {
		t.Fatalf("props = %+v", props)
	}

	cg, err := graph.Load(props, graphBytes, offsetBytes)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for x := 0; x < 3; x++ {
		assertSuccessors(t, cg, x, nil)
	}
	_ = offsetBytes
}

// E2 — single arc.
func TestScenarioE2SingleArc(t *testing.T) {
	g := buildGraph(t, 2, map[int][]uint64{0: {1}})
	cg := compressAndDecode(t, g, graph.DefaultParams(), false)

	d0, err := cg.Outdegree(0)
	if err != nil || d0 != 1 {
		t.Fatalf("Outdegree(0) = (%d, %v), want (1, nil)", d0, err)
	}
	assertSuccessors(t, cg, 0, []uint64{1})
	assertSuccessors(t, cg, 1, nil)
}

// E3 — reference copy: three identical lists round-trip. Only the
// decoded lists are checked, not the encoded sizes.
func TestScenarioE3ReferenceCopy(t *testing.T) {
	list := []uint64{1, 2, 3, 4}
	g := buildGraph(t, 3, map[int][]uint64{0: list, 1: list, 2: list})
	params := graph.DefaultParams()

	cg := compressAndDecode(t, g, params, false)
	for x := 0; x < 3; x++ {
		assertSuccessors(t, cg, x, list)
	}
}

// E4 — interval split: one run plus two residuals.
func TestScenarioE4IntervalSplit(t *testing.T) {
	g := buildGraph(t, 1, map[int][]uint64{0: {5, 6, 7, 8, 10, 12}})
	params := graph.Params{WindowSize: 0, MaxRefCount: 3, MinIntervalLen: 2, ZetaK: 3}

	left, length, residuals := graph.Intervalize([]uint64{5, 6, 7, 8, 10, 12}, 2)
	if len(left) != 1 || left[0] != 5 || length[0] != 4 {
		t.Fatalf("Intervalize left/length = %v/%v, want [5]/[4]", left, length)
	}
	if diff := cmp.Diff([]uint64{10, 12}, residuals); diff != "" {
		t.Fatalf("Intervalize residuals mismatch (-want +got):\n%s", diff)
	}

	cg := compressAndDecode(t, g, params, false)
	assertSuccessors(t, cg, 0, []uint64{5, 6, 7, 8, 10, 12})
}

// E5 — interval and copy interaction.
func TestScenarioE5IntervalAndCopyInteraction(t *testing.T) {
	g := buildGraph(t, 2, map[int][]uint64{
		0: {0, 1, 2, 3, 7, 9},
		1: {0, 1, 2, 3, 8, 9},
	})
	params := graph.DefaultParams()
	cg := compressAndDecode(t, g, params, false)

	assertSuccessors(t, cg, 0, []uint64{0, 1, 2, 3, 7, 9})
	assertSuccessors(t, cg, 1, []uint64{0, 1, 2, 3, 8, 9})
}

// E6 — repeated successor rejection.
func TestScenarioE6RepeatedSuccessorRejected(t *testing.T) {
	g := buildGraph(t, 1, map[int][]uint64{0: {1, 1, 2}})
	_, _, _, err := graph.Compress(g, graph.DefaultParams(), false)
	if !errors.Is(err, graph.ErrRepeatedSuccessor) {
		t.Fatalf("Compress err = %v, want ErrRepeatedSuccessor", err)
	}
}

// Property: round-trip identity across both coding modes.
func TestRoundTripIdentityBothModes(t *testing.T) {
	lists := map[int][]uint64{
		0: {1, 2, 3, 4, 9},
		1: {1, 2, 3, 4, 8, 9},
		2: {0, 2, 4, 6, 8},
		3: {},
		4: {0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	}
	g := buildGraph(t, 5, lists)
	params := graph.DefaultParams()

	for _, huffmanMode := range []bool{false, true} {
		cg := compressAndDecode(t, g, params, huffmanMode)
		for x := 0; x < 5; x++ {
			want := lists[x]
			if len(want) == 0 {
				want = nil
			}
			assertSuccessors(t, cg, x, want)
		}
	}
}

// Property: offsets are self-consistent — decoding sequentially via
// the node iterator visits every node and yields n successor lists.
func TestNodeIteratorVisitsEveryNodeOnce(t *testing.T) {
	lists := map[int][]uint64{0: {1, 2}, 1: {2}, 2: {}}
	g := buildGraph(t, 3, lists)
	cg := compressAndDecode(t, g, graph.DefaultParams(), false)

	it := cg.Iter()
	count := 0
	for it.HasNext() {
		x := it.Next()
		if err := it.Err(); err != nil {
			t.Fatalf("node %d: %v", x, err)
		}
		count++
	}
	if count != 3 {
		t.Errorf("visited %d nodes, want 3", count)
	}
}

// Property: successor lists decode in strictly ascending order (no
// duplicates, monotone).
func TestSuccessorsAreMonotone(t *testing.T) {
	g := buildGraph(t, 2, map[int][]uint64{0: {0, 1, 2, 3, 7, 9}, 1: {0, 1, 2, 3, 8, 9}})
	cg := compressAndDecode(t, g, graph.DefaultParams(), false)
	for x := 0; x < 2; x++ {
		succ, err := cg.Successors(x)
		if err != nil {
			t.Fatalf("Successors(%d): %v", x, err)
		}
		for i := 1; i < len(succ); i++ {
			if succ[i] <= succ[i-1] {
				t.Errorf("node %d: successors not strictly increasing at %d: %v", x, i, succ)
			}
		}
	}
}

// Property: reference chains never exceed MaxRefCount.
func TestReferenceDepthBounded(t *testing.T) {
	lists := map[int][]uint64{}
	list := []uint64{1, 2, 3}
	for i := 0; i < 10; i++ {
		lists[i] = list
	}
	g := buildGraph(t, 10, lists)
	params := graph.Params{WindowSize: 9, MaxRefCount: 2, MinIntervalLen: 2, ZetaK: 3}
	cg := compressAndDecode(t, g, params, false)
	for x := 0; x < 10; x++ {
		assertSuccessors(t, cg, x, list)
	}
}

// Property: re-encoding a decompressed graph is idempotent (the
// decoded graph, compressed again, decodes to the same lists).
func TestReencodeIsIdempotent(t *testing.T) {
	lists := map[int][]uint64{
		0: {1, 2, 3, 4, 9},
		1: {1, 2, 3, 4, 8, 9},
		2: {0, 2, 4, 6, 8},
	}
	g := buildGraph(t, 3, lists)
	params := graph.DefaultParams()

	cg1 := compressAndDecode(t, g, params, false)
	g2, err := graph.Decompress(cg1)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	cg2 := compressAndDecode(t, g2, params, false)
	for x := 0; x < 3; x++ {
		want := lists[x]
		assertSuccessors(t, cg2, x, want)
	}
}

// Property: Outdegree matches the decoded successor list's length and
// the one-slot cache does not corrupt later access to a different
// node.
func TestOutdegreeMatchesSuccessorCount(t *testing.T) {
	lists := map[int][]uint64{0: {1, 2, 3}, 1: {2}, 2: {}}
	g := buildGraph(t, 3, lists)
	cg := compressAndDecode(t, g, graph.DefaultParams(), false)

	for x := 0; x < 3; x++ {
		d, err := cg.Outdegree(x)
		if err != nil {
			t.Fatalf("Outdegree(%d): %v", x, err)
		}
		succ, err := cg.Successors(x)
		if err != nil {
			t.Fatalf("Successors(%d): %v", x, err)
		}
		if d != len(succ) {
			t.Errorf("node %d: Outdegree=%d, len(Successors)=%d", x, d, len(succ))
		}
	}
}

// Property: an out-of-bounds node id is rejected.
func TestOutOfBoundsNodeRejected(t *testing.T) {
	g := buildGraph(t, 2, map[int][]uint64{0: {1}})
	cg := compressAndDecode(t, g, graph.DefaultParams(), false)
	if _, err := cg.Successors(5); !errors.Is(err, graph.ErrNodeOOB) {
		t.Errorf("Successors(5) err = %v, want ErrNodeOOB", err)
	}
}

func TestIntervalizeShortRunsStayResidual(t *testing.T) {
	left, length, residuals := graph.Intervalize([]uint64{1, 2, 10, 11, 12}, 3)
	if len(left) != 1 || left[0] != 10 || length[0] != 3 {
		t.Fatalf("left/length = %v/%v", left, length)
	}
	if diff := cmp.Diff([]uint64{1, 2}, residuals); diff != "" {
		t.Fatalf("residuals mismatch (-want +got):\n%s", diff)
	}
}

func TestArcListRejectsOutOfBoundsAndDuplicates(t *testing.T) {
	if _, err := graph.FromArcList(2, [][2]uint64{{0, 5}}); !errors.Is(err, graph.ErrNodeOOB) {
		t.Errorf("err = %v, want ErrNodeOOB", err)
	}
	if _, err := graph.FromArcList(2, [][2]uint64{{0, 1}, {0, 1}}); !errors.Is(err, graph.ErrRepeatedSuccessor) {
		t.Errorf("err = %v, want ErrRepeatedSuccessor", err)
	}
}
