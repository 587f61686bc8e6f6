package huffpuff

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/icza/huffman"
)

func TestBuildTree_ClassicWeights(t *testing.T) {
	freq := new(FreqTable)
	freq['a'] = 5
	freq['b'] = 9
	freq['c'] = 12
	freq['d'] = 13
	freq['e'] = 16
	freq['f'] = 45

	tree := BuildTree(freq)
	if err := tree.GenerateCodes(); err != nil {
		t.Fatalf("GenerateCodes failed: %v", err)
	}

	type testRow struct {
		symbol byte
		code   Code
	}

	testData := [...]testRow{
		{symbol: 'a', code: MakeCode(4, 0xC)},
		{symbol: 'b', code: MakeCode(4, 0xD)},
		{symbol: 'c', code: MakeCode(3, 0x4)},
		{symbol: 'd', code: MakeCode(3, 0x5)},
		{symbol: 'e', code: MakeCode(3, 0x7)},
		{symbol: 'f', code: MakeCode(1, 0x0)},
	}
	for _, row := range testData {
		leaf := tree.Leaf[row.symbol]
		if leaf == nilIndex {
			t.Errorf("symbol %q: no leaf", row.symbol)
			continue
		}
		actual := tree.Nodes[leaf].Code
		if actual != row.code {
			t.Errorf("symbol %q: expected code %s, got %s", row.symbol, row.code, actual)
		}
	}
}

func TestBuildTree_Invariants(t *testing.T) {
	freq := new(FreqTable)
	weights := []uint64{3, 1, 4, 1, 5, 9, 2, 6}
	var total uint64
	for i, w := range weights {
		freq['a'+i] = w
		total += w
	}

	tree := BuildTree(freq)
	if expect := 2*len(weights) - 1; len(tree.Nodes) != expect {
		t.Fatalf("expected %d nodes, got %d", expect, len(tree.Nodes))
	}
	if actual := tree.Nodes[tree.Root].Weight; actual != total {
		t.Errorf("expected root weight %d, got %d", total, actual)
	}

	leaves := 0
	for i := range tree.Nodes {
		node := &tree.Nodes[i]
		if (node.Left == nilIndex) != (node.Right == nilIndex) {
			t.Fatalf("node %d: half-linked children", i)
		}
		if node.IsLeaf() {
			leaves++
			if node.Symbol == InvalidSymbol {
				t.Errorf("node %d: leaf without symbol", i)
			}
			continue
		}
		if node.Symbol != InvalidSymbol {
			t.Errorf("node %d: interior node with symbol %d", i, node.Symbol)
		}
		if sum := tree.Nodes[node.Left].Weight + tree.Nodes[node.Right].Weight; node.Weight != sum {
			t.Errorf("node %d: expected weight %d, got %d", i, sum, node.Weight)
		}
	}
	if leaves != len(weights) {
		t.Errorf("expected %d leaves, got %d", len(weights), leaves)
	}

	if err := tree.GenerateCodes(); err != nil {
		t.Fatalf("GenerateCodes failed: %v", err)
	}
	for i, w := range weights {
		symbol := Symbol('a' + i)
		leaf := tree.Leaf[symbol]
		if leaf == nilIndex {
			t.Errorf("symbol %q: no leaf despite weight %d", byte(symbol), w)
			continue
		}
		if actual := tree.Nodes[leaf].Symbol; actual != symbol {
			t.Errorf("symbol %q: leaf carries %d", byte(symbol), actual)
		}
	}
}

// isPrefix reports whether a is a prefix of b (equal codes included).
func isPrefix(a, b Code) bool {
	if a.Size > b.Size {
		return false
	}
	return a.Bits == b.Bits>>(b.Size-a.Size)
}

func TestGenerateCodes_PrefixFree(t *testing.T) {
	check := func(label string, freq *FreqTable) {
		tree := BuildTree(freq)
		if err := tree.GenerateCodes(); err != nil {
			t.Fatalf("%s: GenerateCodes failed: %v", label, err)
		}
		for a := 0; a < NumSymbols; a++ {
			if tree.Leaf[a] == nilIndex {
				continue
			}
			ca := tree.Nodes[tree.Leaf[a]].Code
			for b := 0; b < NumSymbols; b++ {
				if a == b || tree.Leaf[b] == nilIndex {
					continue
				}
				cb := tree.Nodes[tree.Leaf[b]].Code
				if isPrefix(ca, cb) {
					t.Errorf("%s: code %s of $%02X is a prefix of code %s of $%02X", label, ca, a, cb, b)
				}
			}
		}
	}

	freq := new(FreqTable)
	for i, w := range []uint64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5} {
		freq['a'+i] = w
	}
	check("fixed weights", freq)

	// Seeded, so every run sees the same alphabets and weights.
	rng := rand.New(rand.NewSource(1))
	for round := 0; round < 32; round++ {
		freq := new(FreqTable)
		count := 2 + rng.Intn(NumSymbols-1)
		for _, symbol := range rng.Perm(NumSymbols)[:count] {
			freq[symbol] = 1 + uint64(rng.Intn(1000))
		}
		check(fmt.Sprintf("random round %d", round), freq)
	}
}

// TestBuildTree_OptimalCost cross-checks the tree against an independent
// Huffman implementation: tie-breaking may shape the trees differently, but
// the total weighted code length of two optimal trees is always equal.
func TestBuildTree_OptimalCost(t *testing.T) {
	weightSets := [...][]uint64{
		{5, 9, 12, 13, 16, 45},
		{1, 1},
		{1, 1, 1, 1},
		{1, 2, 4, 8, 16, 32},
		{7, 7, 7, 7, 7},
		{1, 1, 2, 3, 5, 8, 13, 21, 34, 55},
	}

	for _, weights := range weightSets {
		t.Run(fmt.Sprintf("%v", weights), func(t *testing.T) {
			freq := new(FreqTable)
			leaves := make([]*huffman.Node, len(weights))
			for i, w := range weights {
				freq[i] = w
				leaves[i] = &huffman.Node{Value: huffman.ValueType(i), Count: int(w)}
			}

			tree := BuildTree(freq)
			if err := tree.GenerateCodes(); err != nil {
				t.Fatalf("GenerateCodes failed: %v", err)
			}
			var actualCost uint64
			for i, w := range weights {
				actualCost += w * uint64(tree.Nodes[tree.Leaf[i]].Code.Size)
			}

			// Build reorders the slice it is handed, so give it a copy and
			// read the codes back through our own references.
			huffman.Build(append([]*huffman.Node(nil), leaves...))
			var expectCost uint64
			for i, w := range weights {
				_, bits := leaves[i].Code()
				expectCost += w * uint64(bits)
			}

			if actualCost != expectCost {
				t.Errorf("expected total cost %d, got %d", expectCost, actualCost)
			}

			// Shannon bound: the cost sits in [H, H + one bit per symbol).
			var total uint64
			for _, w := range weights {
				total += w
			}
			var entropy float64
			for _, w := range weights {
				p := float64(w) / float64(total)
				entropy -= p * math.Log2(p)
			}
			lower := entropy * float64(total)
			if float64(actualCost) < lower-1e-9 {
				t.Errorf("total cost %d beats the entropy bound %.3f", actualCost, lower)
			}
			if float64(actualCost) >= lower+float64(total) {
				t.Errorf("total cost %d is a full bit per symbol over the entropy bound %.3f", actualCost, lower)
			}
		})
	}
}

func TestBuildTree_Empty(t *testing.T) {
	tree := BuildTree(new(FreqTable))
	if !tree.Empty() {
		t.Fatal("expected an empty tree")
	}
	if len(tree.Nodes) != 0 {
		t.Errorf("expected no nodes, got %d", len(tree.Nodes))
	}
	if err := tree.GenerateCodes(); err != nil {
		t.Fatalf("GenerateCodes failed: %v", err)
	}
	for symbol, leaf := range tree.Leaf {
		if leaf != nilIndex {
			t.Errorf("symbol $%02X: unexpected leaf %d", symbol, leaf)
		}
	}
}

func TestBuildTree_SingleSymbol(t *testing.T) {
	freq := new(FreqTable)
	freq['X'] = 42

	tree := BuildTree(freq)
	if len(tree.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(tree.Nodes))
	}
	if err := tree.GenerateCodes(); err != nil {
		t.Fatalf("GenerateCodes failed: %v", err)
	}

	root := &tree.Nodes[tree.Root]
	left, right := &tree.Nodes[root.Left], &tree.Nodes[root.Right]
	if !left.IsLeaf() || !right.IsLeaf() {
		t.Fatal("expected both children of the root to be leaves")
	}
	if left.Symbol != 'X' || right.Symbol != 'X' {
		t.Errorf("expected both leaves to carry 'X', got %d and %d", left.Symbol, right.Symbol)
	}

	leaf := tree.Leaf['X']
	if leaf == nilIndex {
		t.Fatal("expected a leaf for 'X'")
	}
	if actual := tree.Nodes[leaf].Code; actual != MakeCode(1, 0) {
		t.Errorf("expected the one-bit zero code, got %s", actual)
	}
}

// buildChainTree hand-builds a maximally skewed tree: a chain of interior
// nodes of the given length, each with a leaf on the left.
func buildChainTree(length int) *Tree {
	tree := &Tree{Root: nilIndex}
	cur := tree.newLeaf('A', 1)
	for i := 0; i < length; i++ {
		leaf := tree.newLeaf('B', 1)
		cur = tree.newInterior(leaf, cur)
	}
	tree.Root = cur
	return tree
}

func TestGenerateCodes_MaxDepth(t *testing.T) {
	tree := buildChainTree(MaxCodeSize)
	if err := tree.GenerateCodes(); err != nil {
		t.Fatalf("GenerateCodes failed at depth %d: %v", MaxCodeSize, err)
	}
	if actual := tree.Nodes[tree.Leaf['A']].Code.Size; actual != MaxCodeSize {
		t.Errorf("expected deepest code size %d, got %d", MaxCodeSize, actual)
	}
}

func TestGenerateCodes_TooDeep(t *testing.T) {
	tree := buildChainTree(MaxCodeSize + 1)
	if err := tree.GenerateCodes(); err == nil {
		t.Fatalf("expected an error at depth %d", MaxCodeSize+1)
	}
}
