package huffpuff

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// nilIndex marks an absent child or the root of an empty tree.
const nilIndex = int32(-1)

// Node is one node of a Huffman tree.  Nodes live in the tree's arena and
// reference each other by index, so traversals never recurse.
type Node struct {
	// Symbol is the leaf's symbol, or InvalidSymbol on interior nodes.
	Symbol Symbol

	// Weight is the symbol's frequency on leaves and the sum of the
	// children's weights on interior nodes.
	Weight uint64

	// Code is the node's bit pattern and length, assigned by GenerateCodes.
	Code Code

	// Left and Right index the children in Tree.Nodes, nilIndex on leaves.
	Left, Right int32
}

// IsLeaf reports whether the node carries a symbol instead of children.
func (n *Node) IsLeaf() bool {
	return n.Left == nilIndex
}

// Tree is an arena-allocated Huffman tree over the byte alphabet.
type Tree struct {
	// Nodes is the arena: leaves first in ascending symbol order, then
	// interior nodes in merge order.  The root, when present, is the node
	// created last.
	Nodes []Node

	// Root indexes the root node, or nilIndex when the tree is empty.
	Root int32

	// Leaf maps each symbol to the index of its leaf, or nilIndex for
	// symbols that do not occur.  Populated by GenerateCodes.
	Leaf [NumSymbols]int32
}

// Empty reports whether the tree has no nodes, i.e. no symbol had a nonzero
// frequency.  Callers skip node-table output entirely for an empty tree.
func (t *Tree) Empty() bool {
	return t.Root == nilIndex
}

// BuildTree builds a weight-optimal Huffman tree from the frequency table:
// one leaf per nonzero-count symbol, then the classic merge loop on a
// min-priority-queue, combining the two lightest nodes until one remains.
// The first node extracted by a merge becomes the left child, the second the
// right.  Ties are broken by arena index, so equal-weight leaves order by
// symbol value and equal-weight interior nodes by creation order.
//
// A sole-symbol alphabet gets a synthesized sibling leaf bearing the same
// symbol, forcing every code to at least one bit; the lookup table points at
// the original leaf (code 0) and either bit decodes to the same symbol, so
// the emitted table stays valid.  Call GenerateCodes on the result before
// packing or serializing.
func BuildTree(freq *FreqTable) *Tree {
	t := &Tree{Root: nilIndex}
	for i := range t.Leaf {
		t.Leaf[i] = nilIndex
	}

	count := 0
	for _, n := range freq {
		if n > 0 {
			count++
		}
	}
	if count == 0 {
		return t
	}
	t.Nodes = make([]Node, 0, 2*count-1)

	for symbol := Symbol(0); symbol < NumSymbols; symbol++ {
		if freq[symbol] > 0 {
			t.newLeaf(symbol, freq[symbol])
		}
	}
	if count == 1 {
		t.newLeaf(t.Nodes[0].Symbol, t.Nodes[0].Weight)
	}

	h := &nodeHeap{tree: t, list: make([]int32, len(t.Nodes))}
	for i := range h.list {
		h.list[i] = int32(i)
	}
	heap.Init(h)

	for h.Len() > 1 {
		left := heap.Pop(h).(int32)
		right := heap.Pop(h).(int32)
		heap.Push(h, t.newInterior(left, right))
	}
	t.Root = heap.Pop(h).(int32)
	return t
}

func (t *Tree) newLeaf(symbol Symbol, weight uint64) int32 {
	t.Nodes = append(t.Nodes, Node{
		Symbol: symbol,
		Weight: weight,
		Left:   nilIndex,
		Right:  nilIndex,
	})
	return int32(len(t.Nodes) - 1)
}

func (t *Tree) newInterior(left, right int32) int32 {
	assert.Assertf(left != right, "interior node with identical children %d", left)
	t.Nodes = append(t.Nodes, Node{
		Symbol: InvalidSymbol,
		Weight: t.Nodes[left].Weight + t.Nodes[right].Weight,
		Left:   left,
		Right:  right,
	})
	return int32(len(t.Nodes) - 1)
}

// type nodeHeap {{{

// nodeHeap is a min-heap of arena indices ordered by (weight, index).
type nodeHeap struct {
	tree *Tree
	list []int32
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	aw, bw := h.tree.Nodes[a].Weight, h.tree.Nodes[b].Weight
	if aw != bw {
		return aw < bw
	}
	return a < b
}

func (h *nodeHeap) Push(x any) {
	h.list = append(h.list, x.(int32))
}

func (h *nodeHeap) Pop() any {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
