package huffpuff

import (
	"fmt"
)

// GenerateCodes assigns a Code to every node and fills in the symbol→leaf
// lookup table.  The root gets the empty code; a child extends its parent's
// code by one bit, left 0 and right 1, most significant bit first, so a
// leaf's code is exactly the root-to-leaf path.
//
// The walk is depth-first with an explicit work stack.  When two leaves
// share a symbol (the synthesized sole-symbol sibling), the lookup table
// keeps the first one visited, which is the one on the all-zero path.
//
// Returns an error if the tree is deeper than MaxCodeSize bits.
func (t *Tree) GenerateCodes() error {
	for i := range t.Leaf {
		t.Leaf[i] = nilIndex
	}
	if t.Empty() {
		return nil
	}

	type stackItem struct {
		index int32
		code  Code
	}

	stack := make([]stackItem, 0, 16)
	stack = append(stack, stackItem{t.Root, MakeCode(0, 0)})
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := &t.Nodes[top.index]
		node.Code = top.code
		if node.IsLeaf() {
			if t.Leaf[node.Symbol] == nilIndex {
				t.Leaf[node.Symbol] = top.index
			}
			continue
		}
		if top.code.Size >= MaxCodeSize {
			return fmt.Errorf("tree deeper than %d bits, cannot assign codes below %s", MaxCodeSize, top.code)
		}
		// Right first, so the left child is popped first.
		stack = append(stack, stackItem{node.Right, top.code.right()})
		stack = append(stack, stackItem{node.Left, top.code.left()})
	}
	return nil
}
