package huffpuff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// dataCols is the number of byte values per .db row in string data output.
const dataCols = 16

// nodeLabel returns the assembler label of a non-root node.  The (bits,
// size) pair is unique per node on any binary tree, so the label is too.
func nodeLabel(hc Code) string {
	return fmt.Sprintf("@@node_%d_%d", hc.Bits, hc.Size)
}

// WriteNodeTable writes the decode tree to w as a table of two-byte node
// records in breadth-first order: for each interior node the two
// address-relative offsets of its children's records, for each leaf a zero
// marker byte followed by the symbol value.  The table label, when not
// empty, is emitted first; the root record follows it unlabeled, and every
// other record carries its node's label.
//
// Offsets are emitted as address arithmetic for the downstream assembler,
// relative to the byte they occupy; the second pointer carries a textual +1
// so that both assemble to the distance from the start of the parent's
// record.  Records are two bytes each, which makes that distance
// 2*(childPosition-parentPosition).  A distance over 255 does not fit the
// one-byte pointer and is reported as an error; nothing is written in that
// case.
//
// An empty tree produces only the label line.
func WriteNodeTable(w io.Writer, t *Tree, label string) error {
	var buf bytes.Buffer
	if label != "" {
		fmt.Fprintf(&buf, "%s:\n", label)
	}

	type queueItem struct {
		index int32
		pos   int // breadth-first position; the record starts at byte 2*pos
	}
	var queue []queueItem
	next := 1
	if !t.Empty() {
		queue = append(queue, queueItem{t.Root, 0})
	}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		node := &t.Nodes[item.index]
		if item.index != t.Root {
			fmt.Fprintf(&buf, "%s: ", nodeLabel(node.Code))
		}
		if node.IsLeaf() {
			fmt.Fprintf(&buf, ".db $00, $%.2X\n", byte(node.Symbol))
			continue
		}

		left, right := &t.Nodes[node.Left], &t.Nodes[node.Right]
		assert.Assertf(left.Code.Size == node.Code.Size+1,
			"node codes not generated, %s has size %d under parent size %d",
			nodeLabel(left.Code), left.Code.Size, node.Code.Size)

		leftPos, rightPos := next, next+1
		next += 2
		if off := 2 * (rightPos - item.pos); off > 0xFF {
			return fmt.Errorf("node table: offset %d to %s exceeds one byte", off, nodeLabel(right.Code))
		}
		fmt.Fprintf(&buf, ".db %s-$, %s-$+1\n", nodeLabel(left.Code), nodeLabel(right.Code))
		queue = append(queue, queueItem{node.Left, leftPos}, queueItem{node.Right, rightPos})
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing node table: %w", err)
	}
	return nil
}

// WriteStrings writes every string's packed bytes to w as a labeled data
// block: the label `<prefix>String<n>` with n counting from 0, a comment
// previewing the decoded content, and .db rows of dataCols values each, the
// final row shorter as needed.
func WriteStrings(w io.Writer, list []*String, prefix string) error {
	var buf bytes.Buffer
	for i, s := range list {
		label := fmt.Sprintf("%sString%d", prefix, i)
		writeChunk(&buf, label, preview(s.Text), s.Packed, dataCols)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing string data: %w", err)
	}
	return nil
}

// WritePointerTable writes one two-byte address entry per string, in string
// order, referencing the labels WriteStrings will emit with the same prefix.
func WritePointerTable(w io.Writer, n int, label, prefix string) error {
	var buf bytes.Buffer
	if label != "" {
		fmt.Fprintf(&buf, "%s:\n", label)
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(&buf, ".dw %sString%d\n", prefix, i)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing string pointer table: %w", err)
	}
	return nil
}

// writeChunk writes one labeled, commented chunk of data as .db rows of
// cols values each, with a shorter final row for the remainder.
func writeChunk(buf *bytes.Buffer, label, comment string, data []byte, cols int) {
	if label != "" {
		fmt.Fprintf(buf, "%s:\n", label)
	}
	if comment != "" {
		fmt.Fprintf(buf, "; %s\n", comment)
	}
	for len(data) > 0 {
		n := len(data)
		if n > cols {
			n = cols
		}
		buf.WriteString(".db ")
		for j, b := range data[:n] {
			if j > 0 {
				buf.WriteByte(',')
			}
			fmt.Fprintf(buf, "$%.2X", b)
		}
		buf.WriteByte('\n')
		data = data[n:]
	}
}

// preview renders a string's decoded content for the data-block comment:
// quoted, at most 40 visible characters (37 plus "..." when longer).
// Non-printable bytes show as '.' so the comment can never break the
// line-oriented output grammar.
func preview(text []byte) string {
	const maxVisible, cut = 40, 37
	visible := text
	ellipsis := false
	if len(text) >= maxVisible {
		visible = text[:cut]
		ellipsis = true
	}

	var b bytes.Buffer
	b.WriteByte('"')
	for _, c := range visible {
		if c < 0x20 || c > 0x7E {
			c = '.'
		}
		b.WriteByte(c)
	}
	if ellipsis {
		b.WriteString("...")
	}
	b.WriteByte('"')
	return b.String()
}
