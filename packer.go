package huffpuff

import (
	"bytes"
	"fmt"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// PackStrings encodes each string's Text under the tree's code table and
// attaches the result as Packed.  Codes are written most significant bit
// first; the final byte of each string is flushed with its unused low-order
// bits zero, so len(Packed) is always ceil(total code bits / 8).  No
// terminator is emitted: string boundaries are the pointer table's job.
//
// A byte with no leaf in the table is an error.  That cannot happen when the
// tree was built from the same strings' frequencies, but the packer is
// callable on its own.
func PackStrings(list []*String, t *Tree) error {
	var buf bytes.Buffer
	for i, s := range list {
		buf.Reset()
		w := bitio.NewWriter(&buf)
		for _, b := range s.Text {
			leaf := t.Leaf[b]
			if leaf == nilIndex {
				return fmt.Errorf("string %d: symbol $%02X has no code", i, b)
			}
			hc := t.Nodes[leaf].Code
			assert.Assertf(hc.Size > 0, "symbol $%02X has a zero-length code", b)
			w.TryWriteBits(uint64(hc.Bits), hc.Size)
		}
		if w.TryError != nil {
			return fmt.Errorf("string %d: packing: %w", i, w.TryError)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("string %d: packing: %w", i, err)
		}
		s.Packed = make([]byte, buf.Len())
		copy(s.Packed, buf.Bytes())
	}
	return nil
}
