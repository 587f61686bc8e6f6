package huffpuff

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"

	"github.com/khansen/huffpuff/charmap"
)

// String is one input string and, after packing, its encoded form.
type String struct {
	// Text holds the remapped bytes of the string, in input order.
	Text []byte

	// Packed holds the Huffman-packed encoding of Text.  It is attached by
	// PackStrings and nil before that.
	Packed []byte
}

// FreqTable counts how often each symbol occurs across all strings, indexed
// by remapped byte value.  It is built once by ReadStrings and consumed by
// BuildTree.
type FreqTable [NumSymbols]uint64

// escape introduces a line continuation: escape followed by the delimiter
// drops both bytes and keeps the current string open.
const escape = '\\'

// ReadStrings reads r to the end, splitting it into strings on the delim
// byte.  Every stored byte is passed through the remap m first (nil means
// identity) and bumps its slot in the returned frequency table.  Empty
// strings are discarded, and a final string without a trailing delimiter is
// still emitted.  Running out of input is not an error.
//
// A backslash immediately followed by the delimiter is an escape: both bytes
// are dropped and the string continues.  A backslash followed by anything
// else is kept literally, and the lookahead byte is pushed back so it gets
// the normal treatment (in particular, a second backslash starts a fresh
// escape check).
func ReadStrings(r io.Reader, delim byte, m *charmap.Map) ([]*String, *FreqTable, error) {
	cm := charmap.Identity()
	if m != nil {
		cm = *m
	}

	br := bufio.NewReader(r)
	freq := new(FreqTable)
	var list []*String
	var text []byte

	flush := func() {
		if len(text) == 0 {
			return
		}
		s := &String{Text: make([]byte, len(text))}
		copy(s.Text, text)
		list = append(list, s)
		text = text[:0]
	}

	for {
		c, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				flush()
				return list, freq, nil
			}
			return nil, nil, fmt.Errorf("reading input: %w", err)
		}
		if c == delim {
			flush()
			continue
		}
		if c == escape {
			d, err := br.ReadByte()
			switch {
			case err == nil && d == delim:
				// Line continuation: drop the pair, keep scanning.
				continue
			case err == nil:
				err = br.UnreadByte()
				assert.Assertf(err == nil, "UnreadByte after successful ReadByte: %v", err)
			case !errors.Is(err, io.EOF):
				return nil, nil, fmt.Errorf("reading input: %w", err)
			}
			// A backslash at end of input is literal, like any other
			// non-escaping backslash; it is stored below.
		}
		mapped := cm[c]
		text = append(text, mapped)
		freq[mapped]++
	}
}
