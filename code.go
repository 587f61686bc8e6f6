package huffpuff

import (
	"fmt"
	"strconv"
)

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant of the
	// Size valid bits is the first bit, i.e. the first branch taken from the
	// root of the tree.
	Bits uint32
}

// MaxCodeSize is the longest representable code, in bits.  A tree deeper
// than this cannot be expressed in a Code; GenerateCodes reports it as an
// error rather than wrapping.
const MaxCodeSize = 32

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint32) Code {
	return Code{Size: size, Bits: bits}
}

// left returns the code of this node's left child: the bits extended by 0.
func (hc Code) left() Code {
	return MakeCode(hc.Size+1, hc.Bits<<1)
}

// right returns the code of this node's right child: the bits extended by 1.
func (hc Code) right() Code {
	return MakeCode(hc.Size+1, hc.Bits<<1|1)
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}
