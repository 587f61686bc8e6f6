// Package huffpuff implements an offline Huffman encoder for string tables
// consumed by a downstream assembler.
//
// The pipeline reads delimiter-separated text strings, builds a single static
// Huffman code over the byte alphabet observed in the input, bit-packs every
// string under that code, and serializes two textual artifacts: the decode
// tree as a table of two-byte node records with address-relative child
// pointers, and the packed strings as labeled .db data blocks (optionally
// preceded by a .dw pointer table).  The text grammar, not a binary format,
// is the contract with the assembler.
//
// The code is not canonicalized: the bit pattern of each symbol is literally
// the root-to-leaf path of the emitted tree (left 0, right 1), because the
// tree table is what the target's decoder walks.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package huffpuff
