package huffpuff

// Symbol represents a symbol in the byte alphabet, i.e. a remapped input byte
// in the range 0..NumSymbols-1.  Negative symbols are not valid.
type Symbol int32

// NumSymbols is the size of the alphabet.  The encoder works on whole bytes,
// so the alphabet is fixed at 256 symbols.
const NumSymbols = 256

// InvalidSymbol marks the absence of a symbol, e.g. on interior tree nodes.
const InvalidSymbol = Symbol(-1)
