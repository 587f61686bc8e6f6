// Package charmap parses character map files, which remap input bytes to
// the byte values the target system expects.  A typical use is translating
// ASCII text into a console's tile indices.
//
// A map file is line oriented.  Blank lines are skipped, and '#' or ';'
// starts a comment that runs to the end of the line.  Every other line is
// one mapping:
//
//	key = value
//
// The key is a single character or an inclusive range of two characters
// joined by '-'.  A character is written literally (A), quoted ('A', handy
// for '=', '#', ' ' and '-'), or as one of the escapes \\ \n \t \r \0 \xHH.
// The value is the target byte in decimal, $HH or 0xHH form; for a range,
// it is the target of the first character, and the rest follow
// consecutively.
//
// For example, a map placing digits at tile $30 and letters at tile $41:
//
//	0-9 = $30
//	A-Z = $41
//	' ' = $00    ; blank tile
//
// Unmentioned bytes map to themselves, and later lines override earlier
// ones.
package charmap
