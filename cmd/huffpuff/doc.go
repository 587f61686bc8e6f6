// Command huffpuff compresses a set of strings with Huffman coding and
// writes the result as assembler source, ready for inclusion in programs
// for small systems.
//
// The input is a text file of strings separated by a delimiter byte
// (newline unless --delimiter says otherwise).  A backslash before the
// delimiter continues the string on the next line.  Two files come out: a
// node table encoding the Huffman tree as relative offsets, and the
// encoded string data.  With --generate-string-table the data file also
// starts with a table of pointers to the strings.
//
// Run huffpuff --help for the full option list.
package main
