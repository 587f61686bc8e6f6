package huffpuff

import (
	"io"

	"github.com/khansen/huffpuff/charmap"
)

// Conventional labels and separators for the emitted tables.
const (
	// DefaultDelim is the byte that separates strings in the input stream.
	DefaultDelim = byte('\n')

	// DefaultTableLabel is the conventional label for the node table.
	DefaultTableLabel = "huff_node_table"

	// stringTableLabel labels the optional string pointer table.
	stringTableLabel = "huff_string_table"

	// localPrefix is the string label prefix used together with the pointer
	// table, so the labels stay local to the data block.
	localPrefix = "@@"
)

// Config controls one encoding run.  The zero value reads newline-separated
// strings with no remapping and writes an unlabeled node table, unprefixed
// string labels and no pointer table.
type Config struct {
	// Delim is the string separator byte; 0 means DefaultDelim.
	Delim byte

	// Map is the character remapping applied to every input byte before
	// counting and encoding; nil means identity.
	Map *charmap.Map

	// TableLabel labels the node table; empty emits no label line.
	TableLabel string

	// StringPrefix prefixes every string data label.  Ignored when
	// PointerTable is set, which forces the local form.
	StringPrefix string

	// PointerTable emits a table of .dw entries addressing every string
	// ahead of the data blocks, and switches the string labels to the local
	// form the table references.
	PointerTable bool
}

// Stats reports what one encoding run consumed and produced.
type Stats struct {
	Strings     int // strings read from the input
	Symbols     int // distinct symbols observed
	TextBytes   int // total remapped input bytes
	PackedBytes int // total packed data bytes
}

// Encode runs the whole pipeline: read the strings from in, build and code
// the Huffman tree, pack every string, then write the node table to tableW
// and the string data (and pointer table, when configured) to dataW.  The
// run is a single fully-buffered batch; nothing is written until every
// string has been read and packed.
func Encode(in io.Reader, tableW, dataW io.Writer, cfg Config) (Stats, error) {
	var stats Stats

	delim := cfg.Delim
	if delim == 0 {
		delim = DefaultDelim
	}

	list, freq, err := ReadStrings(in, delim, cfg.Map)
	if err != nil {
		return stats, err
	}

	tree := BuildTree(freq)
	if err := tree.GenerateCodes(); err != nil {
		return stats, err
	}
	if err := PackStrings(list, tree); err != nil {
		return stats, err
	}

	if err := WriteNodeTable(tableW, tree, cfg.TableLabel); err != nil {
		return stats, err
	}

	prefix := cfg.StringPrefix
	if cfg.PointerTable {
		prefix = localPrefix
		if err := WritePointerTable(dataW, len(list), stringTableLabel, prefix); err != nil {
			return stats, err
		}
	}
	if err := WriteStrings(dataW, list, prefix); err != nil {
		return stats, err
	}

	stats.Strings = len(list)
	for _, n := range freq {
		if n > 0 {
			stats.Symbols++
		}
	}
	for _, s := range list {
		stats.TextBytes += len(s.Text)
		stats.PackedBytes += len(s.Packed)
	}
	return stats, nil
}
