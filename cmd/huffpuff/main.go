package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/khansen/huffpuff"
	"github.com/khansen/huffpuff/charmap"
)

const programVersion = "huffpuff 1.1.0"

var (
	mapPath     = pflag.String("character-map", "", "remap input characters according to `FILE`")
	tableOut    = pflag.String("table-output", "huffpuff.tab", "write the Huffman node table to `FILE`")
	dataOut     = pflag.String("data-output", "huffpuff.dat", "write the encoded strings to `FILE`")
	tableLabel  = pflag.String("table-label", huffpuff.DefaultTableLabel, "`LABEL` of the node table")
	labelPrefix = pflag.String("string-label-prefix", "", "`PREFIX` for the string labels")
	genPointers = pflag.Bool("generate-string-table", false, "emit a table of pointers to the encoded strings")
	delimStr    = pflag.String("delimiter", "10", "string delimiter `BYTE` (decimal or 0xHH)")
	verbose     = pflag.Bool("verbose", false, "print processing details")
	showHelp    = pflag.BoolP("help", "h", false, "show this help and exit")
	showUsage   = pflag.Bool("usage", false, "show a short usage message and exit")
	showVersion = pflag.Bool("version", false, "print program version and exit")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "huffpuff:", err)
		os.Exit(1)
	}
}

func run() error {
	pflag.Parse()
	switch {
	case *showHelp:
		printHelp()
		return nil
	case *showUsage:
		printUsage(os.Stdout)
		return nil
	case *showVersion:
		fmt.Println(programVersion)
		return nil
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	delim, err := parseDelimiter(*delimStr)
	if err != nil {
		return err
	}
	cfg := huffpuff.Config{
		Delim:        delim,
		TableLabel:   *tableLabel,
		StringPrefix: *labelPrefix,
		PointerTable: *genPointers,
	}
	if *mapPath != "" {
		m, err := charmap.Load(*mapPath)
		if err != nil {
			return err
		}
		cfg.Map = &m
	}

	var in io.Reader = os.Stdin
	inName := "stdin"
	switch pflag.NArg() {
	case 0:
		// encode standard input
	case 1:
		inName = pflag.Arg(0)
		f, err := os.Open(inName)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("expected at most one input file, got %d", pflag.NArg())
	}

	var stats huffpuff.Stats
	err = writeOutputs(*tableOut, *dataOut, func(tableW, dataW io.Writer) error {
		var err error
		stats, err = huffpuff.Encode(in, tableW, dataW, cfg)
		return err
	})
	if err != nil {
		return err
	}

	slog.Debug("encoded string table",
		"input", inName,
		"strings", stats.Strings,
		"symbols", stats.Symbols,
		"text_bytes", stats.TextBytes,
		"packed_bytes", stats.PackedBytes)
	return nil
}

// parseDelimiter parses the --delimiter argument as a byte value.
func parseDelimiter(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("bad delimiter %q", s)
	}
	return byte(v), nil
}

// writeOutputs creates the two output files and hands buffered writers over
// them to emit.  If emit or any flush fails, both files are removed so a
// failed run never leaves truncated output behind.
func writeOutputs(tablePath, dataPath string, emit func(tableW, dataW io.Writer) error) (err error) {
	tableF, err := os.Create(tablePath)
	if err != nil {
		return fmt.Errorf("creating table output: %w", err)
	}
	dataF, err := os.Create(dataPath)
	if err != nil {
		tableF.Close()
		os.Remove(tablePath)
		return fmt.Errorf("creating data output: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tablePath)
			os.Remove(dataPath)
		}
	}()

	tableW := bufio.NewWriter(tableF)
	dataW := bufio.NewWriter(dataF)
	err = emit(tableW, dataW)
	if err == nil {
		err = tableW.Flush()
	}
	if err == nil {
		err = dataW.Flush()
	}
	if cerr := tableF.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing %s: %w", tablePath, cerr)
	}
	if cerr := dataF.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing %s: %w", dataPath, cerr)
	}
	return err
}

func printHelp() {
	fmt.Println("Usage: huffpuff [OPTION...] [FILE]")
	fmt.Println()
	fmt.Println("Reads delimited strings from FILE (or standard input), encodes them with")
	fmt.Println("Huffman coding, and writes two assembler source files: a node table")
	fmt.Println("describing the Huffman tree, and the encoded string data.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Print(pflag.CommandLine.FlagUsages())
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: huffpuff [--character-map=FILE] [--table-output=FILE]
                [--data-output=FILE] [--table-label=LABEL]
                [--string-label-prefix=PREFIX] [--generate-string-table]
                [--delimiter=BYTE] [--verbose] [--help] [--usage]
                [--version] [FILE]`)
}
