package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestParseDelimiter(t *testing.T) {
	type testRow struct {
		input  string
		expect byte
		ok     bool
	}

	testData := [...]testRow{
		{input: "10", expect: 10, ok: true},
		{input: "0x0A", expect: 10, ok: true},
		{input: "0", expect: 0, ok: true},
		{input: "255", expect: 255, ok: true},
		{input: "256", ok: false},
		{input: "", ok: false},
		{input: "bang", ok: false},
	}

	for _, row := range testData {
		t.Run(row.input, func(t *testing.T) {
			actual, err := parseDelimiter(row.input)
			if row.ok != (err == nil) {
				t.Fatalf("expected ok=%v, got error %v", row.ok, err)
			}
			if row.ok && actual != row.expect {
				t.Errorf("expected %d, got %d", row.expect, actual)
			}
		})
	}
}

func TestWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	tablePath := filepath.Join(dir, "out.tab")
	dataPath := filepath.Join(dir, "out.dat")

	err := writeOutputs(tablePath, dataPath, func(tableW, dataW io.Writer) error {
		io.WriteString(tableW, "table\n")
		io.WriteString(dataW, "data\n")
		return nil
	})
	if err != nil {
		t.Fatalf("writeOutputs failed: %v", err)
	}

	table, err := os.ReadFile(tablePath)
	if err != nil {
		t.Fatalf("reading table output: %v", err)
	}
	if string(table) != "table\n" {
		t.Errorf("expected %q, got %q", "table\n", table)
	}
	data, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("reading data output: %v", err)
	}
	if string(data) != "data\n" {
		t.Errorf("expected %q, got %q", "data\n", data)
	}
}

func TestWriteOutputs_CleanupOnError(t *testing.T) {
	dir := t.TempDir()
	tablePath := filepath.Join(dir, "out.tab")
	dataPath := filepath.Join(dir, "out.dat")

	boom := errors.New("boom")
	err := writeOutputs(tablePath, dataPath, func(tableW, dataW io.Writer) error {
		io.WriteString(tableW, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}

	if _, err := os.Stat(tablePath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected the table output to be removed, got %v", err)
	}
	if _, err := os.Stat(dataPath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected the data output to be removed, got %v", err)
	}
}
