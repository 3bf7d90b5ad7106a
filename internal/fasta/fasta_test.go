/*
 * edist - FASTA sequence reader test set.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package fasta

import (
	"io"
	"strings"
	"testing"

	"github.com/rcornwell/edist/align"
)

func TestReadAllSingleRecord(t *testing.T) {
	in := ">seq1\nACGT\nACGT\n"
	alphabet := align.NewAlphabet()
	records, err := ReadAll(strings.NewReader(in), alphabet)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Name != "seq1" {
		t.Fatalf("Name = %q, want seq1", rec.Name)
	}
	if string(rec.Raw) != "ACGTACGT" {
		t.Fatalf("Raw = %q, want ACGTACGT", rec.Raw)
	}
	if len(rec.Symbols) != len(rec.Raw) {
		t.Fatalf("len(Symbols) = %d, want %d", len(rec.Symbols), len(rec.Raw))
	}
}

func TestReadAllMultipleRecords(t *testing.T) {
	in := ">a\nAC\n>b\nGT\n"
	alphabet := align.NewAlphabet()
	records, err := ReadAll(strings.NewReader(in), alphabet)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Name != "a" || records[1].Name != "b" {
		t.Fatalf("names = %q, %q, want a, b", records[0].Name, records[1].Name)
	}
}

func TestReadAllSharesAlphabet(t *testing.T) {
	alphabet := align.NewAlphabet()
	query, err := ReadAll(strings.NewReader(">q\nAC\n"), alphabet)
	if err != nil {
		t.Fatalf("ReadAll query: %v", err)
	}
	target, err := ReadAll(strings.NewReader(">t\nCA\n"), alphabet)
	if err != nil {
		t.Fatalf("ReadAll target: %v", err)
	}

	// 'A' and 'C' were both assigned codes while reading query; target
	// reuses the same codes rather than minting new ones.
	if query[0].Symbols[0] != target[0].Symbols[1] {
		t.Fatalf("code for 'A' diverged between files: %d != %d", query[0].Symbols[0], target[0].Symbols[1])
	}
	if query[0].Symbols[1] != target[0].Symbols[0] {
		t.Fatalf("code for 'C' diverged between files: %d != %d", query[0].Symbols[1], target[0].Symbols[0])
	}
}

func TestReadAllStripsCR(t *testing.T) {
	in := ">seq\r\nAC\r\nGT\r\n"
	records, err := ReadAll(strings.NewReader(in), align.NewAlphabet())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(records[0].Raw) != "ACGT" {
		t.Fatalf("Raw = %q, want ACGT (no \\r)", records[0].Raw)
	}
}

func TestReadAllEmptyInput(t *testing.T) {
	records, err := ReadAll(strings.NewReader(""), align.NewAlphabet())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records, want 0", len(records))
	}
}

func TestNextReturnsEOF(t *testing.T) {
	r := NewReader(strings.NewReader(">a\nAC\n"), align.NewAlphabet())
	if _, err := r.Next(); err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("second Next error = %v, want io.EOF", err)
	}
}

func TestSequenceBeforeHeaderErrors(t *testing.T) {
	_, err := ReadAll(strings.NewReader("ACGT\n"), align.NewAlphabet())
	if err == nil {
		t.Fatal("expected error for sequence data before any header")
	}
}

func TestReaderAlphabet(t *testing.T) {
	alphabet := align.NewAlphabet()
	r := NewReader(strings.NewReader(">a\nAC\n"), alphabet)
	if r.Alphabet() != alphabet {
		t.Fatal("Alphabet() did not return the shared alphabet passed to NewReader")
	}
}
