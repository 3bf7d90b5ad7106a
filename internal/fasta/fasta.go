/*
 * edist - FASTA sequence reader.
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

// Package fasta reads FASTA-formatted sequence files, building the
// alphabet on the fly the same way as it streams: the first time a
// byte is seen it's assigned the next free symbol code.
package fasta

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rcornwell/edist/align"
)

// Record is one ">"-headed sequence: its name, the raw residue bytes,
// and the symbol codes assigned against a shared Alphabet.
type Record struct {
	Name    string
	Raw     []byte
	Symbols []uint16
}

// Reader streams Records from a FASTA file, accumulating symbols into
// a single shared Alphabet so that Records read from separate files
// (query and target) still compare symbol-for-symbol.
type Reader struct {
	alphabet *align.Alphabet
	scanner  *bufio.Scanner
	pending  *Record
}

// NewReader wraps r, assigning codes into alphabet as new bytes are
// encountered. Pass a fresh *align.Alphabet to read query and target
// files against a common symbol space.
func NewReader(r io.Reader, alphabet *align.Alphabet) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	return &Reader{alphabet: alphabet, scanner: scanner}
}

// Alphabet returns the shared alphabet this reader is populating.
func (r *Reader) Alphabet() *align.Alphabet {
	return r.alphabet
}

// Next returns the next Record, or io.EOF once the file is exhausted.
func (r *Reader) Next() (Record, error) {
	var rec *Record

	for r.scanner.Scan() {
		line := r.scanner.Text()
		if len(line) == 0 {
			continue
		}

		if line[0] == '>' {
			if r.pending != nil {
				rec = r.pending
			}
			name := line[1:]
			r.pending = &Record{Name: name}
			if rec != nil {
				return *rec, nil
			}
			continue
		}

		if r.pending == nil {
			return Record{}, fmt.Errorf("fasta: sequence data before any header")
		}
		r.appendLine(line)
	}

	if err := r.scanner.Err(); err != nil {
		return Record{}, fmt.Errorf("fasta: %w", err)
	}

	if r.pending != nil {
		rec := *r.pending
		r.pending = nil
		return rec, nil
	}
	return Record{}, io.EOF
}

func (r *Reader) appendLine(line string) {
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\r' {
			continue
		}
		r.pending.Raw = append(r.pending.Raw, c)
		r.pending.Symbols = append(r.pending.Symbols, r.alphabet.Encode1(c))
	}
}

// ReadAll drains r into a slice of Records.
func ReadAll(r io.Reader, alphabet *align.Alphabet) ([]Record, error) {
	reader := NewReader(r, alphabet)
	var records []Record
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
