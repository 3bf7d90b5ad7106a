/*
 * edist - Format block state as hex for tracing.
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

// Package hexdump formats the bit-parallel P/M block words and block
// scores into human-readable hex for --trace diagnostics.
package hexdump

import "strings"

var hexMap = "0123456789ABCDEF"

// FormatWord64 appends the 16 hex digits of a 64-bit block word to str,
// followed by a separating space.
func FormatWord64(str *strings.Builder, word uint64) {
	shift := 60
	for range 16 {
		str.WriteByte(hexMap[(word>>uint(shift))&0xf])
		shift -= 4
	}
	str.WriteByte(' ')
}

// FormatBlocks appends the hex form of every block word in a column to str.
func FormatBlocks(str *strings.Builder, words []uint64) {
	for _, w := range words {
		FormatWord64(str, w)
	}
}

// FormatScore appends a decimal block score, space-padded to width w.
func FormatScore(str *strings.Builder, score int, w int) {
	s := formatInt(score)
	for len(s) < w {
		s = " " + s
	}
	str.WriteString(s)
	str.WriteByte(' ')
}

func formatInt(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var b [24]byte
	i := len(b)
	for v > 0 {
		i--
		b[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		b[i] = '-'
	}
	return string(b[i:])
}

// FormatColumn renders one driver column as "P...  M...  score..." triples,
// one per live block, for --trace output.
func FormatColumn(p, m []uint64, score []int) string {
	var str strings.Builder
	for i := range p {
		FormatWord64(&str, p[i])
		FormatWord64(&str, m[i])
		FormatScore(&str, score[i], 6)
		if i != len(p)-1 {
			str.WriteString("| ")
		}
	}
	return str.String()
}

// ColumnState carries one banded-driver column's live block words so a
// log handler can render them with FormatColumn itself, rather than
// the caller pre-rendering a string attribute.
type ColumnState struct {
	P     []uint64
	M     []uint64
	Score []int
}

// Render formats the column state the same way FormatColumn does.
func (c ColumnState) Render() string {
	return FormatColumn(c.P, c.M, c.Score)
}
