/*
 * edist - Driver trace hooks.
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

package align

import (
	"log/slog"

	"github.com/rcornwell/edist/internal/debugflags"
	"github.com/rcornwell/edist/internal/hexdump"
)

// traceColumn logs the live blocks' P/M/score state for one column,
// gated on debugflags.Block so the hex formatting never runs on the
// hot path when tracing is off.
func traceColumn(c, first, last int, blocks []block) {
	if !debugflags.Enabled(debugflags.Block) {
		return
	}
	p := make([]uint64, last-first+1)
	m := make([]uint64, last-first+1)
	score := make([]int, last-first+1)
	for i := first; i <= last; i++ {
		p[i-first] = blocks[i].p
		m[i-first] = blocks[i].m
		score[i-first] = blocks[i].score
	}
	slog.Debug("block", "column", c, "first", first, "last", last,
		"state", hexdump.ColumnState{P: p, M: m, Score: score})
}

// traceBand logs a band boundary change, gated on debugflags.Band.
func traceBand(c int, first, last int, reason string) {
	if !debugflags.Enabled(debugflags.Band) {
		return
	}
	slog.Debug("band", "column", c, "first", first, "last", last, "reason", reason)
}
