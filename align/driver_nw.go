/*
 * edist - Banded column driver, NW (global) mode.
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

// strongReducePeriod is how often (in columns) the band gets a second,
// stronger shrink pass on top of the per-column one.
const strongReducePeriod = 2048

// nwOutcome is the result of one NW banded pass: the edit distance (or
// notFound) and, when snapshotting was requested, the stored columns
// traceback walks.
type nwOutcome struct {
	score   int // -1 if not found
	store   *snapshotStore
	blocks  int // blockCount, for callers that need it
	padding int
}

// nwAlign runs the NW (global) banded driver described by the
// Block-Kernel/Banded-Column-Driver contract: every column's band
// grows and shrinks around Ukkonen's bound, and the true bottom-right
// cell's score is recovered by peeling the query's padding rows off
// the last block once the final column is reached.
func nwAlign(query, target []uint16, alphabetSize, k int, wantPath bool) nwOutcome {
	m, n := len(query), len(target)
	blockCount := ceilDiv(m, WordSize)
	if blockCount == 0 {
		blockCount = 1
	}
	padding := blockCount*WordSize - m

	if k < absInt(n-m) {
		return nwOutcome{score: -1}
	}
	if k > maxInt(m, n) {
		k = maxInt(m, n)
	}

	peq := buildPeq(query, alphabetSize)

	first := 0
	last := minInt(blockCount, ceilDiv(minInt(k, (k+m-n)/2)+1, WordSize)) - 1
	if last < 0 {
		last = 0
	}

	blocks := make([]block, blockCount)
	for b := 0; b <= last; b++ {
		blocks[b] = block{p: ^uint64(0), m: 0, score: (b + 1) * WordSize}
	}

	var store *snapshotStore
	if wantPath {
		store = newSnapshotStore(n)
	}

	died := false
	for c := 0; c < n; c++ {
		peqCol := peq[target[c]]

		hin := 1
		for b := first; b <= last; b++ {
			p2, m2, hout := calculateBlock(blocks[b].p, blocks[b].m, peqCol[b], hin)
			blocks[b].p, blocks[b].m = p2, m2
			blocks[b].score += hout
			hin = hout
		}
		lastHout := hin

		bound := maxInt(n-c-1, m-((last+1)*WordSize-1)-1)
		extra := 0
		if last == blockCount-1 {
			extra = padding
		}
		if cand := blocks[last].score + bound + extra; cand < k {
			k = cand
		}

		if last+1 < blockCount &&
			(last+1)*WordSize-1 <= k-blocks[last].score+2*WordSize-2-n+c+m {
			last++
			p2, m2, hout := calculateBlock(^uint64(0), 0, peqCol[last], lastHout)
			blocks[last] = block{
				p:     p2,
				m:     m2,
				score: blocks[last-1].score - lastHout + WordSize + hout,
			}
			traceBand(c, first, last, "grow")
		}

		for last >= first && blocks[last].score >= k+WordSize {
			last--
		}
		for first <= last &&
			(blocks[first].score >= k+WordSize ||
				(first+1)*WordSize-1 < blocks[first].score-k-n+m+c) {
			first++
		}

		if (c+1)%strongReducePeriod == 0 {
			// A cell is feasible iff its score plus the Manhattan
			// distance remaining to the target corner still fits
			// within k. The per-column checks above only ever look at
			// a block's bottom row; this walks every row in the
			// outer blocks and drops one only if none of its rows
			// clear that bound.
			feasible := func(row, rowScore int) bool {
				rowBound := maxInt(n-c-1, m-row-1)
				return rowScore+rowBound <= k
			}
			for first <= last &&
				blockRowsAllFail(blocks[first].p, blocks[first].m, blocks[first].score,
					(first+1)*WordSize-1, m, feasible) {
				first++
			}
			for last >= first &&
				blockRowsAllFail(blocks[last].p, blocks[last].m, blocks[last].score,
					(last+1)*WordSize-1, m, feasible) {
				last--
			}
			traceBand(c, first, last, "strong reduce")
		}

		if last < first {
			died = true
			traceBand(c, first, last, "band collapsed")
			break
		}

		traceColumn(c, first, last, blocks)

		if store != nil {
			store.capture(c, first, last, blocks)
		}
	}

	if died || last != blockCount-1 {
		return nwOutcome{score: -1, blocks: blockCount, padding: padding}
	}

	trueScore := peelUp(blocks[last].p, blocks[last].m, blocks[last].score, padding)
	if trueScore > k {
		return nwOutcome{score: -1, blocks: blockCount, padding: padding}
	}

	return nwOutcome{score: trueScore, store: store, blocks: blockCount, padding: padding}
}
