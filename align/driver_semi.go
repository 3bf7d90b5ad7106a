/*
 * edist - Banded column driver, SHW (prefix) and HW (infix) modes.
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

// semiOutcome is the result of one SHW/HW banded pass: the best score
// found (or notFound) plus every target column achieving it.
type semiOutcome struct {
	score   int // -1 if never found within k
	ends    []int
	store   *snapshotStore
	blocks  int
	padding int
}

// semiGlobalAlign runs the SHW/HW banded driver. SHW penalizes a
// leading target gap (hin == +1 at the top of every column, and the
// band's low end is advanced away once it can no longer beat k); HW
// does not (hin == 0), so the low end stays pinned at block 0 and a
// fresh match may start at any column. Both modes read a column's
// bottom-right candidate only once the band has reached the query's
// last real row, after peeling off the padding rows' accumulated
// (and otherwise meaningless) cost the same way the NW driver does.
func semiGlobalAlign(query, target []uint16, alphabetSize, k int, mode Mode, wantPath bool) semiOutcome {
	m, n := len(query), len(target)
	blockCount := ceilDiv(m, WordSize)
	if blockCount == 0 {
		blockCount = 1
	}
	padding := blockCount*WordSize - m

	if mode == ModeInfix && k > m {
		k = m
	}

	peq := buildPeq(query, alphabetSize)

	first := 0
	last := minInt(blockCount, ceilDiv(k+1, WordSize)) - 1
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

	hinTop := 1
	if mode == ModeInfix {
		hinTop = 0
	}

	bestScore := -1
	var ends []int

	for c := 0; c < n; c++ {
		peqCol := peq[target[c]]

		hin := hinTop
		for b := first; b <= last; b++ {
			p2, m2, hout := calculateBlock(blocks[b].p, blocks[b].m, peqCol[b], hin)
			blocks[b].p, blocks[b].m = p2, m2
			blocks[b].score += hout
			hin = hout
		}
		lastHout := hin

		if mode == ModePrefix {
			for first <= last && blocks[first].score >= k+WordSize {
				first++
			}
			if (c+1)%strongReducePeriod == 0 {
				// SHW frees the trailing target gap, so a row's only
				// remaining cost is finishing the query; unlike NW,
				// the column position contributes nothing. Walk every
				// row of the first block rather than just its bottom
				// row, the same way the NW driver's strong reduce does.
				feasible := func(row, rowScore int) bool {
					return rowScore+(m-row-1) <= k
				}
				for first <= last &&
					blockRowsAllFail(blocks[first].p, blocks[first].m, blocks[first].score,
						(first+1)*WordSize-1, m, feasible) {
					first++
				}
				traceBand(c, first, last, "strong reduce")
			}
		}

		if last+1 < blockCount &&
			blocks[last].score-lastHout <= k &&
			(peqCol[last+1]&1 != 0 || lastHout < 0) {
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
		if mode == ModeInfix && last < 0 {
			last = 0
		}

		if last < first {
			traceBand(c, first, last, "band collapsed")
			break
		}

		traceColumn(c, first, last, blocks)

		if store != nil {
			store.capture(c, first, last, blocks)
		}

		if last == blockCount-1 {
			trueScore := peelUp(blocks[last].p, blocks[last].m, blocks[last].score, padding)
			if trueScore <= k {
				switch {
				case bestScore == -1 || trueScore < bestScore:
					bestScore = trueScore
					ends = []int{c}
				case trueScore == bestScore:
					ends = append(ends, c)
				}
			}
		}
	}

	return semiOutcome{score: bestScore, ends: ends, store: store, blocks: blockCount, padding: padding}
}
