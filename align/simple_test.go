/*
 * edist - O(m*n) reference edit distance, test-only.
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

// simpleResult is what simpleEditDistance computes: the textbook O(m*n)
// DP, used only to check the banded driver's answers in tests.
type simpleResult struct {
	score int
	ends  []int // columns (0-based) achieving score, per mode's semantics
}

// simpleEditDistance runs the unbanded DP column by column, exactly
// mirroring the banded driver's boundary conditions per mode: NW
// charges for both a leading and trailing target gap, SHW only a
// leading one, HW neither.
func simpleEditDistance(query, target []uint16, mode Mode) simpleResult {
	m, n := len(query), len(target)
	if m == 0 {
		if mode == ModeGlobal {
			return simpleResult{score: n, ends: []int{n - 1}}
		}
		return simpleResult{score: 0, ends: []int{-1}}
	}
	if n == 0 && mode == ModeGlobal {
		return simpleResult{score: m, ends: []int{-1}}
	}

	// col holds DP[*][c-1] (the previous target column); row -1 of
	// that column is rowMinus1Prev. Free leading gap (HW only) means
	// row -1 stays 0 across every target column instead of growing by
	// one per column.
	freeLeading := mode == ModeInfix

	col := make([]int, m)
	next := make([]int, m)
	for i := range col {
		col[i] = i + 1
	}
	rowMinus1Prev := 0 // DP[-1][-1]

	best := -1
	var ends []int
	record := func(c, score int) {
		switch {
		case best == -1 || score < best:
			best = score
			ends = []int{c}
		case score == best:
			ends = append(ends, c)
		}
	}

	for c := 0; c < n; c++ {
		rowMinus1 := c + 1
		if freeLeading {
			rowMinus1 = 0
		}

		matchCost := 0
		if target[c] != query[0] {
			matchCost = 1
		}
		next[0] = min3(rowMinus1+1, rowMinus1Prev+matchCost, col[0]+1)

		for r := 1; r < m; r++ {
			mCost := 0
			if target[c] != query[r] {
				mCost = 1
			}
			next[r] = min3(next[r-1]+1, col[r-1]+mCost, col[r]+1)
		}

		if mode != ModeGlobal || c == n-1 {
			record(c, next[m-1])
		}

		col, next = next, col
		rowMinus1Prev = rowMinus1
	}

	if best == -1 {
		return simpleResult{score: -1}
	}
	return simpleResult{score: best, ends: ends}
}

func min3(a, b, c int) int {
	return minInt(a, minInt(b, c))
}
