/*
 * edist - Equality bitmap builder.
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

// buildPeq constructs the per-symbol, per-block equality bitmap for
// query. Peq[s][b] has bit i set iff query[b*WordSize+i] == s; bit i
// within the most significant position corresponds to the deepest row
// of the block. Positions at or beyond len(query) never match a real
// symbol, only the synthetic wildcard row appended at index
// alphabetSize, which is all-ones.
func buildPeq(query []uint16, alphabetSize int) [][]uint64 {
	blockCount := ceilDiv(len(query), WordSize)
	if blockCount == 0 {
		blockCount = 1
	}

	peq := make([][]uint64, alphabetSize+1)
	for s := range peq {
		peq[s] = make([]uint64, blockCount)
	}

	for pos, sym := range query {
		b := pos / WordSize
		i := pos % WordSize
		peq[sym][b] |= uint64(1) << uint(i)
	}

	wildcard := peq[alphabetSize]
	for b := range wildcard {
		wildcard[b] = ^uint64(0)
	}

	return peq
}

func ceilDiv(x, y int) int {
	if x <= 0 {
		return 0
	}
	return (x + y - 1) / y
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
