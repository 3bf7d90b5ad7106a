/*
 * edist - Block kernel (Advance-Block).
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

// WordSize is the bit width of one block. The kernel only assumes a
// fixed-width unsigned integer supporting add, xor, shift and bitwise
// logic, so this is the only place a wider word would need to change.
const WordSize = 64

const highBit uint64 = 1 << (WordSize - 1)

// calculateBlock advances one block one column. pv/mv are the
// block's vertical-difference bitvectors on input, eq is the block's
// equality mask for the current target symbol, hin is the horizontal
// difference entering the block's top cell (-1, 0 or +1). It returns
// the block's new vertical differences and the horizontal difference
// leaving its bottom cell.
func calculateBlock(pv, mv, eq uint64, hin int) (pvOut, mvOut uint64, hout int) {
	xv := eq | mv
	if hin < 0 {
		eq |= 1
	}
	xh := (((eq & pv) + pv) ^ pv) | eq

	ph := mv | ^(xh | pv)
	mh := pv & xh

	hout = 0
	if ph&highBit != 0 {
		hout = 1
	} else if mh&highBit != 0 {
		hout = -1
	}

	ph <<= 1
	mh <<= 1

	if hin < 0 {
		mh |= 1
	} else if hin > 0 {
		ph |= 1
	}

	pvOut = mh | ^(xv | ph)
	mvOut = ph & xv
	return pvOut, mvOut, hout
}

// peelUp walks a block's stored (p, m, score) up steps rows, from the
// block's bottom row toward its top, undoing one vertical difference
// per step. It reconstructs the score of any row above a block's
// bottom using only what was stored for that block's bottom row.
func peelUp(p, m uint64, score, steps int) int {
	for i := 0; i < steps; i++ {
		switch {
		case p&highBit != 0:
			score--
		case m&highBit != 0:
			score++
		}
		p <<= 1
		m <<= 1
	}
	return score
}

// blockRowsAllFail walks a block's stored (p, m, score) from its
// bottom row (queryRow, the largest real or padding row the block
// covers) upward one row at a time, the same way peelUp does, and
// reports whether every real row (rows at or beyond queryLen are
// padding and are skipped) fails feasible. It stops as soon as one row
// passes, so a block only gets walked in full when every one of its
// rows is infeasible. This is the bit-level per-row check the coarse
// per-column score comparison approximates: that comparison only ever
// looks at a block's bottom row, so it can miss a block whose bottom
// row still looks feasible while every other row in it does not.
func blockRowsAllFail(p, m uint64, score, queryRow, queryLen int, feasible func(row, score int) bool) bool {
	row := queryRow
	for i := 0; i < WordSize && row >= 0; i++ {
		if row < queryLen && feasible(row, score) {
			return false
		}
		switch {
		case p&highBit != 0:
			score--
		case m&highBit != 0:
			score++
		}
		p <<= 1
		m <<= 1
		row--
	}
	return true
}
