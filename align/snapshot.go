/*
 * edist - Alignment store: per-column snapshots for traceback.
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

// block is one band member's bit-parallel state: the vertical
// difference vectors and the DP score of the block's bottom row.
type block struct {
	p, m  uint64
	score int
}

// columnSnapshot captures the live band after one column has been
// fully processed, so traceback can reconstruct any cell within it.
type columnSnapshot struct {
	first, last int
	blocks      []block // blocks[i] is absolute block first+i
}

func (c *columnSnapshot) blockAt(b int) (block, bool) {
	if c == nil || b < c.first || b > c.last {
		return block{}, false
	}
	return c.blocks[b-c.first], true
}

// snapshotStore holds one columnSnapshot per target column, forming
// the rectangular grid traceback walks backward through.
type snapshotStore struct {
	columns []columnSnapshot
}

func newSnapshotStore(n int) *snapshotStore {
	return &snapshotStore{columns: make([]columnSnapshot, n)}
}

func (s *snapshotStore) capture(c, first, last int, blocks []block) {
	cp := make([]block, last-first+1)
	copy(cp, blocks[first:last+1])
	s.columns[c] = columnSnapshot{first: first, last: last, blocks: cp}
}

// cellScore reconstructs the DP value at (row r, column c), where
// r == -1 or c == -1 denotes the initial NW boundary (score == the
// other index + 1, or 0 at the corner). It reports false when the
// cell's block fell outside the recorded band for that column.
func (s *snapshotStore) cellScore(r, c int) (int, bool) {
	if r < -1 || c < -1 || c >= len(s.columns) {
		return 0, false
	}
	if r == -1 {
		return c + 1, true
	}
	if c == -1 {
		return r + 1, true
	}

	b := r / WordSize
	blk, ok := s.columns[c].blockAt(b)
	if !ok {
		return 0, false
	}
	i := r % WordSize
	steps := (WordSize - 1) - i
	return peelUp(blk.p, blk.m, blk.score, steps), true
}
