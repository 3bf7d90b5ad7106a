/*
 * edist - Traceback and cross-mode path assembly.
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
	"fmt"
	"log/slog"

	"github.com/rcornwell/edist/internal/debugflags"
)

// tracebackNW walks a snapshot store built by nwAlign from the query's
// true last row back to the top-left corner, emitting one move per
// step. Ties between an upward and an up-left step favor upward, per
// the move rule's stated order.
func tracebackNW(store *snapshotStore, m, endColumn int) ([]Move, error) {
	r, c := m-1, endColumn
	cur, ok := store.cellScore(r, c)
	if !ok {
		return nil, fmt.Errorf("traceback: start cell (row %d, col %d) not in recorded band", r, c)
	}

	trace := debugflags.Enabled(debugflags.Traceback)

	var moves []Move
	for r >= 0 && c >= 0 {
		if upper, upOK := store.cellScore(r-1, c); upOK && upper+1 == cur {
			moves = append(moves, MoveInsertToTarget)
			if trace {
				slog.Debug("traceback", "row", r, "col", c, "move", "insertToTarget")
			}
			r--
			cur = upper
			continue
		}

		if left, leftOK := store.cellScore(r, c-1); leftOK && left+1 == cur {
			moves = append(moves, MoveInsertToQuery)
			if trace {
				slog.Debug("traceback", "row", r, "col", c, "move", "insertToQuery")
			}
			c--
			cur = left
			continue
		}

		if ul, ulOK := store.cellScore(r-1, c-1); ulOK {
			if ul == cur {
				moves = append(moves, MoveMatch)
				if trace {
					slog.Debug("traceback", "row", r, "col", c, "move", "match")
				}
			} else {
				moves = append(moves, MoveMismatch)
				if trace {
					slog.Debug("traceback", "row", r, "col", c, "move", "mismatch")
				}
			}
			r--
			c--
			cur = ul
			continue
		}

		break
	}

	for r >= 0 {
		moves = append(moves, MoveInsertToTarget)
		r--
	}
	for c >= 0 {
		moves = append(moves, MoveInsertToQuery)
		c--
	}

	reverseMoves(moves)
	return moves, nil
}

func reverseMoves(moves []Move) {
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
}

func reverseSymbols(s []uint16) []uint16 {
	out := make([]uint16, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// pathSHW obtains the edit script for a prefix-mode (SHW) alignment by
// rerunning the NW driver over target[0..endLocation], which behaves
// identically to SHW up to that column since both modes penalize the
// leading target gap; only SHW's free trailing gap, already resolved
// by endLocation, differs.
func pathSHW(query, target []uint16, alphabetSize, score, endLocation int) ([]Move, error) {
	prefix := target[:endLocation+1]
	out := nwAlign(query, prefix, alphabetSize, score, true)
	if out.score != score || out.store == nil {
		return nil, fmt.Errorf("traceback: SHW prefix replay did not reproduce score %d", score)
	}
	return tracebackNW(out.store, len(query), endLocation)
}

// pathHW obtains the edit script for an infix-mode (HW) alignment. The
// start location isn't known from the forward pass, so it is found by
// reversing query and target[0..endLocation] and running a bounded
// SHW search: the reverse search's end column is (endLocation -
// startLocation) in the original orientation. The path is then the NW
// traceback over target[startLocation..endLocation].
func pathHW(query, target []uint16, alphabetSize, score, endLocation int) (moves []Move, startLocation int, err error) {
	startLocation, err = startLocationHW(query, target, alphabetSize, score, endLocation)
	if err != nil {
		return nil, 0, err
	}

	window := target[startLocation : endLocation+1]
	out := nwAlign(query, window, alphabetSize, score, true)
	if out.score != score || out.store == nil {
		return nil, 0, fmt.Errorf("traceback: HW window replay did not reproduce score %d", score)
	}
	moves, err = tracebackNW(out.store, len(query), len(window)-1)
	if err != nil {
		return nil, 0, err
	}
	return moves, startLocation, nil
}

// startLocationHW finds only the start location of an HW match, via
// the reverse bounded search described in pathHW, without the
// subsequent NW replay and traceback a full path needs.
func startLocationHW(query, target []uint16, alphabetSize, score, endLocation int) (int, error) {
	revQuery := reverseSymbols(query)
	revTarget := reverseSymbols(target[:endLocation+1])

	rev := semiGlobalAlign(revQuery, revTarget, alphabetSize, score, ModePrefix, false)
	if rev.score != score || len(rev.ends) == 0 {
		return 0, fmt.Errorf("traceback: HW reverse search did not reproduce score %d", score)
	}
	return endLocation - rev.ends[0], nil
}
