/*
 * edist - Mode dispatcher and k auto-expansion.
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

// dispatch selects the banded driver for cfg.Mode, auto-expanding k by
// geometric doubling (starting at WordSize) when cfg.K is negative,
// and assembles whatever Config.Task asked for.
func dispatch(query, target []uint16, alphabetSize int, cfg Config) (Result, error) {
	m, n := len(query), len(target)
	wantPath := cfg.Task == TaskPath

	k := cfg.K
	auto := k < 0
	if auto {
		k = WordSize
	}
	limit := maxInt(m, n)

	for {
		var (
			score        int
			endLocations []int
			store        *snapshotStore
			blocks       int
		)

		switch cfg.Mode {
		case ModeGlobal:
			out := nwAlign(query, target, alphabetSize, k, wantPath)
			score = out.score
			store = out.store
			blocks = out.blocks
			if score >= 0 {
				endLocations = []int{n - 1}
			}
		case ModePrefix, ModeInfix:
			out := semiGlobalAlign(query, target, alphabetSize, k, cfg.Mode, wantPath)
			score = out.score
			endLocations = out.ends
			store = out.store
			blocks = out.blocks
		default:
			return Result{}, fmt.Errorf("align: unknown mode %d", cfg.Mode)
		}

		if score < 0 {
			if auto && k < limit {
				if debugflags.Enabled(debugflags.Band) {
					slog.Debug("k expand", "failed_k", k, "blocks", blocks, "limit", limit)
				}
				k *= 2
				if k > limit {
					k = limit
				}
				continue
			}
			return Result{EditDistance: -1, AlphabetSize: alphabetSize}, nil
		}

		return assembleResult(query, target, alphabetSize, cfg, score, endLocations, store)
	}
}

// assembleResult fills in start locations and/or the edit script
// according to cfg.Task, reusing the snapshot store the winning NW
// pass already built, or rerunning bounded NW replays for the
// cross-mode path assembly SHW and HW need (see traceback.go).
func assembleResult(query, target []uint16, alphabetSize int, cfg Config, score int, endLocations []int, store *snapshotStore) (Result, error) {
	res := Result{
		EditDistance: score,
		EndLocations: endLocations,
		AlphabetSize: alphabetSize,
	}

	if cfg.Task == TaskDistance {
		return res, nil
	}

	switch cfg.Mode {
	case ModeGlobal:
		res.StartLocations = []int{0}
		if cfg.Task == TaskPath {
			if store == nil {
				return res, fmt.Errorf("align: path requested but no snapshot was recorded")
			}
			script, err := tracebackNW(store, len(query), len(target)-1)
			if err != nil {
				return Result{}, err
			}
			res.Script = script
		}

	case ModePrefix:
		res.StartLocations = make([]int, len(endLocations))
		if cfg.Task == TaskPath {
			end := endLocations[0]
			script, err := pathSHW(query, target, alphabetSize, score, end)
			if err != nil {
				return Result{}, err
			}
			res.Script = script
		}

	case ModeInfix:
		starts := make([]int, len(endLocations))
		if cfg.Task == TaskPath {
			moves, start, err := pathHW(query, target, alphabetSize, score, endLocations[0])
			if err != nil {
				return Result{}, err
			}
			starts[0] = start
			for i := 1; i < len(endLocations); i++ {
				s, err := startLocationHW(query, target, alphabetSize, score, endLocations[i])
				if err != nil {
					return Result{}, err
				}
				starts[i] = s
			}
			res.Script = moves
		} else {
			for i, end := range endLocations {
				s, err := startLocationHW(query, target, alphabetSize, score, end)
				if err != nil {
					return Result{}, err
				}
				starts[i] = s
			}
		}
		res.StartLocations = starts
	}

	return res, nil
}
