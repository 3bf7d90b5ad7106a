/*
 * edist - Public alignment API.
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

// Package align implements Myers' bit-parallel edit-distance
// algorithm with Ukkonen's banded optimization, in global (NW),
// prefix (SHW) and infix (HW) variants.
package align

import "fmt"

// Mode selects which of the three alignment semantics to run.
type Mode int

const (
	ModeGlobal Mode = iota // NW: both sequences consumed in full
	ModePrefix             // SHW: leading target gap is penalized, trailing is free
	ModeInfix              // HW: both leading and trailing target gaps are free
)

// Task selects how much of the result to compute.
type Task int

const (
	TaskDistance Task = iota // editDistance + endLocations
	TaskLoc                  // adds startLocations
	TaskPath                 // adds script, and implicitly start/end locations
)

// CigarFormat selects the run-length alphabet ToCIGAR emits.
type CigarFormat int

const (
	CigarExtended CigarFormat = iota // '=', 'X', 'I', 'D'
	CigarStandard                    // 'M', 'I', 'D'
)

// Move is one step of an edit script.
type Move uint8

const (
	MoveMatch Move = iota
	MoveInsertToTarget
	MoveInsertToQuery
	MoveMismatch
)

// Config carries the per-call alignment parameters. Additional
// equality classes are a Symbol Table concern and are applied via
// Alphabet.AddEquality before Align ever sees symbol codes.
type Config struct {
	K    int // negative means auto-expand starting from WordSize
	Mode Mode
	Task Task
}

// Result is what Align found. EndLocations and, when requested,
// StartLocations name zero-based target positions; they share an
// index: StartLocations[i] corresponds to EndLocations[i].
//
// EditDistance is -1 when no alignment scoring at most Config.K
// exists; in that case every other field except AlphabetSize is
// empty/absent.
type Result struct {
	EditDistance   int
	EndLocations   []int
	StartLocations []int
	Script         []Move
	AlphabetSize   int
}

// Align computes the edit distance (and, depending on Config.Task,
// locations and an edit script) between query and target, both
// already-resolved symbol-code sequences in [0, alphabetSize).
func Align(query, target []uint16, alphabetSize int, cfg Config) (Result, error) {
	if alphabetSize < 0 {
		return Result{}, fmt.Errorf("align: negative alphabet size %d", alphabetSize)
	}
	if cfg.Mode < ModeGlobal || cfg.Mode > ModeInfix {
		return Result{}, fmt.Errorf("align: unknown mode %d", cfg.Mode)
	}
	if cfg.Task < TaskDistance || cfg.Task > TaskPath {
		return Result{}, fmt.Errorf("align: unknown task %d", cfg.Task)
	}
	if err := validateCodes(query, alphabetSize); err != nil {
		return Result{}, fmt.Errorf("align: query: %w", err)
	}
	if err := validateCodes(target, alphabetSize); err != nil {
		return Result{}, fmt.Errorf("align: target: %w", err)
	}

	if len(query) == 0 {
		return zeroQueryResult(cfg, len(target), alphabetSize), nil
	}

	return dispatch(query, target, alphabetSize, cfg)
}

func validateCodes(codes []uint16, alphabetSize int) error {
	for _, c := range codes {
		if int(c) >= alphabetSize {
			return fmt.Errorf("symbol code %d is not below alphabet size %d", c, alphabetSize)
		}
	}
	return nil
}

// zeroQueryResult handles the degenerate empty-query case directly:
// the core driver's band bookkeeping assumes at least one block.
func zeroQueryResult(cfg Config, n, alphabetSize int) Result {
	switch cfg.Mode {
	case ModeGlobal:
		dist := n
		if cfg.K >= 0 && dist > cfg.K {
			return Result{EditDistance: -1, AlphabetSize: alphabetSize}
		}
		res := Result{EditDistance: dist, EndLocations: []int{maxInt(n-1, 0)}, AlphabetSize: alphabetSize}
		if cfg.Task >= TaskLoc {
			res.StartLocations = []int{0}
		}
		if cfg.Task == TaskPath {
			res.Script = make([]Move, n)
			for i := range res.Script {
				res.Script[i] = MoveInsertToQuery
			}
		}
		return res
	default: // SHW and HW: an empty query matches the empty substring, trivially, for free
		res := Result{EditDistance: 0, EndLocations: []int{-1}, AlphabetSize: alphabetSize}
		if cfg.Task >= TaskLoc {
			res.StartLocations = []int{-1}
		}
		return res
	}
}
