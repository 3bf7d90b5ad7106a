/*
 * edist - Alignment engine test cases.
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
	"math/rand"
	"sort"
	"testing"
)

// encodeTogether builds symbol codes for query and target over a
// shared alphabet, as a real caller (one Alphabet per document) would.
func encodeTogether(query, target string) ([]uint16, []uint16, int) {
	a := NewAlphabet()
	q := a.Encode([]byte(query))
	t := a.Encode([]byte(target))
	return q, t, a.Size()
}

func TestCalculateBlockAgreesWithBruteForceSingleBit(t *testing.T) {
	// One target character against 64 rows: eq has exactly one bit set,
	// so only that row can match; check the new vertical differences and
	// hout against a plain DP of the same column.
	for bit := 0; bit < WordSize; bit++ {
		for _, hin := range []int{-1, 0, 1} {
			eq := uint64(1) << uint(bit)
			pv, mv := ^uint64(0), uint64(0)
			p2, m2, hout := calculateBlock(pv, mv, eq, hin)

			// prev/cur[i+1] is row i; prev/cur[0] is the cell above row 0.
			prev := make([]int, WordSize+1)
			cur := make([]int, WordSize+1)
			for i := range prev {
				prev[i] = i
			}
			cur[0] = hin
			for i := 1; i <= WordSize; i++ {
				cost := 1
				if i-1 == bit {
					cost = 0
				}
				cur[i] = min3(cur[i-1]+1, prev[i-1]+cost, prev[i]+1)
				d := cur[i] - cur[i-1]
				if (p2>>uint(i-1)&1 == 1) != (d == 1) || (m2>>uint(i-1)&1 == 1) != (d == -1) {
					t.Fatalf("bit %d hin %d: row %d vertical difference %d not encoded in P/M", bit, hin, i-1, d)
				}
			}
			if hout != cur[WordSize]-prev[WordSize] {
				t.Fatalf("bit %d hin %d: hout %d, brute force %d", bit, hin, hout, cur[WordSize]-prev[WordSize])
			}
		}
	}
}

func TestPeelUpIdentity(t *testing.T) {
	if got := peelUp(0, 0, 42, 0); got != 42 {
		t.Fatalf("peelUp with 0 steps changed score: %d", got)
	}
}

func TestAgreesWithReferenceNW(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []byte("ACGT")

	for trial := 0; trial < 200; trial++ {
		qs := randomString(rng, alphabet, rng.Intn(40))
		ts := randomString(rng, alphabet, rng.Intn(40))
		q, tg, size := encodeTogether(qs, ts)

		want := simpleEditDistance(q, tg, ModeGlobal)

		got, err := Align(q, tg, size, Config{K: -1, Mode: ModeGlobal, Task: TaskDistance})
		if err != nil {
			t.Fatalf("Align error: %v", err)
		}
		if got.EditDistance != want.score {
			t.Fatalf("NW(%q,%q): got %d want %d", qs, ts, got.EditDistance, want.score)
		}
	}
}

func TestAgreesWithReferenceSHW(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []byte("AB")

	for trial := 0; trial < 200; trial++ {
		qs := randomString(rng, alphabet, rng.Intn(20))
		ts := randomString(rng, alphabet, rng.Intn(40))
		q, tg, size := encodeTogether(qs, ts)

		want := simpleEditDistance(q, tg, ModePrefix)

		got, err := Align(q, tg, size, Config{K: -1, Mode: ModePrefix, Task: TaskLoc})
		if err != nil {
			t.Fatalf("Align error: %v", err)
		}
		if got.EditDistance != want.score {
			t.Fatalf("SHW(%q,%q): got %d want %d", qs, ts, got.EditDistance, want.score)
		}
		if want.score >= 0 && !sameIntSet(got.EndLocations, want.ends) {
			t.Fatalf("SHW(%q,%q): endLocations got %v want %v", qs, ts, got.EndLocations, want.ends)
		}
	}
}

func TestAgreesWithReferenceHW(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	alphabet := []byte("AB")

	for trial := 0; trial < 200; trial++ {
		qs := randomString(rng, alphabet, 1+rng.Intn(15))
		ts := randomString(rng, alphabet, rng.Intn(60))
		q, tg, size := encodeTogether(qs, ts)

		want := simpleEditDistance(q, tg, ModeInfix)

		got, err := Align(q, tg, size, Config{K: -1, Mode: ModeInfix, Task: TaskLoc})
		if err != nil {
			t.Fatalf("Align error: %v", err)
		}
		if got.EditDistance != want.score {
			t.Fatalf("HW(%q,%q): got %d want %d", qs, ts, got.EditDistance, want.score)
		}
		if want.score >= 0 && !sameIntSet(got.EndLocations, want.ends) {
			t.Fatalf("HW(%q,%q): endLocations got %v want %v", qs, ts, got.EndLocations, want.ends)
		}
	}
}

func randomString(rng *rand.Rand, alphabet []byte, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}

func sameIntSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	ac := append([]int(nil), a...)
	bc := append([]int(nil), b...)
	sort.Ints(ac)
	sort.Ints(bc)
	for i := range ac {
		if ac[i] != bc[i] {
			return false
		}
	}
	return true
}

// TestKClamping checks that a supplied k never lets EditDistance
// exceed it, and that a too-small k correctly reports "not found".
func TestKClamping(t *testing.T) {
	q, tg, size := encodeTogether("kitten", "sitting")

	res, err := Align(q, tg, size, Config{K: 1, Mode: ModeGlobal, Task: TaskDistance})
	if err != nil {
		t.Fatalf("Align error: %v", err)
	}
	if res.EditDistance != -1 {
		t.Fatalf("expected no alignment within k=1, got %d", res.EditDistance)
	}

	res, err = Align(q, tg, size, Config{K: 3, Mode: ModeGlobal, Task: TaskDistance})
	if err != nil {
		t.Fatalf("Align error: %v", err)
	}
	if res.EditDistance != 3 {
		t.Fatalf("expected edit distance 3, got %d", res.EditDistance)
	}
}

// TestStartEndConsistency confirms StartLocations[i] and
// EndLocations[i] always satisfy start <= end for HW.
func TestStartEndConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	alphabet := []byte("ACGT")

	for trial := 0; trial < 100; trial++ {
		qs := randomString(rng, alphabet, 1+rng.Intn(10))
		ts := randomString(rng, alphabet, rng.Intn(50))
		q, tg, size := encodeTogether(qs, ts)

		res, err := Align(q, tg, size, Config{K: -1, Mode: ModeInfix, Task: TaskLoc})
		if err != nil {
			t.Fatalf("Align error: %v", err)
		}
		if res.EditDistance < 0 {
			continue
		}
		for i, end := range res.EndLocations {
			start := res.StartLocations[i]
			if start > end {
				t.Fatalf("HW(%q,%q): start %d > end %d", qs, ts, start, end)
			}
		}
	}
}

// TestScriptValidity replays every emitted script against query and
// target and checks it reconstructs the reported edit distance and
// consumes exactly the claimed span.
func TestScriptValidity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	alphabet := []byte("ACGT")

	modes := []Mode{ModeGlobal, ModePrefix, ModeInfix}
	for _, mode := range modes {
		for trial := 0; trial < 60; trial++ {
			qs := randomString(rng, alphabet, 1+rng.Intn(12))
			ts := randomString(rng, alphabet, rng.Intn(30))
			q, tg, size := encodeTogether(qs, ts)

			res, err := Align(q, tg, size, Config{K: -1, Mode: mode, Task: TaskPath})
			if err != nil {
				t.Fatalf("Align error: %v", err)
			}
			if res.EditDistance < 0 {
				continue
			}

			start := res.StartLocations[0]
			end := res.EndLocations[0]
			checkScript(t, q, tg, start, end, res.Script, res.EditDistance)
		}
	}
}

func checkScript(t *testing.T, query, target []uint16, start, end int, script []Move, wantScore int) {
	t.Helper()

	qi, ti := 0, start
	cost := 0
	for _, mv := range script {
		switch mv {
		case MoveMatch:
			if ti > end || query[qi] != target[ti] {
				t.Fatalf("script claims match at q=%d t=%d but symbols differ or out of range", qi, ti)
			}
			qi++
			ti++
		case MoveMismatch:
			if ti > end || query[qi] == target[ti] {
				t.Fatalf("script claims mismatch at q=%d t=%d but symbols are equal or out of range", qi, ti)
			}
			qi++
			ti++
			cost++
		case MoveInsertToTarget:
			qi++
			cost++
		case MoveInsertToQuery:
			if ti > end {
				t.Fatalf("script steps past target window at t=%d (end=%d)", ti, end)
			}
			ti++
			cost++
		}
	}
	if qi != len(query) {
		t.Fatalf("script consumed %d of %d query symbols", qi, len(query))
	}
	if ti != end+1 {
		t.Fatalf("script ended at target position %d, want %d", ti, end+1)
	}
	if cost != wantScore {
		t.Fatalf("script cost %d, want %d", cost, wantScore)
	}
}

// TestPreferredMismatchRule checks testable property 5: a script must
// never start with INSERT_TO_TARGET while the target still has an
// unmatched character available, since that prefix could always be
// replaced by a MISMATCH instead.
func TestPreferredMismatchRule(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	alphabet := []byte("ACGT")

	for trial := 0; trial < 100; trial++ {
		qs := randomString(rng, alphabet, 1+rng.Intn(10))
		ts := randomString(rng, alphabet, rng.Intn(10))
		q, tg, size := encodeTogether(qs, ts)

		res, err := Align(q, tg, size, Config{K: -1, Mode: ModeGlobal, Task: TaskPath})
		if err != nil {
			t.Fatalf("Align error: %v", err)
		}
		if res.EditDistance < 0 || len(res.Script) == 0 {
			continue
		}

		start, end := res.StartLocations[0], res.EndLocations[0]
		if res.Script[0] == MoveInsertToTarget && end >= start {
			t.Fatalf("%q vs %q: script starts with INSERT_TO_TARGET while target window [%d,%d] has characters available: %v",
				qs, ts, start, end, res.Script)
		}
	}
}

// TestCIGAREncodesDocumentedExample reproduces the documented example:
// a script with a run of matches, inserts, a deletion, more inserts, a
// mismatch and a final match run must encode to the documented CIGAR
// strings.
func TestCIGAREncodesDocumentedExample(t *testing.T) {
	script := []Move{
		MoveMatch, MoveMatch,
		MoveInsertToTarget, MoveInsertToTarget, MoveInsertToTarget,
		MoveInsertToQuery,
		MoveInsertToTarget, MoveInsertToTarget,
		MoveMismatch,
		MoveMatch, MoveMatch,
	}

	extended, err := ToCIGAR(script, CigarExtended)
	if err != nil {
		t.Fatalf("ToCIGAR extended error: %v", err)
	}
	if extended != "2=3I1D2I1X2=" {
		t.Fatalf("extended CIGAR = %q, want 2=3I1D2I1X2=", extended)
	}

	standard, err := ToCIGAR(script, CigarStandard)
	if err != nil {
		t.Fatalf("ToCIGAR standard error: %v", err)
	}
	if standard != "2M3I1D2I3M" {
		t.Fatalf("standard CIGAR = %q, want 2M3I1D2I3M", standard)
	}
}

// TestNWIdempotence checks that running NW twice on the same inputs
// gives the same edit distance and script.
func TestNWIdempotence(t *testing.T) {
	q, tg, size := encodeTogether("GATTACA", "GACTATA")
	cfg := Config{K: -1, Mode: ModeGlobal, Task: TaskPath}

	first, err := Align(q, tg, size, cfg)
	if err != nil {
		t.Fatalf("Align error: %v", err)
	}
	second, err := Align(q, tg, size, cfg)
	if err != nil {
		t.Fatalf("Align error: %v", err)
	}
	if first.EditDistance != second.EditDistance {
		t.Fatalf("edit distance differs across runs: %d vs %d", first.EditDistance, second.EditDistance)
	}
	if len(first.Script) != len(second.Script) {
		t.Fatalf("script length differs across runs")
	}
	for i := range first.Script {
		if first.Script[i] != second.Script[i] {
			t.Fatalf("script differs at position %d", i)
		}
	}
}

// TestBlockBoundaryScenarios exercises query lengths that straddle a
// WordSize block boundary (63, 64, 65, 127, 128, 129 symbols) to check
// the padding-peel logic at the edges.
func TestBlockBoundaryScenarios(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	alphabet := []byte("ACGT")

	lengths := []int{WordSize - 1, WordSize, WordSize + 1, 2*WordSize - 1, 2 * WordSize, 2*WordSize + 1}
	for _, qn := range lengths {
		qs := randomString(rng, alphabet, qn)
		ts := mutate(rng, qs, 3)
		q, tg, size := encodeTogether(qs, ts)

		want := simpleEditDistance(q, tg, ModeGlobal)
		got, err := Align(q, tg, size, Config{K: -1, Mode: ModeGlobal, Task: TaskDistance})
		if err != nil {
			t.Fatalf("Align error: %v", err)
		}
		if got.EditDistance != want.score {
			t.Fatalf("query len %d: got %d want %d", qn, got.EditDistance, want.score)
		}
	}
}

// mutate returns s with up to n single-character substitutions applied
// at random positions, used to build a target with a known-small edit
// distance from a long query.
func mutate(rng *rand.Rand, s string, n int) string {
	b := []byte(s)
	alphabet := []byte("ACGT")
	for i := 0; i < n && len(b) > 0; i++ {
		pos := rng.Intn(len(b))
		b[pos] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}

func TestEmptyQueryNW(t *testing.T) {
	size := 2
	res, err := Align(nil, []uint16{0, 1, 0}, size, Config{K: -1, Mode: ModeGlobal, Task: TaskPath})
	if err != nil {
		t.Fatalf("Align error: %v", err)
	}
	if res.EditDistance != 3 {
		t.Fatalf("expected edit distance 3, got %d", res.EditDistance)
	}
	for _, mv := range res.Script {
		if mv != MoveInsertToQuery {
			t.Fatalf("expected all-insert script for empty query, got %v", res.Script)
		}
	}
}

func TestEmptyQuerySHW(t *testing.T) {
	size := 2
	res, err := Align(nil, []uint16{0, 1, 0}, size, Config{K: -1, Mode: ModePrefix, Task: TaskDistance})
	if err != nil {
		t.Fatalf("Align error: %v", err)
	}
	if res.EditDistance != 0 {
		t.Fatalf("expected edit distance 0 for empty query under SHW, got %d", res.EditDistance)
	}
}

func TestInvalidSymbolCodeRejected(t *testing.T) {
	_, err := Align([]uint16{5}, []uint16{0}, 2, Config{K: -1, Mode: ModeGlobal, Task: TaskDistance})
	if err == nil {
		t.Fatal("expected error for out-of-range symbol code")
	}
}

// TestStrongReduceAgreesWithReference exercises the periodic
// stronger-reduction pass in both drivers by running a target long
// enough to cross several strongReducePeriod boundaries, checking the
// result still agrees with the brute-force reference.
func TestStrongReduceAgreesWithReference(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	alphabet := []byte("ACGT")

	// query and target are both mutated copies of a shared base long
	// enough to cross strongReducePeriod twice, close enough to each
	// other that the band survives the whole run in every mode.
	base := randomString(rng, alphabet, 2*strongReducePeriod+40)
	qs := mutate(rng, base, 20)
	ts := mutate(rng, base, 20)
	q, tg, size := encodeTogether(qs, ts)

	for _, mode := range []Mode{ModeGlobal, ModePrefix, ModeInfix} {
		got, err := Align(q, tg, size, Config{K: -1, Mode: mode, Task: TaskDistance})
		if err != nil {
			t.Fatalf("mode %v: Align error: %v", mode, err)
		}
		want := simpleEditDistance(q, tg, mode)
		if got.EditDistance != want.score {
			t.Fatalf("mode %v: EditDistance = %d, want %d (band crosses strongReducePeriod)",
				mode, got.EditDistance, want.score)
		}
	}
}

// TestBlockRowsAllFail checks the strong-reduce row walk in isolation:
// a constant-score block (p == m == 0, so no row-to-row change) is
// reported as fully infeasible only when every real row fails the
// caller's predicate, and as not-fully-infeasible the moment one does.
func TestBlockRowsAllFail(t *testing.T) {
	const bottomRow = WordSize - 1
	const queryLen = 5

	allFalse := func(row, score int) bool { return false }
	if !blockRowsAllFail(0, 0, 10, bottomRow, queryLen, allFalse) {
		t.Fatal("expected all-fail when every real row fails the predicate")
	}

	onlyRowTwo := func(row, score int) bool { return row == 2 }
	if blockRowsAllFail(0, 0, 10, bottomRow, queryLen, onlyRowTwo) {
		t.Fatal("expected not-all-fail: row 2 is real and satisfies the predicate")
	}

	// A row at or beyond queryLen is padding and must never be able to
	// rescue the block from being dropped.
	onlyPaddingRow := func(row, score int) bool { return row == queryLen }
	if !blockRowsAllFail(0, 0, 10, bottomRow, queryLen, onlyPaddingRow) {
		t.Fatal("expected all-fail: the only satisfying row is padding, not real")
	}
}

// TestEqualityFolding checks that Alphabet.AddEquality makes declared
// pairs cost nothing under the core driver.
func TestEqualityFolding(t *testing.T) {
	a := NewAlphabet()
	a.AddEquality('U', 'T')
	q := a.Encode([]byte("ACUG"))
	tg := a.Encode([]byte("ACTG"))

	res, err := Align(q, tg, a.Size(), Config{K: -1, Mode: ModeGlobal, Task: TaskDistance})
	if err != nil {
		t.Fatalf("Align error: %v", err)
	}
	if res.EditDistance != 0 {
		t.Fatalf("expected U/T equality to fold to distance 0, got %d", res.EditDistance)
	}
}
