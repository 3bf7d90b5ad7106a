/*
 * edist - Debug flag registry.
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

// Package debugflags holds a small set of named on/off switches that
// gate the banded drivers' per-column tracing and the traceback's
// per-move tracing. There are only three such switches, so the
// registry is a flat string->bool map rather than a
// per-device/per-channel set.
package debugflags

import "sync"

var (
	mu    sync.RWMutex
	flags = map[string]bool{}
)

// Known flag names.
const (
	Band      = "band"      // trace band grow/shrink per column
	Block     = "block"     // trace each block's P/M/score after calculateBlock
	Traceback = "traceback" // trace move selection during traceback
)

// Set turns a flag on or off.
func Set(name string, on bool) {
	mu.Lock()
	defer mu.Unlock()
	flags[name] = on
}

// Enabled reports whether name is currently on. Unknown names are off.
func Enabled(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	return flags[name]
}

// Reset clears every flag back to off.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	flags = map[string]bool{}
}
