/*
 * edist - Symbol table.
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

// Alphabet assigns compact integer codes to input bytes on the fly,
// folding declared equality pairs into a single code via union-find
// before a code is handed out. The core driver never sees a byte,
// only the codes this type produces.
type Alphabet struct {
	parent map[byte]byte
	codes  map[byte]uint16
	next   uint16
}

// NewAlphabet returns an empty alphabet ready to assign codes.
func NewAlphabet() *Alphabet {
	return &Alphabet{parent: map[byte]byte{}, codes: map[byte]uint16{}}
}

func (a *Alphabet) find(b byte) byte {
	parent, ok := a.parent[b]
	if !ok || parent == b {
		return b
	}
	root := a.find(parent)
	a.parent[b] = root
	return root
}

// AddEquality declares x and y interchangeable: characters previously
// or subsequently encoded under either will share a code. Must be
// called before either byte is first passed to Encode/Encode1 to take
// full effect, since existing code assignments are not retracted.
func (a *Alphabet) AddEquality(x, y byte) {
	rx, ry := a.find(x), a.find(y)
	if rx == ry {
		return
	}
	a.parent[rx] = ry
}

// Encode1 returns the code for b, assigning the next free code the
// first time b's equivalence class is seen.
func (a *Alphabet) Encode1(b byte) uint16 {
	root := a.find(b)
	if code, ok := a.codes[root]; ok {
		return code
	}
	code := a.next
	a.next++
	a.codes[root] = code
	return code
}

// Encode maps every byte in bs to its symbol code.
func (a *Alphabet) Encode(bs []byte) []uint16 {
	out := make([]uint16, len(bs))
	for i, b := range bs {
		out[i] = a.Encode1(b)
	}
	return out
}

// Size returns the number of distinct codes assigned so far; this is
// the alphabet size A used as the wildcard code and reported in Result.
func (a *Alphabet) Size() int {
	return int(a.next)
}
