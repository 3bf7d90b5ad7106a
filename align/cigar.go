/*
 * edist - CIGAR encoder.
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
	"strconv"
	"strings"
)

// ToCIGAR run-length-encodes script into a CIGAR string. In extended
// format runs use '=', 'X', 'I', 'D'; in standard format matches and
// mismatches both collapse into 'M', merging adjacent runs.
func ToCIGAR(script []Move, format CigarFormat) (string, error) {
	var b strings.Builder

	i := 0
	for i < len(script) {
		mv := script[i]
		letter, err := cigarLetter(mv, format)
		if err != nil {
			return "", fmt.Errorf("cigar: position %d: %w", i, err)
		}

		j := i + 1
		for j < len(script) {
			nextLetter, err := cigarLetter(script[j], format)
			if err != nil {
				return "", fmt.Errorf("cigar: position %d: %w", j, err)
			}
			if nextLetter != letter {
				break
			}
			j++
		}

		b.WriteString(strconv.Itoa(j - i))
		b.WriteByte(letter)
		i = j
	}

	return b.String(), nil
}

func cigarLetter(mv Move, format CigarFormat) (byte, error) {
	if format == CigarStandard {
		switch mv {
		case MoveMatch, MoveMismatch:
			return 'M', nil
		case MoveInsertToTarget:
			return 'I', nil
		case MoveInsertToQuery:
			return 'D', nil
		default:
			return 0, fmt.Errorf("invalid move %d", mv)
		}
	}

	switch mv {
	case MoveMatch:
		return '=', nil
	case MoveMismatch:
		return 'X', nil
	case MoveInsertToTarget:
		return 'I', nil
	case MoveInsertToQuery:
		return 'D', nil
	default:
		return 0, fmt.Errorf("invalid move %d", mv)
	}
}
