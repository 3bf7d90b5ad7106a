/*
 * edist - Configuration file parser.
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

// Package config reads the edist defaults file.
//
// Configuration file format:
//
//	'#' starts a comment, rest of line ignored.
//	<line> := <key> '=' <value> | <key> ':' <value> *(',' <value>)
//	<key>  := 'mode' | 'task' | 'k' | 'cigar' | 'equal'
//
// 'equal' lines may repeat and accumulate; for every other key a later
// line overrides an earlier one.
package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Settings holds parsed defaults overridden in order by the config
// file, then by CLI flags, then left as built-in defaults.
type Settings struct {
	Mode       string // "NW", "SHW", "HW"
	Task       string // "distance", "loc", "path"
	K          int    // -1 means auto-expand
	Cigar      string // "extended", "standard"
	Equalities []EqualityPair
}

// EqualityPair names two symbols that should be treated as equal in
// addition to identity, e.g. ambiguity codes in a FASTA alphabet.
type EqualityPair struct {
	First, Second byte
}

// Default returns the built-in defaults used when no config file and
// no CLI flag supplies a value.
func Default() Settings {
	return Settings{
		Mode:  "NW",
		Task:  "distance",
		K:     -1,
		Cigar: "extended",
	}
}

// Parse reads a config file from r, starting from Default() and
// overriding fields named within. It returns a descriptive error
// naming the offending line on malformed input.
func Parse(r io.Reader) (Settings, error) {
	settings := Default()

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := stripComment(scanner.Text())
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, sep, rest := splitKey(line)
		rest = strings.TrimSpace(rest)
		if sep == 0 {
			return settings, fmt.Errorf("config line %d: missing '=' or ':' in %q", lineNum, line)
		}

		switch strings.ToLower(key) {
		case "mode":
			if err := checkOneOf(rest, "NW", "SHW", "HW"); err != nil {
				return settings, fmt.Errorf("config line %d: %w", lineNum, err)
			}
			settings.Mode = strings.ToUpper(rest)

		case "task":
			if err := checkOneOf(strings.ToLower(rest), "distance", "loc", "path"); err != nil {
				return settings, fmt.Errorf("config line %d: %w", lineNum, err)
			}
			settings.Task = strings.ToLower(rest)

		case "cigar":
			if err := checkOneOf(strings.ToLower(rest), "extended", "standard"); err != nil {
				return settings, fmt.Errorf("config line %d: %w", lineNum, err)
			}
			settings.Cigar = strings.ToLower(rest)

		case "k":
			k, err := strconv.Atoi(rest)
			if err != nil {
				return settings, fmt.Errorf("config line %d: invalid k %q: %w", lineNum, rest, err)
			}
			settings.K = k

		case "equal":
			pair, err := parseEqualityList(rest)
			if err != nil {
				return settings, fmt.Errorf("config line %d: %w", lineNum, err)
			}
			settings.Equalities = append(settings.Equalities, pair...)

		default:
			return settings, fmt.Errorf("config line %d: unknown key %q", lineNum, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return settings, fmt.Errorf("reading config: %w", err)
	}
	return settings, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// splitKey splits "key=rest" or "key: rest" and reports which
// separator byte was used, or 0 if neither was found.
func splitKey(line string) (key string, sep byte, rest string) {
	eq := strings.IndexByte(line, '=')
	colon := strings.IndexByte(line, ':')
	switch {
	case eq >= 0 && (colon < 0 || eq < colon):
		return strings.TrimSpace(line[:eq]), '=', line[eq+1:]
	case colon >= 0:
		return strings.TrimSpace(line[:colon]), ':', line[colon+1:]
	default:
		return line, 0, ""
	}
}

func checkOneOf(value string, allowed ...string) error {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("value %q must be one of %v", value, allowed)
}

// parseEqualityList parses "a=b, c=d" pairs naming byte symbols that
// should be folded together in the alphabet's equality row.
func parseEqualityList(rest string) ([]EqualityPair, error) {
	var pairs []EqualityPair
	for _, item := range strings.Split(rest, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		first, sep, second := splitKey(item)
		first = strings.TrimSpace(first)
		second = strings.TrimSpace(second)
		if sep == 0 || len(first) != 1 || len(second) != 1 {
			return nil, fmt.Errorf("invalid equality pair %q, expected 'x=y'", item)
		}
		pairs = append(pairs, EqualityPair{First: first[0], Second: second[0]})
	}
	return pairs, nil
}
