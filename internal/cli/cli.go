/*
 * edist - Interactive command shell.
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

// Package cli implements a small liner-backed REPL for one-off
// interactive alignment: "align <query> <target>", "set mode|task|k",
// "show config", "quit".
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/rcornwell/edist/align"
	"github.com/rcornwell/edist/internal/config"
)

// Session holds the state one REPL instance mutates: the working
// defaults and the output sink results are printed to.
type Session struct {
	Settings config.Settings
	out      func(string)
}

// NewSession starts a session from settings, printing results via out
// (os.Stdout in production, a buffer in tests).
func NewSession(settings config.Settings, out func(string)) *Session {
	return &Session{Settings: settings, out: out}
}

type cmdLine struct {
	line string
	pos  int
}

func (c *cmdLine) isEOL() bool {
	return c.pos >= len(c.line)
}

func (c *cmdLine) skipSpace() {
	for !c.isEOL() && c.line[c.pos] == ' ' {
		c.pos++
	}
}

func (c *cmdLine) getWord() string {
	c.skipSpace()
	start := c.pos
	for !c.isEOL() && c.line[c.pos] != ' ' {
		c.pos++
	}
	return c.line[start:c.pos]
}

func (c *cmdLine) rest() string {
	c.skipSpace()
	return c.line[c.pos:]
}

type cmd struct {
	name     string
	min      int
	process  func(*cmdLine, *Session) (bool, error)
	complete func(*cmdLine) []string
}

var cmdList = []cmd{
	{name: "align", min: 1, process: cmdAlign},
	{name: "set", min: 1, process: cmdSet, complete: setComplete},
	{name: "show", min: 1, process: cmdShow},
	{name: "quit", min: 1, process: cmdQuit},
	{name: "help", min: 1, process: cmdHelp},
}

func matchCommand(c cmd, name string) bool {
	if len(name) < c.min || len(name) > len(c.name) {
		return false
	}
	return strings.EqualFold(c.name[:len(name)], name)
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var match []cmd
	for _, c := range cmdList {
		if matchCommand(c, name) {
			match = append(match, c)
		}
	}
	return match
}

// ProcessCommand executes one command line against session, reporting
// whether the REPL should exit.
func ProcessCommand(line string, session *Session) (bool, error) {
	cl := cmdLine{line: line}
	name := cl.getWord()
	if name == "" {
		return false, nil
	}

	match := matchList(name)
	switch len(match) {
	case 0:
		return false, fmt.Errorf("command not found: %s", name)
	case 1:
		return match[0].process(&cl, session)
	default:
		return false, fmt.Errorf("ambiguous command: %s", name)
	}
}

// CompleteCmd implements liner tab completion: top-level command
// names, or a command's own completer once a name plus space is typed.
func CompleteCmd(line string) []string {
	cl := cmdLine{line: line}
	name := cl.getWord()

	if !cl.isEOL() && cl.line[cl.pos] == ' ' {
		cl.skipSpace()
		match := matchList(name)
		if len(match) != 1 || match[0].complete == nil {
			return nil
		}
		return match[0].complete(&cl)
	}

	var out []string
	for _, c := range cmdList {
		if strings.HasPrefix(c.name, strings.ToLower(name)) {
			out = append(out, c.name)
		}
	}
	return out
}

func cmdQuit(_ *cmdLine, _ *Session) (bool, error) {
	return true, nil
}

func cmdHelp(_ *cmdLine, session *Session) (bool, error) {
	session.out("commands: align <query> <target>, set mode|task|k|cigar <value>, show config, quit")
	return false, nil
}

func cmdShow(cl *cmdLine, session *Session) (bool, error) {
	what := cl.getWord()
	if !strings.EqualFold(what, "config") {
		return false, fmt.Errorf("show: unknown item %q", what)
	}
	s := session.Settings
	session.out(fmt.Sprintf("mode=%s task=%s k=%d cigar=%s equalities=%d",
		s.Mode, s.Task, s.K, s.Cigar, len(s.Equalities)))
	return false, nil
}

func setComplete(cl *cmdLine) []string {
	name := cl.getWord()
	if !cl.isEOL() && cl.line[cl.pos] == ' ' {
		return nil
	}
	candidates := []string{"mode", "task", "k", "cigar"}
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, strings.ToLower(name)) {
			out = append(out, c)
		}
	}
	return out
}

func cmdSet(cl *cmdLine, session *Session) (bool, error) {
	field := strings.ToLower(cl.getWord())
	value := cl.rest()
	if value == "" {
		return false, fmt.Errorf("set %s: missing value", field)
	}

	switch field {
	case "mode":
		switch strings.ToUpper(value) {
		case "NW", "SHW", "HW":
			session.Settings.Mode = strings.ToUpper(value)
		default:
			return false, fmt.Errorf("set mode: unknown mode %q", value)
		}
	case "task":
		switch strings.ToLower(value) {
		case "distance", "loc", "path":
			session.Settings.Task = strings.ToLower(value)
		default:
			return false, fmt.Errorf("set task: unknown task %q", value)
		}
	case "cigar":
		switch strings.ToLower(value) {
		case "extended", "standard":
			session.Settings.Cigar = strings.ToLower(value)
		default:
			return false, fmt.Errorf("set cigar: unknown format %q", value)
		}
	case "k":
		k, err := strconv.Atoi(value)
		if err != nil {
			return false, fmt.Errorf("set k: %w", err)
		}
		session.Settings.K = k
	default:
		return false, fmt.Errorf("set: unknown field %q", field)
	}
	return false, nil
}

func cmdAlign(cl *cmdLine, session *Session) (bool, error) {
	query := cl.getWord()
	target := cl.getWord()
	if query == "" || target == "" {
		return false, errors.New("align: expected <query> <target>")
	}

	mode, err := parseMode(session.Settings.Mode)
	if err != nil {
		return false, err
	}
	task, err := parseTask(session.Settings.Task)
	if err != nil {
		return false, err
	}
	cigarFormat, err := parseCigarFormat(session.Settings.Cigar)
	if err != nil {
		return false, err
	}

	alphabet := align.NewAlphabet()
	for _, eq := range session.Settings.Equalities {
		alphabet.AddEquality(eq.First, eq.Second)
	}
	qCodes := alphabet.Encode([]byte(query))
	tCodes := alphabet.Encode([]byte(target))

	cfg := align.Config{K: session.Settings.K, Mode: mode, Task: task}
	result, err := align.Align(qCodes, tCodes, alphabet.Size(), cfg)
	if err != nil {
		return false, err
	}

	if result.EditDistance < 0 {
		session.out("no alignment within k")
		return false, nil
	}

	msg := fmt.Sprintf("editDistance=%d endLocations=%v", result.EditDistance, result.EndLocations)
	if task == align.TaskPath {
		cigar, err := align.ToCIGAR(result.Script, cigarFormat)
		if err != nil {
			return false, err
		}
		msg += " cigar=" + cigar
	}
	session.out(msg)
	return false, nil
}

func parseMode(s string) (align.Mode, error) {
	switch strings.ToUpper(s) {
	case "NW":
		return align.ModeGlobal, nil
	case "SHW":
		return align.ModePrefix, nil
	case "HW":
		return align.ModeInfix, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

func parseTask(s string) (align.Task, error) {
	switch strings.ToLower(s) {
	case "distance":
		return align.TaskDistance, nil
	case "loc":
		return align.TaskLoc, nil
	case "path":
		return align.TaskPath, nil
	default:
		return 0, fmt.Errorf("unknown task %q", s)
	}
}

func parseCigarFormat(s string) (align.CigarFormat, error) {
	switch strings.ToLower(s) {
	case "extended":
		return align.CigarExtended, nil
	case "standard":
		return align.CigarStandard, nil
	default:
		return 0, fmt.Errorf("unknown cigar format %q", s)
	}
}

// Run drives the liner prompt loop until the user quits or aborts
// with Ctrl-D/Ctrl-C.
func Run(session *Session) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(l string) []string {
		return CompleteCmd(l)
	})

	for {
		command, err := line.Prompt("edist> ")
		if err == nil {
			line.AppendHistory(command)
			quit, cmdErr := ProcessCommand(command, session)
			if cmdErr != nil {
				session.out("error: " + cmdErr.Error())
			}
			if quit {
				return nil
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		return err
	}
}
