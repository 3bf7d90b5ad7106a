/*
 * edist - Wrapper for slog
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

// Package logx wraps log/slog with a handler suitable for both the CLI
// and the batch alignment server. Most records print on one line, but
// an attribute carrying a hexdump.ColumnState (the per-column block
// trace align/trace.go emits) is recognized and rendered on its own
// indented line through hexdump's own formatting, instead of falling
// through to slog's generic value stringification.
package logx

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/rcornwell/edist/internal/hexdump"
)

// Handler formats records as "time level: message attr attr..." and
// writes them to an optional file, echoing to stderr unless debug
// output has been suppressed.
type Handler struct {
	out   io.Writer
	h     slog.Handler
	mu    *sync.Mutex
	debug bool
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{h: h.h.WithAttrs(attrs), mu: h.mu, out: h.out, debug: h.debug}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{h: h.h.WithGroup(name), mu: h.mu, out: h.out, debug: h.debug}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	formattedTime := r.Time.Format("2006/01/02 15:04:05")

	strs := []string{formattedTime, level, r.Message}
	var blockLines []string

	if r.NumAttrs() != 0 {
		r.Attrs(func(a slog.Attr) bool {
			if cs, ok := a.Value.Any().(hexdump.ColumnState); ok {
				blockLines = append(blockLines, a.Key+": "+cs.Render())
				return true
			}
			strs = append(strs, a.Key+"="+a.Value.String())
			return true
		})
	}
	result := strings.Join(strs, " ")
	for _, line := range blockLines {
		result += "\n    " + line
	}
	result += "\n"
	b := []byte(result)

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	if h.out != nil {
		_, err = h.out.Write(b)
	}

	if h.debug || r.Level > slog.LevelDebug {
		_, err = os.Stderr.Write(b)
	}
	return err
}

// SetDebug toggles whether debug-level records are also echoed to stderr.
func (h *Handler) SetDebug(debug bool) {
	h.debug = debug
}

// NewHandler builds a Handler writing to file (which may be nil to
// disable persistent logging) with the given slog options.
func NewHandler(file io.Writer, opts *slog.HandlerOptions, debug bool) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		out: file,
		h: slog.NewTextHandler(file, &slog.HandlerOptions{
			Level:     opts.Level,
			AddSource: opts.AddSource,
		}),
		mu:    &sync.Mutex{},
		debug: debug,
	}
}

// New creates a ready-to-use *slog.Logger, optionally logging to
// logFile in addition to stderr.
func New(logFile string, debug bool) (*slog.Logger, error) {
	var file *os.File
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return nil, err
		}
		file = f
	}

	level := new(slog.LevelVar)
	level.Set(slog.LevelDebug)
	logger := slog.New(NewHandler(file, &slog.HandlerOptions{Level: level}, debug))
	return logger, nil
}
