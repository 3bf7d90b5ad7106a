/*
 * edist - Batch alignment TCP service.
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

// Package server runs a TCP line-protocol service in front of
// align.Align: one goroutine per connection, no state shared across
// connections beyond the read-only defaults loaded at startup.
package server

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rcornwell/edist/align"
)

// Server accepts connections on a single listener and serves each on
// its own goroutine until Stop is called.
type Server struct {
	wg         sync.WaitGroup
	listener   net.Listener
	shutdown   chan struct{}
	connection chan net.Conn
	defaults   align.Config
	addr       string
}

// Start opens addr and begins serving requests, using defaults for
// any request field left blank.
func Start(addr string, defaults align.Config) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := &Server{
		listener:   listener,
		shutdown:   make(chan struct{}),
		connection: make(chan net.Conn),
		defaults:   defaults,
		addr:       addr,
	}

	slog.Info("batch alignment server started on " + listener.Addr().String())

	s.wg.Add(2)
	go s.acceptConnections()
	go s.handleConnections()
	return s, nil
}

// Stop closes the listener and waits (up to a grace period) for
// in-flight connections to finish.
func (s *Server) Stop() {
	slog.Info("shutting down server on " + s.addr)
	close(s.shutdown)
	s.listener.Close()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		slog.Warn("timed out waiting for connections to finish on " + s.addr)
	}
}

func (s *Server) acceptConnections() {
	defer s.wg.Done()

	for {
		select {
		case <-s.shutdown:
			return
		default:
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.shutdown:
					return
				default:
					continue
				}
			}
			s.connection <- conn
		}
	}
}

func (s *Server) handleConnections() {
	defer s.wg.Done()

	for {
		select {
		case <-s.shutdown:
			return
		case conn := <-s.connection:
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.serveClient(conn)
			}()
		}
	}
}

// serveClient reads one "query\ttarget\tmode\tk" request per line and
// writes one response line back, until the connection closes. A
// malformed line yields an "ERR message" response; the connection
// itself is never torn down because of it.
func (s *Server) serveClient(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	writer := bufio.NewWriter(conn)
	defer writer.Flush()

	for scanner.Scan() {
		line := scanner.Text()
		response := s.handleRequest(line)
		if _, err := writer.WriteString(response + "\n"); err != nil {
			slog.Error("write to client: " + err.Error())
			return
		}
		if err := writer.Flush(); err != nil {
			slog.Error("flush to client: " + err.Error())
			return
		}
	}
}

func (s *Server) handleRequest(line string) string {
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return "ERR expected query<TAB>target[<TAB>mode[<TAB>k]]"
	}

	cfg := s.defaults
	if len(fields) >= 3 && fields[2] != "" {
		mode, err := parseMode(fields[2])
		if err != nil {
			return "ERR " + err.Error()
		}
		cfg.Mode = mode
	}
	if len(fields) >= 4 && fields[3] != "" {
		k, err := strconv.Atoi(fields[3])
		if err != nil {
			return "ERR invalid k: " + err.Error()
		}
		cfg.K = k
	}

	alphabet := align.NewAlphabet()
	query := alphabet.Encode([]byte(fields[0]))
	target := alphabet.Encode([]byte(fields[1]))

	result, err := align.Align(query, target, alphabet.Size(), cfg)
	if err != nil {
		return "ERR " + err.Error()
	}

	cigar := ""
	if cfg.Task == align.TaskPath {
		cigar, err = align.ToCIGAR(result.Script, align.CigarExtended)
		if err != nil {
			return "ERR " + err.Error()
		}
	}

	return fmt.Sprintf("%d\t%v\t%s", result.EditDistance, result.EndLocations, cigar)
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
