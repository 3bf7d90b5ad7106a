/*
 * edist - Main process.
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

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/edist/align"
	"github.com/rcornwell/edist/internal/cli"
	"github.com/rcornwell/edist/internal/config"
	"github.com/rcornwell/edist/internal/debugflags"
	"github.com/rcornwell/edist/internal/fasta"
	"github.com/rcornwell/edist/internal/logx"
	"github.com/rcornwell/edist/internal/server"
)

var Logger *slog.Logger

func main() {
	optQuery := getopt.StringLong("query", 'q', "", "Query FASTA file")
	optTarget := getopt.StringLong("target", 't', "", "Target FASTA file")
	optMode := getopt.StringLong("mode", 'a', "", "Alignment mode: NW, SHW, HW")
	optTask := getopt.StringLong("task", 0, "", "Task: distance, loc, path")
	optK := getopt.IntLong("k", 'k', -1, "Max edit distance (negative auto-expands)")
	optCigar := getopt.StringLong("cigar", 0, "", "CIGAR format: extended, standard")
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optInteractive := getopt.BoolLong("interactive", 'i', "Run the interactive shell")
	optServe := getopt.StringLong("serve", 0, "", "Listen address for the batch alignment server")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optTraceBand := getopt.BoolLong("trace-band", 0, "Trace band growth/shrink decisions")
	optTraceBlock := getopt.BoolLong("trace-block", 0, "Trace per-block P/M words")
	optTraceback := getopt.BoolLong("trace-traceback", 0, "Trace traceback move selection")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	tracing := *optTraceBand || *optTraceBlock || *optTraceback
	logger, err := logx.New(*optLogFile, tracing)
	if err != nil {
		fmt.Fprintln(os.Stderr, "edist: ", err)
		os.Exit(1)
	}
	Logger = logger
	slog.SetDefault(Logger)

	debugflags.Set(debugflags.Band, *optTraceBand)
	debugflags.Set(debugflags.Block, *optTraceBlock)
	debugflags.Set(debugflags.Traceback, *optTraceback)

	settings := config.Default()
	if *optConfig != "" {
		settings, err = loadConfig(*optConfig)
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}
	applyFlagOverrides(&settings, *optMode, *optTask, *optCigar, *optK)

	switch {
	case *optInteractive:
		runInteractive(settings)
	case *optServe != "":
		runServer(*optServe, settings)
	default:
		runBatch(settings, *optQuery, *optTarget)
	}
}

func loadConfig(path string) (config.Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return config.Settings{}, fmt.Errorf("edist: %w", err)
	}
	defer f.Close()
	return config.Parse(f)
}

func applyFlagOverrides(settings *config.Settings, mode, task, cigarFormat string, k int) {
	if mode != "" {
		settings.Mode = mode
	}
	if task != "" {
		settings.Task = task
	}
	if cigarFormat != "" {
		settings.Cigar = cigarFormat
	}
	if k >= 0 {
		settings.K = k
	}
}

func runInteractive(settings config.Settings) {
	session := cli.NewSession(settings, func(s string) { fmt.Println(s) })
	if err := cli.Run(session); err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
}

func runServer(addr string, settings config.Settings) {
	cfg, err := settingsToConfig(settings)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}

	srv, err := server.Start(addr, cfg)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	Logger.Info("shutting down on signal")
	srv.Stop()
}

func runBatch(settings config.Settings, queryPath, targetPath string) {
	if queryPath == "" || targetPath == "" {
		fmt.Fprintln(os.Stderr, "edist: --query and --target are required outside of --interactive/--serve")
		os.Exit(2)
	}

	alphabet := align.NewAlphabet()
	for _, eq := range settings.Equalities {
		alphabet.AddEquality(eq.First, eq.Second)
	}

	queryRecords, err := readFasta(queryPath, alphabet)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
	targetRecords, err := readFasta(targetPath, alphabet)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}

	cfg, err := settingsToConfig(settings)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
	cigarFormat, err := parseCigarFormat(settings.Cigar)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}

	for _, q := range queryRecords {
		for _, tg := range targetRecords {
			result, err := align.Align(q.Symbols, tg.Symbols, alphabet.Size(), cfg)
			if err != nil {
				Logger.Error(err.Error())
				os.Exit(1)
			}

			if result.EditDistance < 0 {
				fmt.Printf("%s\t%s\tno alignment within k\n", q.Name, tg.Name)
				continue
			}

			line := fmt.Sprintf("%s\t%s\t%d\t%v", q.Name, tg.Name, result.EditDistance, result.EndLocations)
			if cfg.Task == align.TaskPath {
				cigar, err := align.ToCIGAR(result.Script, cigarFormat)
				if err != nil {
					Logger.Error(err.Error())
					os.Exit(1)
				}
				line += "\t" + cigar
			}
			fmt.Println(line)
		}
	}
}

func readFasta(path string, alphabet *align.Alphabet) ([]fasta.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("edist: %w", err)
	}
	defer f.Close()
	return fasta.ReadAll(f, alphabet)
}

func settingsToConfig(settings config.Settings) (align.Config, error) {
	mode, err := parseMode(settings.Mode)
	if err != nil {
		return align.Config{}, err
	}
	task, err := parseTask(settings.Task)
	if err != nil {
		return align.Config{}, err
	}
	return align.Config{K: settings.K, Mode: mode, Task: task}, nil
}

func parseMode(s string) (align.Mode, error) {
	switch s {
	case "NW":
		return align.ModeGlobal, nil
	case "SHW":
		return align.ModePrefix, nil
	case "HW":
		return align.ModeInfix, nil
	default:
		return 0, fmt.Errorf("edist: unknown mode %q", s)
	}
}

func parseTask(s string) (align.Task, error) {
	switch s {
	case "distance":
		return align.TaskDistance, nil
	case "loc":
		return align.TaskLoc, nil
	case "path":
		return align.TaskPath, nil
	default:
		return 0, fmt.Errorf("edist: unknown task %q", s)
	}
}

func parseCigarFormat(s string) (align.CigarFormat, error) {
	switch s {
	case "extended":
		return align.CigarExtended, nil
	case "standard":
		return align.CigarStandard, nil
	default:
		return 0, fmt.Errorf("edist: unknown cigar format %q", s)
	}
}
