// Copyright 2026 The SenServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the sentence suggestion server and CLI application.

SenServe indexes a directory of plain-text corpora into a positional prefix
tree and answers free-text queries with ranked sentence completions. Queries
tolerate a single typing mistake per word: every query word is expanded into
its one-edit variants before candidate sentences are selected and scored.

It can operate as a MessagePack IPC server for integration with editors, or
as an interactive CLI for testing and debugging.

# Usage

Start the interactive prompt over the default corpus directory:

	senserve

Use a custom corpus directory and enable debug logging:

	senserve -data /path/to/corpus -d

Run as an IPC server:

	senserve -ipc

The corpus directory is scanned recursively for .txt files. Each line that
contains at least one letter becomes an indexed sentence.

# Configuration

Runtime configuration is managed through a TOML file covering the corpus
location, suggestion limits, and the scoring penalty tables:

	[suggest]
	max_results = 5
	timeout_ms = 2000

	[scoring]
	substitution = [5.0, 4.0, 3.0, 2.0]
	substitution_default = 1.0

The config file is created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests are
processed synchronously with microsecond timing included in responses.

Send a suggestion request:

	{"id": "req1", "q": "Where is my", "l": 5}

Receive ranked sentences with origin and score:

	{"id": "req1", "e": [{"s": "where is my mind", "o": "lyrics.txt", "sc": 49.0, "r": 1}], "c": 1, "t": 210}
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"senserve/internal/cli"
	"senserve/internal/utils"
	"senserve/pkg/config"
	"senserve/pkg/corpus"
	"senserve/pkg/server"
	"senserve/pkg/suggest"
	"senserve/pkg/trie"
	"senserve/pkg/vocab"
)

const (
	Version = "0.3.0"
	AppName = "senserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to build the index and start the server or CLI.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", "", "Directory containing .txt corpus files (overrides config)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	ipcMode := flag.Bool("ipc", false, "Run as a MessagePack IPC server instead of the interactive prompt")
	limit := flag.Int("limit", defaultConfig.Suggest.MaxResults, "Number of suggestions to return")
	timeoutMs := flag.Int("timeout", defaultConfig.Suggest.TimeoutMs, "Per-query budget in milliseconds (0 disables)")
	configPath := flag.String("config", "senserve.toml", "Path to the TOML config file")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ SenServe ] Ranked sentence suggestions with typo tolerance")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}
	// flags override the config file only when given on the command line
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "limit":
			appConfig.Suggest.MaxResults = *limit
		case "timeout":
			appConfig.Suggest.TimeoutMs = *timeoutMs
		}
	})

	corpusDir := appConfig.Data.Dir
	if *dataDir != "" {
		corpusDir = *dataDir
	}
	log.Debugf("Using corpus dir at: %s", corpusDir)

	tr := trie.New()
	words := vocab.New()

	corp, err := corpus.Load(corpusDir, tr, words)
	if err != nil {
		log.Fatalf("Failed to index corpus: %v", err)
		os.Exit(1)
	}
	if corp.Len() == 0 {
		log.Warn("Corpus is empty, no suggestions will be produced...")
	}

	suggester := suggest.New(tr, corp, appConfig.ScoringTables(), appConfig.Suggest.MaxResults)

	if *ipcMode {
		log.Debug("spawning IPC")
		srv := server.NewServer(suggester, words, tr, corp, appConfig, os.Stdin, os.Stdout)
		if err := srv.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
			os.Exit(1)
		}
		return
	}

	log.SetReportTimestamp(false)
	showStartupInfo(corpusDir, corp, tr)

	inputHandler := cli.NewInputHandler(suggester, words, tr, corp, appConfig.Timeout(), appConfig.REPL.WordLimit)
	if err := inputHandler.Start(); err != nil {
		log.Fatalf("CLI error: %v", err)
		os.Exit(1)
	}
}

// showStartupInfo displays some basic info about the indexing process.
func showStartupInfo(dataDir string, corp *corpus.Corpus, tr *trie.Trie) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("==========")
	println(" SenServe ")
	println("==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("corpus dir: ( %s )", dataDir)
	log.Infof("sentences: %s from %d file(s)", utils.FormatWithCommas(corp.Len()), corp.OriginCount())
	log.Infof("trie: %s words, %s nodes", utils.FormatWithCommas(tr.WordCount()), utils.FormatWithCommas(tr.NodeCount()))
	log.Info("status: ready")
	println("==========")

	log.SetLevel(currentLevel)
}
