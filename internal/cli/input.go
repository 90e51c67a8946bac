// Package cli implements the interactive prompt for querying the engine.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"senserve/internal/utils"
	"senserve/pkg/corpus"
	"senserve/pkg/suggest"
	"senserve/pkg/trie"
	"senserve/pkg/vocab"
)

var (
	sentenceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#9ccfd8"})
	originStyle = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"})
)

// InputHandler reads queries from stdin and prints ranked suggestions.
// It also answers a couple of colon commands for poking at the index.
type InputHandler struct {
	suggester    *suggest.Suggester
	words        *vocab.Index
	trie         *trie.Trie
	corpus       *corpus.Corpus
	timeout      time.Duration
	wordLimit    int
	requestCount int
}

// NewInputHandler wires the prompt over a built engine.
func NewInputHandler(sg *suggest.Suggester, words *vocab.Index, tr *trie.Trie, corp *corpus.Corpus, timeout time.Duration, wordLimit int) *InputHandler {
	return &InputHandler{
		suggester: sg,
		words:     words,
		trie:      tr,
		corpus:    corp,
		timeout:   timeout,
		wordLimit: wordLimit,
	}
}

// Start begins the interface loop. It reads a line per query and terminates
// on EOF, read errors, or a quit command.
func (h *InputHandler) Start() error {
	log.Print("senserve interactive mode")
	log.Print("type a phrase and press Enter for suggestions (quit to exit, :help for commands):")
	reader := bufio.NewReader(os.Stdin)

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case line == "quit" || line == "exit":
			log.Print("bye")
			return nil
		case strings.HasPrefix(line, ":"):
			h.handleCommand(line)
		default:
			h.handleQuery(line)
		}
	}
}

func (h *InputHandler) handleCommand(line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":help":
		log.Print(":stats           index and memory counters")
		log.Print(":words <prefix>  vocabulary completions for a prefix")
		log.Print("quit             leave")
	case ":stats":
		h.printStats()
	case ":words":
		if len(fields) < 2 {
			log.Error("usage: :words <prefix>")
			return
		}
		h.printWordCompletions(fields[1])
	default:
		log.Errorf("Unknown command: %s", fields[0])
	}
}

func (h *InputHandler) handleQuery(query string) {
	h.requestCount++

	ctx := context.Background()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	start := time.Now()
	results, err := h.suggester.Suggest(ctx, query)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, suggest.ErrNotReady):
		log.Error("Index is not built yet")
		return
	case errors.Is(err, context.DeadlineExceeded):
		log.Warnf("Query timed out after %v", h.timeout)
		return
	case err != nil:
		log.Errorf("Query failed: %v", err)
		return
	}

	log.Debugf("Took [ %v ] for query '%s'", elapsed, query)

	if len(results) == 0 {
		log.Warnf("No suggestions found for: '%s'", query)
		h.printWordHints(query)
		return
	}

	log.Printf("Top %d suggestions (%v):", len(results), elapsed.Round(time.Microsecond))
	for _, r := range results {
		log.Printf("%2d. %s", r.Rank, sentenceStyle.Render(r.Sentence))
		log.Printf("    %s  score: %.2f", originStyle.Render(r.Origin), r.Score)
	}
}

// printWordHints offers vocabulary completions when a lone partial word
// found no sentences.
func (h *InputHandler) printWordHints(query string) {
	if h.words == nil || len(strings.Fields(query)) != 1 {
		return
	}
	completions := h.words.Complete(query, h.wordLimit)
	if len(completions) == 0 {
		return
	}
	words := make([]string, len(completions))
	for i, c := range completions {
		words[i] = c.Word
	}
	log.Printf("words starting with '%s': %s", query, strings.Join(words, ", "))
}

func (h *InputHandler) printWordCompletions(prefix string) {
	completions := h.words.Complete(prefix, h.wordLimit)
	if len(completions) == 0 {
		log.Warnf("No completions for prefix: '%s'", prefix)
		return
	}
	for i, c := range completions {
		log.Printf("%2d. %-30s (count: %8s)", i+1, c.Word, utils.FormatWithCommas(c.Count))
	}
}

func (h *InputHandler) printStats() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	log.Printf("sentences:   %s", utils.FormatWithCommas(h.corpus.Len()))
	log.Printf("origins:     %s", utils.FormatWithCommas(h.corpus.OriginCount()))
	log.Printf("trie words:  %s", utils.FormatWithCommas(h.trie.WordCount()))
	log.Printf("trie nodes:  %s", utils.FormatWithCommas(h.trie.NodeCount()))
	log.Printf("vocabulary:  %s", utils.FormatWithCommas(h.words.Size()))
	log.Printf("heap in use: %s MB", fmt.Sprintf("%.1f", float64(mem.HeapInuse)/(1024*1024)))
	log.Printf("queries run: %d", h.requestCount)
}
