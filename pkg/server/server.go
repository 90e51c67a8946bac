package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"senserve/internal/logger"
	"senserve/pkg/config"
	"senserve/pkg/corpus"
	"senserve/pkg/suggest"
	"senserve/pkg/trie"
	"senserve/pkg/vocab"
)

// Server handles the IPC for sentence suggestions.
type Server struct {
	suggester *suggest.Suggester
	words     *vocab.Index
	trie      *trie.Trie
	corpus    *corpus.Corpus
	cfg       *config.Config
	dec       *msgpack.Decoder
	enc       *msgpack.Encoder
	log       *log.Logger
}

// NewServer creates a suggestion server speaking msgpack over in/out.
func NewServer(sg *suggest.Suggester, words *vocab.Index, tr *trie.Trie, corp *corpus.Corpus, cfg *config.Config, in io.Reader, out io.Writer) *Server {
	return &Server{
		suggester: sg,
		words:     words,
		trie:      tr,
		corpus:    corp,
		cfg:       cfg,
		dec:       msgpack.NewDecoder(in),
		enc:       msgpack.NewEncoder(out),
		log:       logger.New("ipc"),
	}
}

// Start begins listening for IPC requests. It returns nil on EOF and an
// error only when the stream itself breaks; per-request failures are
// answered with error frames.
func (s *Server) Start() error {
	s.log.Debug("Starting IPC server")
	s.send(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

func (s *Server) handleRequest(request Request) {
	switch request.Action {
	case "", "suggest":
		s.handleSuggest(request)
	case "words":
		s.handleWords(request)
	case "stats":
		s.handleStats(request)
	case "ping":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown action: %s", request.Action), 400)
	}
}

func (s *Server) handleSuggest(request Request) {
	query := request.Query
	if query == "" {
		s.sendError(request.ID, "Missing 'q' parameter", 400)
		s.log.Debug("Query is empty in request")
		return
	}
	if max := s.cfg.Server.MaxQueryLen; max > 0 && len(query) > max {
		s.sendError(request.ID, fmt.Sprintf("Query exceeds maximum length of %d characters", max), 400)
		return
	}

	ctx := context.Background()
	if timeout := s.cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	results, err := s.suggester.Suggest(ctx, query)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, suggest.ErrNotReady):
		s.sendError(request.ID, "Index not built yet", 503)
		return
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		s.sendError(request.ID, "Query timed out", 408)
		return
	case err != nil:
		s.log.Errorf("Suggest failed: %v", err)
		s.sendError(request.ID, "Internal server error", 500)
		return
	}

	entries := make([]SuggestEntry, len(results))
	for i, r := range results {
		entries[i] = SuggestEntry{
			Sentence: r.Sentence,
			Origin:   r.Origin,
			Score:    r.Score,
			Rank:     r.Rank,
		}
	}

	s.send(SuggestResponse{
		ID:        request.ID,
		Entries:   entries,
		Count:     len(entries),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleWords(request Request) {
	if request.Query == "" {
		s.sendError(request.ID, "Missing 'q' parameter", 400)
		return
	}
	limit := request.Limit
	if limit < 1 || limit > s.cfg.Server.WordLimit {
		limit = s.cfg.Server.WordLimit
	}

	completions := s.words.Complete(request.Query, limit)
	words := make([]WordEntry, len(completions))
	for i, c := range completions {
		words[i] = WordEntry{Word: c.Word, Count: c.Count}
	}
	s.send(WordsResponse{ID: request.ID, Words: words, Count: len(words)})
}

func (s *Server) handleStats(request Request) {
	s.send(StatsResponse{
		ID:        request.ID,
		Sentences: s.corpus.Len(),
		Origins:   s.corpus.OriginCount(),
		TrieNodes: s.trie.NodeCount(),
		TrieWords: s.trie.WordCount(),
		Vocab:     s.words.Size(),
	})
}

// send encodes one response frame. Encoding failures end up as error frames
// when possible, otherwise they are only logged.
func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Status: code})
}
