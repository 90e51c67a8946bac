/*
Package suggest is the core engine: it expands query words into single-edit
variants, selects candidate sentences from the trie, scores them against the
query, and returns a ranked top-K list of whole-sentence suggestions.

The engine tolerates at most one character-level error across the entire
query. Selection and scoring loops honor context cancellation, so hosts can
bound worst-case variant expansion with a timeout.
*/
package suggest

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"senserve/pkg/corpus"
	"senserve/pkg/trie"
)

// ErrNotReady is returned when Suggest runs before the trie and corpus
// have been built.
var ErrNotReady = errors.New("suggest: engine queried before corpus was loaded")

// DefaultMaxResults caps how many suggestions a query returns.
const DefaultMaxResults = 5

// Result is one ranked suggestion handed to front ends.
type Result struct {
	Sentence string
	Origin   string
	Offset   int
	Score    float64
	Rank     int
}

// Suggester wires selector and scorer over a built trie and corpus.
// The scoring config is injected explicitly; there is no package-level state.
type Suggester struct {
	corpus     *corpus.Corpus
	selector   *Selector
	scorer     *Scorer
	maxResults int
}

// New returns a suggester answering from tr and corp. maxResults values
// below one fall back to DefaultMaxResults.
func New(tr *trie.Trie, corp *corpus.Corpus, cfg ScoringConfig, maxResults int) *Suggester {
	if maxResults < 1 {
		maxResults = DefaultMaxResults
	}
	var sel *Selector
	if tr != nil {
		sel = NewSelector(tr)
	}
	return &Suggester{
		corpus:     corp,
		selector:   sel,
		scorer:     NewScorer(cfg),
		maxResults: maxResults,
	}
}

// Suggest returns the ranked suggestions for the raw user input, at most
// maxResults entries. Empty or whitespace input yields an empty result and
// no error. Querying before the corpus and trie exist returns ErrNotReady.
func (s *Suggester) Suggest(ctx context.Context, input string) ([]Result, error) {
	if s == nil || s.selector == nil || s.corpus == nil {
		return nil, ErrNotReady
	}

	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil, nil
	}

	indices, err := s.selector.Select(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return nil, nil
	}
	log.Debugf("Selected %d candidate sentences for %q", len(indices), input)

	candidates := make([]corpus.Sentence, 0, len(indices))
	for _, idx := range indices {
		if sentence, ok := s.corpus.At(idx); ok {
			candidates = append(candidates, sentence)
		}
	}

	suggestions, err := s.scorer.Rank(ctx, input, candidates, s.maxResults)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(suggestions))
	for i, sug := range suggestions {
		results[i] = Result{
			Sentence: sug.Sentence.Text,
			Origin:   sug.Sentence.Origin,
			Offset:   sug.Offset,
			Score:    sug.Score,
			Rank:     i + 1,
		}
	}
	return results, nil
}

// MaxResults returns the configured result cap.
func (s *Suggester) MaxResults() int {
	return s.maxResults
}
