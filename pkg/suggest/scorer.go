package suggest

import (
	"context"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hbollon/go-edlib"

	"senserve/pkg/corpus"
)

// punctuation is the ASCII punctuation stripped during preprocessing.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// editKind classifies the single edit separating a query word from the
// candidate word it was matched against.
type editKind int

const (
	editSubstitution editKind = iota
	editAddition
	editDeletion
)

func (k editKind) String() string {
	switch k {
	case editAddition:
		return "addition"
	case editDeletion:
		return "deletion"
	default:
		return "substitution"
	}
}

// PenaltyTable maps a matched word's position to the penalty for one edit
// kind. Positions 0-3 carry explicit values, everything beyond pays Default.
type PenaltyTable struct {
	Explicit [4]float64
	Default  float64
}

// At returns the penalty for a match at position pos.
func (p PenaltyTable) At(pos int) float64 {
	if pos >= 0 && pos < len(p.Explicit) {
		return p.Explicit[pos]
	}
	return p.Default
}

// ScoringConfig holds the penalty tables per edit kind.
type ScoringConfig struct {
	Substitution PenaltyTable
	Addition     PenaltyTable
	Deletion     PenaltyTable
}

// DefaultScoringConfig returns the standard penalty tables: substitutions
// cost 5/4/3/2 by position (1 beyond), additions and deletions 10/8/6/4
// (2 beyond).
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Substitution: PenaltyTable{Explicit: [4]float64{5, 4, 3, 2}, Default: 1},
		Addition:     PenaltyTable{Explicit: [4]float64{10, 8, 6, 4}, Default: 2},
		Deletion:     PenaltyTable{Explicit: [4]float64{10, 8, 6, 4}, Default: 2},
	}
}

func (c ScoringConfig) penalty(kind editKind, pos int) float64 {
	switch kind {
	case editAddition:
		return c.Addition.At(pos)
	case editDeletion:
		return c.Deletion.At(pos)
	default:
		return c.Substitution.At(pos)
	}
}

// Suggestion is one scored candidate sentence. Offset is the 1-based
// position of the first query word's exact match within the sentence, 0 when
// the first word only matched through an edit.
type Suggestion struct {
	Sentence corpus.Sentence
	Offset   int
	Score    float64
}

// Scorer ranks candidate sentences against a query. A zero budget of one
// edit per sentence is enforced: the first unmatched query word may consume
// it, any further miss disqualifies the sentence.
type Scorer struct {
	cfg ScoringConfig
}

// NewScorer returns a scorer using the given penalty tables.
func NewScorer(cfg ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Rank scores every candidate and returns at most limit suggestions ordered
// by descending score. Ties keep corpus scan order. A candidate that panics
// during scoring is logged and dropped; the batch continues.
func (s *Scorer) Rank(ctx context.Context, query string, candidates []corpus.Sentence, limit int) ([]Suggestion, error) {
	queryWords := strings.Fields(Preprocess(query))
	if len(queryWords) == 0 || len(candidates) == 0 {
		return nil, nil
	}

	suggestions := make([]Suggestion, 0, len(candidates))
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if sug, ok := s.scoreOne(queryWords, candidate); ok {
			suggestions = append(suggestions, sug)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// scoreOne walks the query words against a forward-only cursor into the
// candidate's word sequence. Exact matches reward 2*len(word), the single
// allowed edit subtracts a position-weighted penalty, anything else
// disqualifies. Survivors gain a 2*wordCount-1 length bonus.
func (s *Scorer) scoreOne(queryWords []string, candidate corpus.Sentence) (sug Suggestion, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Scoring sentence %d failed: %v", candidate.ID, r)
			ok = false
		}
	}()

	words := strings.Fields(Preprocess(candidate.Text))
	cursor := 0
	score := 0.0
	offset := 0
	editUsed := false

	for qi, queryWord := range queryWords {
		if idx := indexFrom(words, queryWord, cursor); idx >= 0 {
			score += float64(2 * len(queryWord))
			cursor = idx
			if qi == 0 {
				offset = idx + 1
			}
			continue
		}
		if editUsed {
			return Suggestion{}, false
		}
		matched := false
		for i := cursor; i < len(words); i++ {
			kind, isEdit := classifyEdit(queryWord, words[i])
			if !isEdit {
				continue
			}
			score -= s.cfg.penalty(kind, i)
			cursor = i
			editUsed = true
			matched = true
			break
		}
		if !matched {
			return Suggestion{}, false
		}
	}

	score += float64(2*len(words) - 1)
	return Suggestion{
		Sentence: candidate,
		Offset:   offset,
		Score:    score,
	}, true
}

// classifyEdit reports whether candidateWord sits exactly one edit away from
// queryWord and which kind of edit the user made. Distance uses the OSA
// variant so an adjacent transposition counts as a single edit, classified
// by length like a substitution.
func classifyEdit(queryWord, candidateWord string) (editKind, bool) {
	if edlib.OSADamerauLevenshteinDistance(queryWord, candidateWord) != 1 {
		return 0, false
	}
	switch {
	case len(queryWord) == len(candidateWord):
		return editSubstitution, true
	case len(queryWord) < len(candidateWord):
		return editDeletion, true
	default:
		return editAddition, true
	}
}

// indexFrom returns the first index of word in words at or after start.
func indexFrom(words []string, word string, start int) int {
	for i := start; i < len(words); i++ {
		if words[i] == word {
			return i
		}
	}
	return -1
}

// Preprocess strips ASCII punctuation, lowercases, and collapses whitespace
// runs to single spaces. Query and candidate text go through the same
// normalization so comparisons stay symmetric.
func Preprocess(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if strings.ContainsRune(punctuation, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
