package suggest

import (
	"context"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"senserve/pkg/trie"
)

// minLongQueryWords is the word count at which selection switches from the
// variant-expanded short path to the exact-lookup long path.
const minLongQueryWords = 2

// disqualified marks a sentence that can no longer satisfy the long-path
// co-occurrence rule. Once set it is never cleared.
const disqualified = -1

// Selector narrows the corpus to candidate sentences worth scoring.
type Selector struct {
	trie *trie.Trie
}

// NewSelector returns a selector reading from tr.
func NewSelector(tr *trie.Trie) *Selector {
	return &Selector{trie: tr}
}

// Select returns the 0-based corpus indices of candidate sentences for the
// lowercased, trimmed input. Queries under two words take the typo-tolerant
// short path; longer queries take the exact long path. Indices come back in
// ascending order so downstream scoring sees corpus scan order.
func (s *Selector) Select(ctx context.Context, input string) ([]int, error) {
	if len(strings.Fields(input)) >= minLongQueryWords {
		return s.selectLong(ctx, strings.Fields(input))
	}
	return s.selectShort(ctx, strings.Fields(Preprocess(input)))
}

// selectShort unions the sentence ids of each word's exact lookup with the
// lookups of all its single-edit variants, then intersects across words.
func (s *Selector) selectShort(ctx context.Context, words []string) ([]int, error) {
	var all mapset.Set[int]

	for _, word := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ids := mapset.NewThreadUnsafeSet[int]()
		for _, h := range s.trie.SentencesOf(word) {
			ids.Add(h.Sentence)
		}
		Variants(word).Each(func(variant string) bool {
			for _, h := range s.trie.SentencesOf(variant) {
				ids.Add(h.Sentence)
			}
			return false
		})

		if all == nil {
			all = ids
		} else {
			all = all.Intersect(ids)
		}
	}
	if all == nil {
		return nil, nil
	}
	return toCorpusIndices(all), nil
}

// selectLong accumulates a running co-occurrence count per sentence using
// exact lookups only. The first word seeds the count, the second increments
// or initializes it, and from the third word on a sentence must already have
// kept pace (count >= index-1) or it is disqualified for good. A sentence
// qualifies when its final count reaches wordCount-1. This is a proximity
// heuristic, not phrase matching; the threshold is kept as-is deliberately.
func (s *Selector) selectLong(ctx context.Context, words []string) ([]int, error) {
	counts := make(map[int]int)

	for wordIndex, word := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, h := range s.trie.SentencesOf(word) {
			id := h.Sentence
			switch {
			case wordIndex == 0:
				counts[id] = 1
			case wordIndex == 1:
				counts[id]++
			default:
				c := counts[id]
				if c == disqualified {
					continue
				}
				if c >= wordIndex-1 {
					counts[id] = c + 1
				} else {
					counts[id] = disqualified
				}
			}
		}
	}

	qualifying := mapset.NewThreadUnsafeSet[int]()
	for id, count := range counts {
		if count != disqualified && count >= len(words)-1 {
			qualifying.Add(id)
		}
	}
	if qualifying.Cardinality() == 0 {
		return nil, nil
	}
	return toCorpusIndices(qualifying), nil
}

// toCorpusIndices maps 1-based sentence ids to sorted 0-based corpus indices.
func toCorpusIndices(ids mapset.Set[int]) []int {
	indices := make([]int, 0, ids.Cardinality())
	ids.Each(func(id int) bool {
		indices = append(indices, id-1)
		return false
	})
	sort.Ints(indices)
	return indices
}
