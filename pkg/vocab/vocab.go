// Package vocab maintains an occurrence-ranked index of corpus vocabulary,
// used for word-level completion hints alongside the sentence engine.
package vocab

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Completion is one word suggestion with its corpus occurrence count.
type Completion struct {
	Word  string
	Count int
}

// Index counts distinct corpus words and serves prefix completions over a
// patricia trie. Built during ingestion, read-only afterwards.
type Index struct {
	trie   *patricia.Trie
	counts map[string]int
	total  int
}

// New returns an empty vocabulary index.
func New() *Index {
	return &Index{
		trie:   patricia.NewTrie(),
		counts: make(map[string]int),
	}
}

// Add records one occurrence of word. Words are lowercased and trimmed;
// empty results are ignored.
func (ix *Index) Add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	ix.counts[word]++
	ix.trie.Set(patricia.Prefix(word), ix.counts[word])
	ix.total++
}

// Complete returns up to limit words extending prefix, ordered by descending
// occurrence count. The prefix itself is excluded from the results.
func (ix *Index) Complete(prefix string, limit int) []Completion {
	lowerPrefix := strings.ToLower(strings.TrimSpace(prefix))
	if lowerPrefix == "" {
		return nil
	}

	var completions []Completion
	err := ix.trie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == lowerPrefix {
			return nil
		}

		count := 1
		switch v := item.(type) {
		case int:
			count = v
		default:
			log.Errorf("Unknown item type: %T for word %s", item, p)
		}

		completions = append(completions, Completion{Word: word, Count: count})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting vocab subtree: %v", err)
		return nil
	}

	sort.SliceStable(completions, func(i, j int) bool {
		return completions[i].Count > completions[j].Count
	})
	if limit > 0 && len(completions) > limit {
		completions = completions[:limit]
	}
	return completions
}

// Size returns the number of distinct words.
func (ix *Index) Size() int {
	return len(ix.counts)
}

// Occurrences returns the total number of word occurrences recorded.
func (ix *Index) Occurrences() int {
	return ix.total
}
