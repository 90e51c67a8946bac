/*
Package trie implements the positional prefix tree backing sentence suggestions.

Every indexed word maps to the sentences it occurs in and the word positions
inside each sentence. Nodes live in a flat arena and reference children by
index, so the whole structure is three contiguous allocations deep instead of
a pointer web. The trie is built once during corpus ingestion and is read-only
afterwards, which makes it safe to share between concurrent queries.
*/
package trie

import (
	"sort"

	"senserve/internal/utils"
)

type nodeID int32

const rootID nodeID = 0

// edge pairs a character with the child node it leads to.
// Edges are appended in creation order and never reordered, so a DFS
// visits words in the order their paths were first carved out.
type edge struct {
	ch byte
	id nodeID
}

// SentenceHits records every position a word occupies within one sentence.
type SentenceHits struct {
	Sentence  int
	Positions []int
}

// node is one trie node. hits is non-empty only when end is set.
type node struct {
	ch    byte
	edges []edge
	hits  []SentenceHits
	end   bool
}

func (n *node) child(ch byte) (nodeID, bool) {
	for _, e := range n.edges {
		if e.ch == ch {
			return e.id, true
		}
	}
	return 0, false
}

// addHit appends position to the hit list for sentenceID, keeping the
// list sorted by sentence id. Ingestion feeds ids in increasing order,
// so the append fast path covers the build almost entirely.
func (n *node) addHit(sentenceID, position int) {
	if k := len(n.hits); k > 0 && n.hits[k-1].Sentence == sentenceID {
		n.hits[k-1].Positions = append(n.hits[k-1].Positions, position)
		return
	}
	if k := len(n.hits); k == 0 || n.hits[k-1].Sentence < sentenceID {
		n.hits = append(n.hits, SentenceHits{Sentence: sentenceID, Positions: []int{position}})
		return
	}
	i := sort.Search(len(n.hits), func(i int) bool { return n.hits[i].Sentence >= sentenceID })
	if i < len(n.hits) && n.hits[i].Sentence == sentenceID {
		n.hits[i].Positions = append(n.hits[i].Positions, position)
		return
	}
	n.hits = append(n.hits, SentenceHits{})
	copy(n.hits[i+1:], n.hits[i:])
	n.hits[i] = SentenceHits{Sentence: sentenceID, Positions: []int{position}}
}

// Trie indexes words to the sentences and positions where they occur.
type Trie struct {
	nodes []node
	words int
}

// New returns an empty trie holding only the root node.
func New() *Trie {
	t := &Trie{}
	t.nodes = append(t.nodes, node{})
	return t
}

// Insert adds one occurrence of word at the given position within sentenceID.
// The word is lowercased and trimmed first; an empty result is a no-op.
// The insertion counter tracks occurrences, not distinct words.
func (t *Trie) Insert(word string, sentenceID, position int) {
	word = utils.NormalizeWord(word)
	if word == "" {
		return
	}
	cur := rootID
	for i := 0; i < len(word); i++ {
		ch := word[i]
		next, ok := t.nodes[cur].child(ch)
		if !ok {
			next = nodeID(len(t.nodes))
			t.nodes = append(t.nodes, node{ch: ch})
			t.nodes[cur].edges = append(t.nodes[cur].edges, edge{ch: ch, id: next})
		}
		cur = next
	}
	t.nodes[cur].end = true
	t.nodes[cur].addHit(sentenceID, position)
	t.words++
}

// lookup walks the path for word and reports the terminal node, if any.
func (t *Trie) lookup(word string) (nodeID, bool) {
	cur := rootID
	for i := 0; i < len(word); i++ {
		next, ok := t.nodes[cur].child(word[i])
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

// Search reports whether word was inserted as a complete word.
func (t *Trie) Search(word string) bool {
	word = utils.NormalizeWord(word)
	if word == "" {
		return false
	}
	id, ok := t.lookup(word)
	return ok && t.nodes[id].end
}

// SentencesOf returns the sentence hits recorded for word, or nil when the
// word is not indexed. The returned slice is owned by the trie and must be
// treated as read-only.
func (t *Trie) SentencesOf(word string) []SentenceHits {
	word = utils.NormalizeWord(word)
	if word == "" {
		return nil
	}
	id, ok := t.lookup(word)
	if !ok || !t.nodes[id].end {
		return nil
	}
	return t.nodes[id].hits
}

// PrefixSearch returns every complete word below prefix, prefix included when
// it is itself a word. Output order follows edge creation order, not
// lexicographic order.
func (t *Trie) PrefixSearch(prefix string) []string {
	prefix = utils.NormalizeWord(prefix)
	if prefix == "" {
		return nil
	}
	id, ok := t.lookup(prefix)
	if !ok {
		return nil
	}
	var words []string
	buf := append([]byte(nil), prefix...)
	t.collect(id, buf, &words)
	return words
}

func (t *Trie) collect(id nodeID, buf []byte, words *[]string) {
	n := &t.nodes[id]
	if n.end {
		*words = append(*words, string(buf))
	}
	for _, e := range n.edges {
		t.collect(e.id, append(buf, e.ch), words)
	}
}

// FuzzySearch returns every indexed word within maxDistance edits
// (insertions, deletions, substitutions) of word. A Levenshtein DP row is
// propagated down the trie and subtrees whose minimum achievable distance
// already exceeds the budget are pruned, so the cost stays proportional to
// the neighborhood rather than the whole trie.
func (t *Trie) FuzzySearch(word string, maxDistance int) []string {
	word = utils.NormalizeWord(word)
	if maxDistance < 0 {
		return nil
	}
	row := make([]int, len(word)+1)
	for j := range row {
		row[j] = j
	}
	var results []string
	buf := make([]byte, 0, len(word)+maxDistance)
	t.fuzzyDescend(rootID, word, row, maxDistance, buf, &results)
	return results
}

func (t *Trie) fuzzyDescend(id nodeID, target string, row []int, budget int, buf []byte, results *[]string) {
	n := &t.nodes[id]
	if n.end && row[len(target)] <= budget {
		*results = append(*results, string(buf))
	}
	for _, e := range n.edges {
		next := make([]int, len(target)+1)
		next[0] = row[0] + 1
		low := next[0]
		for j := 1; j <= len(target); j++ {
			cost := 1
			if target[j-1] == e.ch {
				cost = 0
			}
			next[j] = min(row[j]+1, min(next[j-1]+1, row[j-1]+cost))
			if next[j] < low {
				low = next[j]
			}
		}
		if low <= budget {
			t.fuzzyDescend(e.id, target, next, budget, append(buf, e.ch), results)
		}
	}
}

// Clear resets the trie to a single empty root.
func (t *Trie) Clear() {
	t.nodes = t.nodes[:0]
	t.nodes = append(t.nodes, node{})
	t.words = 0
}

// WordCount returns the number of word insertions performed.
func (t *Trie) WordCount() int {
	return t.words
}

// NodeCount returns the number of nodes, root included.
func (t *Trie) NodeCount() int {
	return len(t.nodes)
}

// Stats returns basic size counters for display and diagnostics.
func (t *Trie) Stats() map[string]int {
	return map[string]int{
		"totalWords": t.words,
		"totalNodes": len(t.nodes),
	}
}
