// Package corpus holds the immutable sentence store the suggestion engine
// answers from, and the ingestion that builds it from .txt files on disk.
package corpus

// Sentence is one indexed corpus line. IDs are 1-based and assigned
// sequentially at ingestion time, in lock-step with the ids stored in the
// trie. Origin keeps only the bare file name; files sharing a name in
// different subdirectories collapse into one origin label.
type Sentence struct {
	ID     int
	Text   string
	Origin string
}

// Corpus is an ordered, immutable collection of sentences.
type Corpus struct {
	sentences []Sentence
}

// New wraps an already-built sentence list. The slice is owned by the
// corpus afterwards.
func New(sentences []Sentence) *Corpus {
	return &Corpus{sentences: sentences}
}

// Len returns the number of sentences.
func (c *Corpus) Len() int {
	return len(c.sentences)
}

// At returns the sentence at the 0-based index i.
func (c *Corpus) At(i int) (Sentence, bool) {
	if i < 0 || i >= len(c.sentences) {
		return Sentence{}, false
	}
	return c.sentences[i], true
}

// OriginCount returns the number of distinct origin files.
func (c *Corpus) OriginCount() int {
	seen := make(map[string]struct{})
	for _, s := range c.sentences {
		seen[s.Origin] = struct{}{}
	}
	return len(seen)
}
