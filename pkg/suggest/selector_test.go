package suggest

import (
	"context"
	"strings"
	"testing"

	"senserve/pkg/trie"
)

// indexSentences mirrors ingestion: each sentence gets a 1-based id and its
// words are inserted with their positions.
func indexSentences(tr *trie.Trie, sentences []string) {
	for i, text := range sentences {
		for pos, word := range strings.Fields(text) {
			tr.Insert(word, i+1, pos)
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSelectShortExact(t *testing.T) {
	tr := trie.New()
	indexSentences(tr, []string{
		"the quick brown fox",
		"a lazy dog",
		"quick thinking",
	})
	sel := NewSelector(tr)

	got, err := sel.Select(context.Background(), "quick")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalInts(got, []int{0, 2}) {
		t.Errorf("expected corpus indices [0 2], got %v", got)
	}
}

// a truncated word reaches its sentence through the append variant
func TestSelectShortVariantInclusion(t *testing.T) {
	tr := trie.New()
	sentences := []string{
		"alpha", "beta", "gamma", "delta",
		"this test works", // id 5
	}
	indexSentences(tr, sentences)
	sel := NewSelector(tr)

	got, err := sel.Select(context.Background(), "tes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, idx := range got {
		if idx == 4 {
			found = true
		}
	}
	if !found {
		t.Errorf("sentence id 5 should be reachable via variant 'test', got %v", got)
	}
}

func TestSelectShortNoMatch(t *testing.T) {
	tr := trie.New()
	indexSentences(tr, []string{"something else entirely"})
	sel := NewSelector(tr)

	got, err := sel.Select(context.Background(), "qqqqqq")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %v", got)
	}
}

func TestSelectLong(t *testing.T) {
	tr := trie.New()
	indexSentences(tr, []string{
		"the quick brown fox",  // 1
		"the lazy dog",         // 2
		"quick brown dog runs", // 3
		"nothing relevant",     // 4
	})
	sel := NewSelector(tr)

	testCases := []struct {
		query       string
		want        []int
		description string
	}{
		// threshold is wordCount-1, so one word may be missing
		{"quick brown", []int{0, 2}, "both words present"},
		{"the quick brown", []int{0, 2}, "one missing word tolerated"},
		{"the lazy dog", []int{1}, "full phrase"},
		{"lazy brown fox dog", nil, "scattered words disqualify"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got, err := sel.Select(context.Background(), tc.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !equalInts(got, tc.want) {
				t.Errorf("query %q: expected %v, got %v", tc.query, tc.want, got)
			}
		})
	}
}

// exact lookups only on the long path: typos find nothing
func TestSelectLongNoVariants(t *testing.T) {
	tr := trie.New()
	indexSentences(tr, []string{"the quick brown fox"})
	sel := NewSelector(tr)

	got, err := sel.Select(context.Background(), "thx quickx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("long path must not expand variants, got %v", got)
	}
}

func TestSelectCancellation(t *testing.T) {
	tr := trie.New()
	indexSentences(tr, []string{"a b c"})
	sel := NewSelector(tr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sel.Select(ctx, "word"); err == nil {
		t.Error("expected context error from canceled selection")
	}
}
