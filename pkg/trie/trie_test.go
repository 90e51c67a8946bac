package trie

import (
	"fmt"
	"sort"
	"testing"
)

// round trip: every inserted word is findable and carries its hits
func TestInsertAndSearch(t *testing.T) {
	tr := New()
	tr.Insert("Hello", 1, 0)
	tr.Insert("world", 1, 1)
	tr.Insert("hello", 2, 3)

	if !tr.Search("hello") {
		t.Error("expected 'hello' to be found")
	}
	if !tr.Search("HELLO") {
		t.Error("search should normalize case")
	}
	if tr.Search("hell") {
		t.Error("'hell' is only a path, not a word")
	}
	if tr.Search("") {
		t.Error("empty word should never match")
	}

	hits := tr.SentencesOf("hello")
	if len(hits) != 2 {
		t.Fatalf("expected hits in 2 sentences, got %d", len(hits))
	}
	if hits[0].Sentence != 1 || hits[0].Positions[0] != 0 {
		t.Errorf("sentence 1 hit wrong: %+v", hits[0])
	}
	if hits[1].Sentence != 2 || hits[1].Positions[0] != 3 {
		t.Errorf("sentence 2 hit wrong: %+v", hits[1])
	}
}

func TestRepeatedWordInSentence(t *testing.T) {
	tr := New()
	// same word twice in sentence 4
	tr.Insert("the", 4, 0)
	tr.Insert("the", 4, 5)

	hits := tr.SentencesOf("the")
	if len(hits) != 1 {
		t.Fatalf("expected a single sentence entry, got %d", len(hits))
	}
	if len(hits[0].Positions) != 2 || hits[0].Positions[0] != 0 || hits[0].Positions[1] != 5 {
		t.Errorf("positions wrong: %v", hits[0].Positions)
	}
	if tr.WordCount() != 2 {
		t.Errorf("insertion counter should count occurrences, got %d", tr.WordCount())
	}
}

func TestEmptyAndBlankInsert(t *testing.T) {
	tr := New()
	tr.Insert("", 1, 0)
	tr.Insert("   ", 1, 1)

	if tr.WordCount() != 0 {
		t.Errorf("blank inserts must be no-ops, counter = %d", tr.WordCount())
	}
	if tr.NodeCount() != 1 {
		t.Errorf("blank inserts must not create nodes, count = %d", tr.NodeCount())
	}
}

// node count = root + one node per distinct character-path edge
func TestNodeCount(t *testing.T) {
	tr := New()
	tr.Insert("cat", 1, 0) // c, ca, cat
	tr.Insert("car", 1, 1) // car
	tr.Insert("cat", 2, 0) // nothing new

	if got := tr.NodeCount(); got != 5 {
		t.Errorf("expected 5 nodes (root + 4 edges), got %d", got)
	}
	if got := tr.WordCount(); got != 3 {
		t.Errorf("expected 3 insertions, got %d", got)
	}
}

func TestPrefixSearch(t *testing.T) {
	tr := New()
	for i, w := range []string{"cat", "car", "cup", "dog"} {
		tr.Insert(w, 1, i)
	}

	got := tr.PrefixSearch("ca")
	sort.Strings(got)
	want := []string{"car", "cat"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	if res := tr.PrefixSearch("zz"); res != nil {
		t.Errorf("absent prefix should yield nothing, got %v", res)
	}
}

// the prefix itself counts when it is a complete word
func TestPrefixSearchIncludesExactWord(t *testing.T) {
	tr := New()
	tr.Insert("car", 1, 0)
	tr.Insert("cart", 1, 1)

	got := tr.PrefixSearch("car")
	if len(got) != 2 {
		t.Fatalf("expected both 'car' and 'cart', got %v", got)
	}
}

func TestFuzzySearch(t *testing.T) {
	tr := New()
	words := []string{"test", "text", "toast", "best", "rests", "apple"}
	for i, w := range words {
		tr.Insert(w, 1, i)
	}

	testCases := []struct {
		target   string
		distance int
		want     []string
	}{
		{"test", 0, []string{"test"}},
		{"test", 1, []string{"test", "text", "best"}},
		{"test", 2, []string{"test", "text", "best", "rests", "toast"}},
		{"tost", 1, []string{"test", "toast"}},
		{"zzzzz", 1, nil},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s_d%d", tc.target, tc.distance), func(t *testing.T) {
			got := tr.FuzzySearch(tc.target, tc.distance)
			sort.Strings(got)
			want := append([]string(nil), tc.want...)
			sort.Strings(want)
			if len(got) != len(want) {
				t.Fatalf("expected %v, got %v", want, got)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("expected %v, got %v", want, got)
				}
			}
		})
	}
}

// fuzzy results never exceed the requested distance
func TestFuzzyBound(t *testing.T) {
	tr := New()
	words := []string{"alpha", "alphas", "alphabet", "beta", "gamma", "alps"}
	for i, w := range words {
		tr.Insert(w, 1, i)
	}

	for _, d := range []int{0, 1, 2} {
		for _, w := range tr.FuzzySearch("alpha", d) {
			if got := levenshtein(w, "alpha"); got > d {
				t.Errorf("word %q at distance %d returned for budget %d", w, got, d)
			}
		}
	}
}

func TestClear(t *testing.T) {
	tr := New()
	tr.Insert("word", 1, 0)
	tr.Clear()

	if tr.WordCount() != 0 || tr.NodeCount() != 1 {
		t.Errorf("clear must reset counters, words=%d nodes=%d", tr.WordCount(), tr.NodeCount())
	}
	if tr.Search("word") {
		t.Error("cleared trie still finds 'word'")
	}
	tr.Insert("again", 2, 0)
	if !tr.Search("again") {
		t.Error("trie unusable after clear")
	}
}

// reference implementation used only to verify FuzzySearch output
func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func BenchmarkInsert(b *testing.B) {
	words := make([]string, 1000)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr := New()
		for j, w := range words {
			tr.Insert(w, j+1, 0)
		}
	}
}

func BenchmarkFuzzySearch(b *testing.B) {
	tr := New()
	for i := 0; i < 5000; i++ {
		tr.Insert(fmt.Sprintf("word%d", i), i+1, 0)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.FuzzySearch("word42", 1)
	}
}
