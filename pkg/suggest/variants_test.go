package suggest

import "testing"

func TestVariantsMembership(t *testing.T) {
	testCases := []struct {
		word        string
		variant     string
		included    bool
		description string
	}{
		{"cat", "bat", true, "substitution at position 0"},
		{"cat", "cut", true, "substitution in middle"},
		{"cat", "at", true, "deletion at position 0"},
		{"cat", "ct", true, "deletion in middle"},
		{"cat", "cart", true, "insertion in middle"},
		{"cat", "scat", true, "insertion at front"},
		{"cat", "cats", true, "append at end"},
		{"tes", "test", true, "append recovers a trailing typo"},
		{"cat", "cat", false, "identity is never a variant"},
		{"cat", "dog", false, "unrelated word"},
		{"cat", "caats", false, "two edits away"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := Variants(tc.word).Contains(tc.variant)
			if got != tc.included {
				t.Errorf("Variants(%q).Contains(%q) = %v, want %v", tc.word, tc.variant, got, tc.included)
			}
		})
	}
}

// single-letter words have no deletion variant: it would be empty
func TestVariantsSingleLetter(t *testing.T) {
	variants := Variants("a")
	if variants.Contains("") {
		t.Error("deletion of a single-letter word must not produce the empty string")
	}
	// 25 substitutions + 26 insertions-before + 26 appends, minus overlaps
	if variants.Cardinality() == 0 {
		t.Error("expected variants for a single-letter word")
	}
	for _, want := range []string{"b", "ab", "ba", "aa"} {
		if !variants.Contains(want) {
			t.Errorf("expected variant %q for word 'a'", want)
		}
	}
}

func TestVariantsEmptyWord(t *testing.T) {
	if got := Variants("").Cardinality(); got != 0 {
		t.Errorf("empty word should expand to nothing, got %d variants", got)
	}
}

func BenchmarkVariants(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Variants("autocomplete")
	}
}
