package suggest

import (
	mapset "github.com/deckarep/golang-set/v2"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyz"

// Variants returns every single-edit transformation of a normalized word:
// per position a substitution by each other lowercase letter, an insertion of
// each letter before the position, a deletion when the word is longer than
// one character, and each letter appended at the end. Duplicates collapse in
// the set. The expansion is dictionary-independent; callers probe the trie
// with each member to catch words within edit distance one.
func Variants(word string) mapset.Set[string] {
	variants := mapset.NewThreadUnsafeSet[string]()
	if word == "" {
		return variants
	}
	for i := 0; i < len(word); i++ {
		for j := 0; j < len(asciiLetters); j++ {
			ch := asciiLetters[j]
			variants.Add(word[:i] + string(ch) + word[i:])
			if word[i] != ch {
				variants.Add(word[:i] + string(ch) + word[i+1:])
			}
		}
		if len(word) > 1 {
			variants.Add(word[:i] + word[i+1:])
		}
	}
	for j := 0; j < len(asciiLetters); j++ {
		variants.Add(word + string(asciiLetters[j]))
	}
	return variants
}
