package vocab

import "testing"

func TestAddCounts(t *testing.T) {
	ix := New()
	for _, w := range []string{"the", "The", " the ", "quick", ""} {
		ix.Add(w)
	}

	if got := ix.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}
	if got := ix.Occurrences(); got != 4 {
		t.Errorf("Occurrences() = %d, want 4", got)
	}
}

func TestCompleteRanking(t *testing.T) {
	ix := New()
	words := []string{
		"then", "then", "then",
		"they", "they",
		"them",
		"the",
		"toast",
	}
	for _, w := range words {
		ix.Add(w)
	}

	completions := ix.Complete("the", 10)
	if len(completions) != 3 {
		t.Fatalf("Complete(the) returned %d completions, want 3: %v", len(completions), completions)
	}
	for _, c := range completions {
		if c.Word == "the" {
			t.Error("Complete should exclude the exact prefix word")
		}
	}
	if completions[0].Word != "then" || completions[0].Count != 3 {
		t.Errorf("top completion = %+v, want {then 3}", completions[0])
	}
	if completions[1].Word != "they" || completions[1].Count != 2 {
		t.Errorf("second completion = %+v, want {they 2}", completions[1])
	}
}

func TestCompleteLimit(t *testing.T) {
	ix := New()
	for _, w := range []string{"cat", "car", "cap", "can", "cab"} {
		ix.Add(w)
	}

	if got := len(ix.Complete("ca", 2)); got != 2 {
		t.Errorf("Complete with limit 2 returned %d completions", got)
	}
	if got := len(ix.Complete("ca", 0)); got != 5 {
		t.Errorf("Complete with limit 0 returned %d completions, want all 5", got)
	}
}

func TestCompleteNoMatch(t *testing.T) {
	ix := New()
	ix.Add("hello")

	if got := ix.Complete("xyz", 10); got != nil {
		t.Errorf("Complete(xyz) = %v, want nil", got)
	}
	if got := ix.Complete("  ", 10); got != nil {
		t.Errorf("Complete on blank prefix = %v, want nil", got)
	}
}
