package utils

import "testing"

func TestHashStringDeterministic(t *testing.T) {
	inputs := []string{"", "a", "recruiter", "i am a recruiter", "åäö unicode", "long input with spaces and punctuation!?"}
	for _, in := range inputs {
		first := HashString(in)
		for i := 0; i < 3; i++ {
			if got := HashString(in); got != first {
				t.Fatalf("HashString(%q) not deterministic: %q vs %q", in, got, first)
			}
		}
	}
}

func TestHashStringDistinctShortInputs(t *testing.T) {
	inputs := []string{"recruiter", "developer", "collaborator", "friend", "investor", "designer"}
	seen := map[string]string{}
	for _, in := range inputs {
		h := HashString(in)
		if prev, ok := seen[h]; ok {
			t.Fatalf("collision between %q and %q: %q", prev, in, h)
		}
		seen[h] = in
	}
}

func TestHashStringNeverNegative(t *testing.T) {
	// Inputs chosen to drive the rolling hash through int32 wraparound.
	inputs := []string{"zzzzzzzzzzzzzzzz", "￿￿￿￿", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}
	for _, in := range inputs {
		h := HashString(in)
		if h == "" {
			t.Fatalf("HashString(%q) returned empty string", in)
		}
		if h[0] == '-' {
			t.Fatalf("HashString(%q) returned negative encoding %q", in, h)
		}
	}
}
