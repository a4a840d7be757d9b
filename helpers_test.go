package readln

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateFuzzyScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		candidate string
		want      func(t *testing.T, score int)
	}{
		{
			name:      "empty input matches everything",
			input:     "",
			candidate: "anything",
			want:      func(t *testing.T, score int) { assert.Equal(t, 1, score) },
		},
		{
			name:      "empty candidate never matches",
			input:     "x",
			candidate: "",
			want:      func(t *testing.T, score int) { assert.Equal(t, 0, score) },
		},
		{
			name:      "exact match scores highest",
			input:     "git status",
			candidate: "git status",
			want:      func(t *testing.T, score int) { assert.Equal(t, 1000, score) },
		},
		{
			name:      "prefix beats substring",
			input:     "git",
			candidate: "git status",
			want:      func(t *testing.T, score int) { assert.Greater(t, score, 800) },
		},
		{
			name:      "substring match",
			input:     "status",
			candidate: "git status",
			want:      func(t *testing.T, score int) { assert.Greater(t, score, 500) },
		},
		{
			name:      "no shared characters",
			input:     "zzz",
			candidate: "git status",
			want:      func(t *testing.T, score int) { assert.Equal(t, 0, score) },
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.want(t, calculateFuzzyScore(tt.input, tt.candidate))
		})
	}
}

func TestHistorySearcher(t *testing.T) {
	t.Parallel()

	history := []string{
		"git status",
		"git commit -m 'fix bug'",
		"docker run -it ubuntu",
		"kubectl get pods",
	}
	search := NewHistorySearcher(history)

	t.Run("empty query returns everything in order", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, history, search(""))
	})

	t.Run("ranked matches", func(t *testing.T) {
		t.Parallel()

		// Both "git" commands outrank the weak character-level match in
		// "kubectl get pods"; "docker run" shares no 'g' and is dropped.
		results := search("git")
		assert.Len(t, results, 3)
		assert.Contains(t, results[:2], "git status")
		assert.Contains(t, results[:2], "git commit -m 'fix bug'")
		assert.Equal(t, "kubectl get pods", results[2])
	})

	t.Run("case insensitive", func(t *testing.T) {
		t.Parallel()

		results := search("GIT")
		assert.NotEmpty(t, results)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, search("zzzz"))
	})
}
