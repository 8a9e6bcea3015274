package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Go Concurrency", "go-concurrency"},
		{"Go Concurrency!", "go-concurrency"},
		{"  Machine   Learning  ", "machine-learning"},
		{"already-a-slug", "already-a-slug"},
		{"C++ & Rust", "c-rust"},
		{"---", ""},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Generate(tc.input), "input %q", tc.input)
	}
}
