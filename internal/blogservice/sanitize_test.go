package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no script tag",
			input: "React patterns",
			want:  "React patterns",
		},
		{
			name:  "script tag",
			input: "<script>alert('Hello, World!');</script>",
			want:  "",
		},
		{
			name:  "surrounding text",
			input: "Go <script>alert(1)</script>Statement Considered Harmful",
			want:  "Go Statement Considered Harmful",
		},
		{
			name:  "uppercase with attributes",
			input: `Type wars<SCRIPT SRC="evil.js"></SCRIPT>`,
			want:  "Type wars",
		},
		{
			name:  "multiline script",
			input: "First <script>\nalert(1)\n</script>class tests",
			want:  "First class tests",
		},
		{
			name:  "surrounding whitespace",
			input: "  Canonical string reduction  ",
			want:  "Canonical string reduction",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitize(tc.input))
		})
	}
}
