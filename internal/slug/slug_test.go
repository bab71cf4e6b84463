package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello, World!", "hello-world"},
		{"already a slug", "hello-world", "hello-world"},
		{"mixed punctuation", "Go 1.25: What's New?", "go-1-25-what-s-new"},
		{"leading and trailing junk", "  --Breaking News-- ", "breaking-news"},
		{"consecutive separators", "a___b...c", "a-b-c"},
		{"digits kept", "Top 10 posts of 2024", "top-10-posts-of-2024"},
		{"only punctuation", "!!!???", ""},
		{"empty", "", ""},
		{"unicode stripped", "Café résumé", "caf-r-sum"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Derive(tc.title))
		})
	}
}

func TestDerive_Charset(t *testing.T) {
	titles := []string{
		"Hello, World!",
		"  lots   of   spaces  ",
		"UPPER lower 123",
		"-pre-hyphenated-",
		"\ttabs\nand\nnewlines",
	}

	for _, title := range titles {
		got := Derive(title)

		assert.False(t, strings.HasPrefix(got, "-"), "leading hyphen in %q", got)
		assert.False(t, strings.HasSuffix(got, "-"), "trailing hyphen in %q", got)
		assert.NotContains(t, got, "--", "consecutive hyphens in %q", got)

		for _, r := range got {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, ok, "unexpected rune %q in %q", r, got)
		}
	}
}

func TestDerive_Idempotent(t *testing.T) {
	titles := []string{
		"Hello, World!",
		"Go 1.25: What's New?",
		"!!!???",
		"already-a-slug",
		"  MiXeD CaSe  42  ",
	}

	for _, title := range titles {
		once := Derive(title)
		assert.Equal(t, once, Derive(once), "not idempotent for %q", title)
	}
}
