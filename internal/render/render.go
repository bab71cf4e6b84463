// Package render prepares article fields for display: cover image
// resolution, plain-text excerpts, and timestamp formatting.
package render

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// DateUnknown is shown when a timestamp cannot be parsed.
const DateUnknown = "unknown date"

var textPolicy = bluemonday.StrictPolicy()

// DisplayImage resolves the image to show for an article. The explicit
// cover image wins, then the first <img> in the content, then the
// configured placeholder.
func DisplayImage(coverImage, contentHTML, placeholder string) string {
	if strings.TrimSpace(coverImage) != "" {
		return coverImage
	}
	if src := firstInlineImage(contentHTML); src != "" {
		return src
	}
	return placeholder
}

func firstInlineImage(contentHTML string) string {
	if strings.TrimSpace(contentHTML) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return ""
	}

	src, ok := doc.Find("img").First().Attr("src")
	if !ok {
		return ""
	}
	return strings.TrimSpace(src)
}

// Excerpt returns the explicit excerpt when present, otherwise the first
// wordLimit words of the content with all markup stripped. A truncated
// excerpt ends with an ellipsis.
func Excerpt(explicit, contentHTML string, wordLimit int) string {
	if trimmed := strings.TrimSpace(explicit); trimmed != "" {
		return trimmed
	}

	text := strings.TrimSpace(textPolicy.Sanitize(contentHTML))
	if text == "" {
		return ""
	}

	words := strings.Fields(text)
	if wordLimit <= 0 || len(words) <= wordLimit {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:wordLimit], " ") + "..."
}

// Timestamp layouts accepted across API versions, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp formats a raw timestamp string for display. Unparseable
// input yields DateUnknown rather than an error.
func Timestamp(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DateUnknown
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("January 2, 2006")
		}
	}
	return DateUnknown
}
