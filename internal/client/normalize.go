package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Article is the client-side view of an article. Timestamps stay as raw
// strings because deployments disagree on their format; callers parse
// and format for display.
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Content     string `json:"content"`
	Excerpt     string `json:"excerpt"`
	CoverImage  string `json:"coverImage"`
	IsPublished bool   `json:"isPublished"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Wrapper keys seen across API versions. A list response is either a
// bare array or an object with the array under one of these.
var listWrapperKeys = []string{"blogs", "articles", "data"}

// A single-article response is either a bare object with article fields
// or wrapped under one of these.
var articleWrapperKeys = []string{"blog", "article", "data"}

func decodeArticleList(data []byte) ([]Article, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty list response")
	}

	switch trimmed[0] {
	case '[':
		var raws []json.RawMessage
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("decode article list: %w", err)
		}
		articles := make([]Article, 0, len(raws))
		for i, raw := range raws {
			article, err := decodeArticle(raw)
			if err != nil {
				return nil, fmt.Errorf("decode article %d: %w", i, err)
			}
			articles = append(articles, article)
		}
		return articles, nil

	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("decode list envelope: %w", err)
		}
		for _, key := range listWrapperKeys {
			inner, ok := envelope[key]
			if !ok {
				continue
			}
			if innerTrimmed := bytes.TrimSpace(inner); len(innerTrimmed) > 0 && innerTrimmed[0] == '[' {
				return decodeArticleList(inner)
			}
		}
		return nil, fmt.Errorf("unrecognized list response shape: no %v key holds an array", listWrapperKeys)
	}

	return nil, fmt.Errorf("unrecognized list response shape")
}

func decodeSingleArticle(data []byte) (*Article, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("unrecognized article response shape")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode article response: %w", err)
	}

	for _, key := range articleWrapperKeys {
		inner, ok := envelope[key]
		if !ok {
			continue
		}
		if innerTrimmed := bytes.TrimSpace(inner); len(innerTrimmed) > 0 && innerTrimmed[0] == '{' {
			return decodeSingleArticle(inner)
		}
	}

	article, err := decodeArticle(trimmed)
	if err != nil {
		return nil, err
	}
	if article.ID == "" && article.Title == "" && article.Slug == "" {
		return nil, fmt.Errorf("unrecognized article response shape: no article fields present")
	}
	return &article, nil
}

// decodeArticle maps one JSON object to an Article, accepting the field
// name variants different API versions use.
func decodeArticle(raw json.RawMessage) (Article, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Article{}, fmt.Errorf("article is not an object: %w", err)
	}

	return Article{
		ID:          firstString(fields, "id", "_id"),
		Title:       firstString(fields, "title"),
		Slug:        firstString(fields, "slug"),
		Content:     firstString(fields, "content", "body"),
		Excerpt:     firstString(fields, "excerpt", "description"),
		CoverImage:  firstString(fields, "coverImage", "cover_image", "imageUrl", "image_url"),
		IsPublished: firstBool(fields, "isPublished", "is_published", "published"),
		CreatedAt:   firstString(fields, "createdAt", "created_at", "createdat"),
		UpdatedAt:   firstString(fields, "updatedAt", "updated_at", "updatedat"),
	}, nil
}

func firstString(fields map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return ""
}

func firstBool(fields map[string]json.RawMessage, keys ...string) bool {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			return b
		}
	}
	return false
}
