package domain

import "time"

type Article struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Slug        string    `db:"slug" json:"slug"`
	Content     string    `db:"content" json:"content"`
	Excerpt     *string   `db:"excerpt" json:"excerpt,omitempty"`
	CoverImage  *string   `db:"cover_image" json:"coverImage,omitempty"`
	IsPublished bool      `db:"is_published" json:"isPublished"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ArticleSummary is the listing projection. It never carries the content
// body so list responses stay bounded.
type ArticleSummary struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Slug        string    `db:"slug" json:"slug"`
	Excerpt     *string   `db:"excerpt" json:"excerpt,omitempty"`
	CoverImage  *string   `db:"cover_image" json:"coverImage,omitempty"`
	IsPublished bool      `db:"is_published" json:"isPublished"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ArticleInput carries the editable fields of an article. Nil means "not
// supplied" so updates merge only what the caller sent. There is no slug
// field: the slug is always derived from the title server-side.
type ArticleInput struct {
	Title       *string
	Content     *string
	Excerpt     *string
	CoverImage  *string
	IsPublished *bool
}

func (a *Article) Summary() ArticleSummary {
	return ArticleSummary{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Excerpt:     a.Excerpt,
		CoverImage:  a.CoverImage,
		IsPublished: a.IsPublished,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
