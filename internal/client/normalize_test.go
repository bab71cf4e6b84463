package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeArticleList(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{
			name: "bare array",
			body: `[{"id":"a1","title":"One"},{"id":"a2","title":"Two"}]`,
			want: 2,
		},
		{
			name: "wrapped in blogs",
			body: `{"blogs":[{"id":"a1","title":"One"}]}`,
			want: 1,
		},
		{
			name: "wrapped in articles",
			body: `{"articles":[{"id":"a1","title":"One"}]}`,
			want: 1,
		},
		{
			name: "wrapped in data",
			body: `{"data":[{"id":"a1","title":"One"}]}`,
			want: 1,
		},
		{
			name: "empty array",
			body: `[]`,
			want: 0,
		},
		{
			name:    "object without a known wrapper",
			body:    `{"results":[{"id":"a1"}]}`,
			wantErr: true,
		},
		{
			name:    "scalar",
			body:    `42`,
			wantErr: true,
		},
		{
			name:    "empty body",
			body:    ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeArticleList([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestDecodeArticle_FieldAliases(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Article
	}{
		{
			name: "canonical names",
			body: `{"id":"a1","title":"T","slug":"t","content":"C","coverImage":"/uploads/x.png","isPublished":true,"createdAt":"2025-06-01T12:00:00Z"}`,
			want: Article{
				ID: "a1", Title: "T", Slug: "t", Content: "C",
				CoverImage: "/uploads/x.png", IsPublished: true,
				CreatedAt: "2025-06-01T12:00:00Z",
			},
		},
		{
			name: "snake case with mongo id",
			body: `{"_id":"a1","title":"T","cover_image":"/uploads/x.png","is_published":true,"created_at":"2025-06-01"}`,
			want: Article{
				ID: "a1", Title: "T", CoverImage: "/uploads/x.png",
				IsPublished: true, CreatedAt: "2025-06-01",
			},
		},
		{
			name: "imageUrl alias and lowercase timestamp",
			body: `{"id":"a1","imageUrl":"/img.jpg","createdat":"yesterday"}`,
			want: Article{ID: "a1", CoverImage: "/img.jpg", CreatedAt: "yesterday"},
		},
		{
			name: "canonical name wins over alias",
			body: `{"id":"a1","_id":"mongo-id","coverImage":"/canonical.png","cover_image":"/alias.png"}`,
			want: Article{ID: "a1", CoverImage: "/canonical.png"},
		},
		{
			name: "wrong types are skipped not fatal",
			body: `{"id":"a1","isPublished":"yes","createdAt":12345}`,
			want: Article{ID: "a1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeArticle([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeSingleArticle(t *testing.T) {
	t.Run("bare object", func(t *testing.T) {
		got, err := decodeSingleArticle([]byte(`{"id":"a1","title":"T"}`))
		require.NoError(t, err)
		assert.Equal(t, "a1", got.ID)
	})

	t.Run("wrapped in blog", func(t *testing.T) {
		got, err := decodeSingleArticle([]byte(`{"blog":{"id":"a1","title":"T"}}`))
		require.NoError(t, err)
		assert.Equal(t, "a1", got.ID)
	})

	t.Run("wrapped in data", func(t *testing.T) {
		got, err := decodeSingleArticle([]byte(`{"data":{"_id":"a1"}}`))
		require.NoError(t, err)
		assert.Equal(t, "a1", got.ID)
	})

	t.Run("object with no article fields", func(t *testing.T) {
		_, err := decodeSingleArticle([]byte(`{"status":"ok"}`))
		assert.Error(t, err)
	})

	t.Run("array is not an article", func(t *testing.T) {
		_, err := decodeSingleArticle([]byte(`[{"id":"a1"}]`))
		assert.Error(t, err)
	})
}
