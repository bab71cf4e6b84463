package domain

import "time"

// StoredFile is the bookkeeping record written for every successful upload.
// Records are insert-only.
type StoredFile struct {
	ID         string    `db:"id" json:"id"`
	Filename   string    `db:"filename" json:"filename"`
	URL        string    `db:"url" json:"url"`
	Size       int64     `db:"size" json:"size"`
	MimeType   string    `db:"mimetype" json:"mimetype"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploadedAt"`
}
