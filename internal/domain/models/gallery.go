package models

import "time"

// GalleryImage is a curated, captioned image. Folder is a free-text label,
// not a Folder reference.
type GalleryImage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Detail    string    `json:"detail"`
	ImageURL  string    `json:"imageUrl"`
	Folder    string    `json:"folder"`
	PublicID  string    `json:"publicId,omitempty"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	Format    string    `json:"format,omitempty"`
	Bytes     int64     `json:"bytes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
