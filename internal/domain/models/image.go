package models

import "time"

// Image is an uploaded asset hosted on the media host, optionally filed
// under a Folder. FolderInfo is filled in on read and never stored.
type Image struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	URL        string        `json:"url"`
	PublicID   string        `json:"public_id"`
	FolderID   *string       `json:"folder"`
	FolderInfo *FolderRef    `json:"folderInfo,omitempty"`
	Tags       []string      `json:"tags"`
	Metadata   ImageMetadata `json:"metadata"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// FolderRef names the folder an image is filed under
type FolderRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

type ImageMetadata struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}
