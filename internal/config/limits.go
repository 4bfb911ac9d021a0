package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	MaxFolderNameLength = 255

	// MaxCategoryNameLength is the maximum length for category names.
	MaxCategoryNameLength = 255

	// MaxImageNameLength is the maximum length for uploaded image names.
	// Uploads use the original filename, which browsers cap well below this.
	MaxImageNameLength = 255

	// MaxGalleryNameLength is the maximum length for gallery image names.
	MaxGalleryNameLength = 100

	// MaxGalleryDetailLength is the maximum length for gallery image details.
	MaxGalleryDetailLength = 500

	// DefaultGalleryFolder is the label given to gallery images filed nowhere else.
	DefaultGalleryFolder = "default"
)
