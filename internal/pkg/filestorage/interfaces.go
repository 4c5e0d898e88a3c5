package filestorage

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveBytes writes data under subPath/name and returns the public URL of the file
	SaveBytes(subPath, name string, data []byte) (string, error)

	// URL returns the public URL of subPath/name without touching the disk
	URL(subPath, name string) string

	// Exists reports whether the file behind fileURL is present
	Exists(fileURL string) bool

	// DeleteFile removes a file previously returned by SaveBytes
	DeleteFile(fileURL string) error

	// GetFullPath returns the full filesystem path for a given file URL
	GetFullPath(fileURL string) string
}
