package osci

import (
	"regexp"
	"strings"
)

// repositoryURLPattern is the client-side check applied before the backend
// is asked to validate an address.
var repositoryURLPattern = regexp.MustCompile(`^https?://(www\.)?github\.com/[\w-]+/[\w.-]+/?$`)

// ValidateRepositoryURL checks the shape of a repository address.
// It returns ErrEmptyRepositoryURL or ErrInvalidRepositoryURL.
func ValidateRepositoryURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return ErrEmptyRepositoryURL
	}
	if !repositoryURLPattern.MatchString(url) {
		return ErrInvalidRepositoryURL
	}
	return nil
}

// RepoFile is one entry of a gathered repository. The backend may identify a
// file by Path or by Name; Content and Size are optional.
type RepoFile struct {
	Path    string
	Name    string
	Content string
	Size    int64
}

// DisplayPath returns the best available identifier for the file.
func (f RepoFile) DisplayPath() string {
	switch {
	case f.Path != "":
		return f.Path
	case f.Name != "":
		return f.Name
	default:
		return "Unknown file"
	}
}

// SizeKB returns the file size in kilobytes.
func (f RepoFile) SizeKB() float64 {
	return float64(f.Size) / 1024
}

// Repository is the result of gathering files from a repository.
type Repository struct {
	Name  string // owner/name as reported by the backend
	Files []RepoFile
}
