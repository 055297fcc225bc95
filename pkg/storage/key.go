package storage

import (
	"net/url"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Key joins a prefix, an owner identifier, and a sanitized filename into a blob key,
// e.g. "evaluations/<id>/proposal.md".
func Key(prefix, owner, filename string) string {
	return path.Join(prefix, owner, SanitizeFilename(filename))
}

// SanitizeFilename strips directory components and escapes the base name for use
// as a single key segment. Empty or dot names become "document".
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == "" || name == ".." {
		name = "document"
	}
	return url.PathEscape(name)
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if slices.Contains(strings.Split(key, "/"), "..") {
		return ErrInvalidKey
	}
	return nil
}
