// Package pathutil provides path normalization and manipulation utilities
// for MinIO/S3 object keys.
package pathutil

import (
	"path"
	"strings"
)

// Normalize cleans a path and ensures forward slashes.
// It applies: ToSlash → Clean → Trim slashes
// Returns "." for empty paths.
func Normalize(p string) string {
	// Convert backslashes first so Windows-style paths clean correctly
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" {
		return "."
	}
	return p
}

// NormalizePrefix normalizes a key prefix. Returns "" for "." or empty.
func NormalizePrefix(prefix string) string {
	if p := Normalize(prefix); p != "." {
		return p
	}
	return ""
}

// JoinPath joins a prefix with a name to create a full S3 key.
// The root name "." maps to the prefix itself.
func JoinPath(prefix, name string) string {
	name = Normalize(name)
	switch {
	case name == ".":
		return prefix
	case prefix == "":
		return name
	default:
		return prefix + "/" + name
	}
}

// DirKey returns the key prefix under which a directory's children live,
// which is also the key of its marker object. The bucket root maps to "".
func DirKey(key string) string {
	if key == "" {
		return ""
	}
	return key + "/"
}

// ChildName returns the direct child name of key under dirKey and whether
// the child is a directory (a common prefix or marker ending in "/").
func ChildName(dirKey, key string) (string, bool) {
	rel := strings.TrimPrefix(key, dirKey)
	if strings.HasSuffix(rel, "/") {
		return strings.TrimSuffix(rel, "/"), true
	}
	return rel, false
}
