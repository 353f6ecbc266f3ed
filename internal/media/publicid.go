package media

import (
	"net/url"
	"strings"
)

// KeyFromURL recovers the storage key from an asset's public URL: the path
// segments after the literal "upload" marker, minus a leading version segment
// like "v123". Returns "" when the URL does not follow the convention.
func KeyFromURL(rawURL string) string {
	segments := segmentsAfterUpload(rawURL)
	if len(segments) == 0 {
		return ""
	}
	return strings.Join(segments, "/")
}

// PublicIDFromURL derives the host's public identifier for an asset: the
// storage key with its file extension removed.
func PublicIDFromURL(rawURL string) string {
	key := KeyFromURL(rawURL)
	if key == "" {
		return ""
	}
	if dot := strings.LastIndex(key, "."); dot > strings.LastIndex(key, "/") {
		key = key[:dot]
	}
	return key
}

func segmentsAfterUpload(rawURL string) []string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	uploadIndex := -1
	for i, part := range parts {
		if part == "upload" {
			uploadIndex = i
			break
		}
	}
	if uploadIndex < 0 || uploadIndex == len(parts)-1 {
		return nil
	}

	after := parts[uploadIndex+1:]
	if isVersionSegment(after[0]) {
		after = after[1:]
	}
	if len(after) == 0 || after[0] == "" {
		return nil
	}

	return after
}

func isVersionSegment(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
