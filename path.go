package opf

import (
	"net/url"
	"path"
	"strings"
)

// normalizeHref resolves href relative to the directory of basePath.
// Both are package-internal paths (forward-slash separated). The result is
// cleaned and validated to stay within the package root; an absolute href
// or one escaping the root yields an empty string.
func normalizeHref(basePath, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "/") {
		return ""
	}
	if decoded, err := url.PathUnescape(href); err == nil {
		href = decoded
	}
	dir := path.Dir(basePath)
	cleaned := path.Clean(path.Join(dir, href))
	if !isSafePath(cleaned) {
		return ""
	}
	return cleaned
}

// isSafePath checks whether p is a package-internal path that does not
// escape the root via path traversal (e.g., "../../secret").
func isSafePath(p string) bool {
	cleaned := path.Clean(p)
	if strings.HasPrefix(cleaned, "/") {
		return false
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return false
	}
	return true
}
