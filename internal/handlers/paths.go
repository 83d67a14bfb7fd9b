package handlers

import "strings"

// normalizePath ensures a leading slash and strips a trailing slash, except
// for the root path.
func normalizePath(path string) string {
	if path == "" || path == "/" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(path, "/")
}

// joinPaths joins path fragments into one normalized path.
func joinPaths(fragments ...string) string {
	var b strings.Builder
	for _, fragment := range fragments {
		fragment = normalizePath(fragment)
		if fragment == "/" {
			continue
		}
		b.WriteString(fragment)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
