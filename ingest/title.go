package ingest

import (
	"path"
	"strings"
)

const markdownExt = ".md"

// TitleFromName derives a page title from its file name: "getting-started.md"
// becomes "Getting Started".
func TitleFromName(name string) string {
	name = strings.ToLower(path.Base(name))
	name = strings.TrimSuffix(name, markdownExt)

	b := []byte(name)
	for i, c := range b {
		if c >= 'a' && c <= 'z' && (i == 0 || !isWordByte(b[i-1])) {
			b[i] = c - 'a' + 'A'
		}
	}
	return strings.ReplaceAll(string(b), "-", " ")
}

// DocumentPath is the corpus path for a file: the slash separated path with
// any .md suffix dropped.
func DocumentPath(name string) string {
	return strings.TrimSuffix(path.Clean(name), markdownExt)
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
