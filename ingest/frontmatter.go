package ingest

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	frontMatterOpen  = "---\n"
	frontMatterClose = "\n---\n"
)

var ErrFrontMatter = errors.New("ingest: front matter is not valid YAML")

// FrontMatter is the YAML block at the top of a page. Only the title is
// interpreted; everything else is kept in Extra.
type FrontMatter struct {
	Title string         `yaml:"title"`
	Extra map[string]any `yaml:",inline"`
}

// SplitFrontMatter separates a leading "---\n ... \n---\n" block from the
// body. Content without an opening marker, or with no closing marker, has no
// front matter and is returned whole. When the block does not parse the body
// is still returned, with an error wrapping ErrFrontMatter.
func SplitFrontMatter(content string) (FrontMatter, string, error) {
	var fm FrontMatter
	if !strings.HasPrefix(content, frontMatterOpen) {
		return fm, content, nil
	}

	// The close search starts before the opening newline so an empty block,
	// "---\n---\n", is recognised.
	end := strings.Index(content[len(frontMatterOpen)-1:], frontMatterClose)
	if end < 0 {
		return fm, content, nil
	}
	end += len(frontMatterOpen) - 1

	block := content[len(frontMatterOpen):max(end, len(frontMatterOpen))]
	body := content[end+len(frontMatterClose):]
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return FrontMatter{}, body, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	return fm, body, nil
}
