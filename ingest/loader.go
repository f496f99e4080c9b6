package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-bloomsearch/index"
)

const (
	// PagesDirEnv names the pages directory when none is given explicitly.
	PagesDirEnv = "PAGES_DIR"

	// frontMatterFile holds directory level front matter and is never a page.
	frontMatterFile = ".fm.yaml"
)

var ErrNoPagesDir = errors.New("ingest: no pages directory given and " + PagesDirEnv + " is not set")

type LoaderOptions struct {
	pathPrefix  string
	rawMarkdown bool
}

type LoaderOption func(*LoaderOptions)

// WithPathPrefix is joined in front of every document path.
func WithPathPrefix(prefix string) LoaderOption {
	return func(o *LoaderOptions) {
		o.pathPrefix = prefix
	}
}

// WithRawMarkdown indexes markdown source as is instead of rendering it to
// plain text first.
func WithRawMarkdown(raw bool) LoaderOption {
	return func(o *LoaderOptions) {
		o.rawMarkdown = raw
	}
}

// Loader reads a tree of pages into documents ready for indexing.
type Loader struct {
	log  logger.Logger
	opts LoaderOptions
}

func NewLoader(log logger.Logger, opts ...LoaderOption) *Loader {
	l := &Loader{log: log}
	for _, o := range opts {
		o(&l.opts)
	}
	return l
}

// PagesDir returns dir, or $PAGES_DIR when dir is empty.
func PagesDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if dir = os.Getenv(PagesDirEnv); dir != "" {
		return dir, nil
	}
	return "", ErrNoPagesDir
}

// LoadDir is Load over the directory tree rooted at dir.
func (l *Loader) LoadDir(dir string) ([]index.Document, error) {
	return l.Load(os.DirFS(dir))
}

// Load reads every regular file of fsys, in lexical walk order, except
// .fm.yaml files. A page whose front matter does not parse is still indexed
// with its file name title.
func (l *Loader) Load(fsys fs.FS) ([]index.Document, error) {
	var docs []index.Document
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() == frontMatterFile || !d.Type().IsRegular() {
			return nil
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		docs = append(docs, l.Document(name, content))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	l.infof("loaded %d pages", len(docs))
	return docs, nil
}

// Document turns one file into a document. name is the slash separated path
// relative to the pages root.
func (l *Loader) Document(name string, content []byte) index.Document {
	fm, body, err := SplitFrontMatter(string(content))
	if err != nil {
		l.infof("%s: %v", name, err)
	}

	if strings.HasSuffix(strings.ToLower(name), markdownExt) && !l.opts.rawMarkdown {
		body = PlainText([]byte(body))
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = TitleFromName(name)
	}

	return index.Document{
		Path:  DocumentPath(path.Join(l.opts.pathPrefix, name)),
		Title: title,
		Body:  body,
	}
}

func (l *Loader) infof(format string, args ...any) {
	if l.log != nil {
		l.log.Infof(format, args...)
	}
}
