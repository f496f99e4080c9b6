// Package config loads bloomsearch settings.
//
// Settings come from a single optional file, named by the --config flag or the
// BLOOMSEARCH_CONFIG environment variable, laid over the defaults. Files
// ending in .json or .jsonc are read as JSON with comments and trailing
// commas allowed; anything else is YAML. A few environment variables then
// override the file, see applyEnvironment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/forestrie/go-bloomsearch/bloom"
	"github.com/forestrie/go-bloomsearch/index"
	"github.com/forestrie/go-bloomsearch/search"
	"github.com/forestrie/go-bloomsearch/terms"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfig    = "BLOOMSEARCH_CONFIG"
	EnvPagesDir  = "PAGES_DIR"
	EnvCorpus    = "BLOOMSEARCH_CORPUS"
	EnvMinScore  = "BLOOMSEARCH_MIN_SCORE"
	EnvLogLevel  = "BLOOMSEARCH_LOG_LEVEL"
	EnvSource    = "BLOOMSEARCH_SOURCE"
	EnvContainer = "BLOOMSEARCH_CONTAINER"
)

// Corpus sources for search and inspect. build and watch always write
// locally.
const (
	SourceLocal = "local"
	SourceBlob  = "blob"
)

var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	// PagesDir is the root of the document tree to index.
	PagesDir string `yaml:"pagesDir" json:"pagesDir"`

	// Corpus is the corpus file written by build and read by search. A .zst
	// suffix stores it compressed.
	// Default: search.corpus
	Corpus string `yaml:"corpus" json:"corpus"`

	// Source is where search and inspect read the corpus from, local or
	// blob. Default: local
	Source string `yaml:"source" json:"source"`

	// Blob locates the corpus when Source is blob. Corpus is then the blob
	// identity.
	Blob BlobConfig `yaml:"blob" json:"blob"`

	// LogLevel is passed to the logger. Default: INFO
	LogLevel string `yaml:"logLevel" json:"logLevel"`

	// MinScore is the exclusive score threshold for search results.
	MinScore float64 `yaml:"minScore" json:"minScore"`

	// Workers fans building and scoring out over this many goroutines.
	// Default: 1
	Workers int `yaml:"workers" json:"workers"`

	Index  IndexConfig   `yaml:"index" json:"index"`
	Search search.Config `yaml:"search" json:"search"`
}

// BlobConfig names the container published corpora are read from. The
// account endpoint and credentials come from the azblob environment
// variables.
type BlobConfig struct {
	Container string `yaml:"container" json:"container"`
}

// IndexConfig controls the build side term sets.
type IndexConfig struct {
	// Default: 0.01
	ErrorRate float64 `yaml:"errorRate" json:"errorRate"`
	// Default: 2 and 6
	NgramMin int `yaml:"ngramMin" json:"ngramMin"`
	NgramMax int `yaml:"ngramMax" json:"ngramMax"`
	// Default: 3
	PrefixMin int `yaml:"prefixMin" json:"prefixMin"`

	// Stemming applies to both building and searching. Default: false
	Stemming bool `yaml:"stemming" json:"stemming"`

	// RawMarkdown indexes markdown source without rendering it first.
	RawMarkdown bool `yaml:"rawMarkdown" json:"rawMarkdown"`
}

func Default() *Config {
	return &Config{
		Corpus:   "search.corpus",
		Source:   SourceLocal,
		LogLevel: "INFO",
		Workers:  1,
		Index: IndexConfig{
			ErrorRate: bloom.DefaultErrorRate,
			NgramMin:  index.DefaultNgramMin,
			NgramMax:  index.DefaultNgramMax,
			PrefixMin: index.DefaultPrefixMin,
		},
		Search: search.DefaultConfig(),
	}
}

// Load reads path, or the file named by BLOOMSEARCH_CONFIG when path is
// empty, over the defaults. With neither, the defaults are used. Environment
// overrides are applied last and the result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	c := Default()
	if path != "" {
		if err := c.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := c.applyEnvironment(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), c)
	default:
		err = yaml.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnvironment lets PAGES_DIR, the BLOOMSEARCH_CORPUS, _SOURCE,
// _CONTAINER, _MIN_SCORE and _LOG_LEVEL variables override the file.
func (c *Config) applyEnvironment() error {
	if v := os.Getenv(EnvPagesDir); v != "" {
		c.PagesDir = v
	}
	if v := os.Getenv(EnvCorpus); v != "" {
		c.Corpus = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvSource); v != "" {
		c.Source = v
	}
	if v := os.Getenv(EnvContainer); v != "" {
		c.Blob.Container = v
	}
	if v := os.Getenv(EnvMinScore); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvMinScore, v, err)
		}
		c.MinScore = f
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Corpus == "" {
		return fmt.Errorf("%w: corpus path is empty", ErrInvalid)
	}
	switch c.Source {
	case "", SourceLocal:
	case SourceBlob:
		if c.Blob.Container == "" {
			return fmt.Errorf("%w: blob source needs a container", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown corpus source %q", ErrInvalid, c.Source)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1 (%d)", ErrInvalid, c.Workers)
	}
	if !(c.Index.ErrorRate > 0 && c.Index.ErrorRate < 1) {
		return fmt.Errorf("%w: index error rate must be in (0, 1) (%v)", ErrInvalid, c.Index.ErrorRate)
	}
	if c.Index.NgramMin < 1 || c.Index.NgramMax < c.Index.NgramMin {
		return fmt.Errorf("%w: index n-gram window [%d, %d]", ErrInvalid, c.Index.NgramMin, c.Index.NgramMax)
	}
	if c.Index.PrefixMin < 1 {
		return fmt.Errorf("%w: index prefix minimum must be >= 1 (%d)", ErrInvalid, c.Index.PrefixMin)
	}
	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Extractor is the term extractor both sides must share.
func (c *Config) Extractor() terms.Extractor {
	return terms.NewExtractor(terms.WithStemming(c.Index.Stemming))
}

func (c *Config) IndexOptions() []index.Option {
	return []index.Option{
		index.WithErrorRate(c.Index.ErrorRate),
		index.WithNgramWindow(c.Index.NgramMin, c.Index.NgramMax),
		index.WithPrefixMin(c.Index.PrefixMin),
		index.WithWorkers(c.Workers),
		index.WithExtractor(c.Extractor()),
	}
}

func (c *Config) SearchOptions() []search.Option {
	return []search.Option{
		search.WithConfig(c.Search),
		search.WithWorkers(c.Workers),
		search.WithExtractor(c.Extractor()),
	}
}
