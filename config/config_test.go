package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/forestrie/go-bloomsearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{EnvConfig, EnvPagesDir, EnvCorpus, EnvMinScore, EnvLogLevel, EnvSource, EnvContainer} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Len(t, c.IndexOptions(), 5)
	assert.Len(t, c.SearchOptions(), 3)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "bloomsearch.yaml", `
pagesDir: ./pages
corpus: out/search.corpus.zst
workers: 4
index:
  ngramMax: 4
  stemming: true
search:
  phraseBonus: 20
  prefixExponent: 2
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./pages", c.PagesDir)
	assert.Equal(t, "out/search.corpus.zst", c.Corpus)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, 4, c.Index.NgramMax)
	assert.Equal(t, 2, c.Index.NgramMin, "unset fields keep defaults")
	assert.True(t, c.Index.Stemming)
	assert.True(t, c.Extractor().Stem)
	assert.Equal(t, 20.0, c.Search.PhraseBonus)
	assert.Equal(t, 2.0, c.Search.PrefixExponent)
	assert.Equal(t, search.DefaultConfig().NgramWeight, c.Search.NgramWeight)
}

func TestLoadJSONC(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "bloomsearch.jsonc", `{
	// comments and trailing commas are fine
	"corpus": "c.bin",
	"minScore": 0.5,
	"search": {"ngramMin": 2, "ngramMax": 4,},
}`)
	t.Setenv(EnvConfig, path)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "c.bin", c.Corpus)
	assert.Equal(t, 0.5, c.MinScore)
	assert.Equal(t, 4, c.Search.NgramMax)
}

func TestEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "c.yaml", "pagesDir: from-file\nminScore: 1\n")
	t.Setenv(EnvPagesDir, "from-env")
	t.Setenv(EnvCorpus, "env.corpus")
	t.Setenv(EnvMinScore, "2.5")
	t.Setenv(EnvLogLevel, "DEBUG")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.PagesDir)
	assert.Equal(t, "env.corpus", c.Corpus)
	assert.Equal(t, 2.5, c.MinScore)
	assert.Equal(t, "DEBUG", c.LogLevel)

	t.Setenv(EnvMinScore, "lots")
	_, err = Load(path)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestBlobSource(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "c.yaml", "source: blob\nblob:\n  container: from-file\ncorpus: site/search.corpus\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SourceBlob, c.Source)
	assert.Equal(t, "from-file", c.Blob.Container)
	assert.Equal(t, "site/search.corpus", c.Corpus)

	t.Setenv(EnvContainer, "from-env")
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.Blob.Container)

	t.Setenv(EnvSource, SourceLocal)
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, c.Source)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "bad.yaml", "workers: [\n"))
	require.Error(t, err)

	tests := map[string]string{
		"zero workers":      "workers: 0\n",
		"error rate":        "index:\n  errorRate: 1\n",
		"ngram window":      "index:\n  ngramMin: 3\n  ngramMax: 2\n",
		"negative weight":   "search:\n  wordWeight: -1\n",
		"empty corpus path": "corpus: \"\"\n",
		"unknown source":    "source: ftp\n",
		"blob no container": "source: blob\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "c.yaml", content))
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestNegativeWeightIsSearchConfigError(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeFile(t, "c.yaml", "search:\n  phraseBonus: -3\n"))
	require.ErrorIs(t, err, search.ErrConfig)
}
