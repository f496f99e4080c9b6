package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forestrie/go-bloomsearch/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{config.EnvConfig, config.EnvPagesDir, config.EnvCorpus, config.EnvMinScore, config.EnvLogLevel, config.EnvSource, config.EnvContainer} {
		t.Setenv(k, "")
	}
}

func writePages(t *testing.T) string {
	dir := t.TempDir()
	files := map[string]string{
		"bloom-filters.md":    "---\ntitle: Bloom Filters\n---\nA bloom filter tests set membership.\n",
		"guides/cooking.md":   "Slow roast the tomatoes with garlic.\n",
		"guides/.fm.yaml":     "title: ignored\n",
		"hash/double-hash.md": "Double hashing derives probe positions.\n",
	}
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	err := run(context.Background(), append(args, "--log-level", "NOOP"), &out)
	return out.String(), err
}

func TestBuildSearchInspect(t *testing.T) {
	clearEnv(t)
	pages := writePages(t)
	corpusPath := filepath.Join(t.TempDir(), "search.corpus.zst")

	out, err := runCLI(t, "build", "--pages", pages, "--corpus", corpusPath)
	require.NoError(t, err)
	assert.Contains(t, out, "3 documents")

	out, err = runCLI(t, "search", "--corpus", corpusPath, "bloom", "filter")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)

	var top struct {
		Path  string  `json:"path"`
		Title string  `json:"title"`
		Score float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &top))
	assert.Equal(t, "bloom-filters", top.Path)
	assert.Equal(t, "Bloom Filters", top.Title)
	assert.Greater(t, top.Score, 0.0)

	out, err = runCLI(t, "inspect", "--corpus", corpusPath)
	require.NoError(t, err)
	assert.Contains(t, out, "blake3 ")
	assert.Contains(t, out, "guides/cooking")
	assert.Contains(t, out, "Double Hash")
	assert.NotContains(t, out, ".fm")
}

func TestBuildUsesPagesDirEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvPagesDir, writePages(t))
	corpusPath := filepath.Join(t.TempDir(), "c.bin")

	_, err := runCLI(t, "build", "--corpus", corpusPath)
	require.NoError(t, err)
	_, err = os.Stat(corpusPath + ".manifest")
	require.NoError(t, err)
}

func TestCommandErrors(t *testing.T) {
	clearEnv(t)

	_, err := runCLI(t, "frobnicate")
	require.Error(t, err)

	_, err = runCLI(t, "search", "--corpus", filepath.Join(t.TempDir(), "c"))
	require.ErrorIs(t, err, errNoQuery)

	_, err = runCLI(t, "build", "--corpus", filepath.Join(t.TempDir(), "c"))
	require.Error(t, err)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), nil, &out))
	assert.Contains(t, out.String(), "inspect")
}
