package bloomsearch

import (
	"fmt"
	"testing"

	"github.com/forestrie/go-bloomsearch/corpus"
	"github.com/forestrie/go-bloomsearch/index"
	"github.com/forestrie/go-bloomsearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pages = []Document{
	{Path: "garden/tomatoes", Title: "Growing Tomatoes", Body: "Tomatoes need sun, water and a warm summer garden."},
	{Path: "cs/bloom", Title: "Bloom Filters", Body: "A bloom filter is a probabilistic data structure for set membership."},
	{Path: "cs/hashing", Title: "Double Hashing", Body: "Double hashing derives many probe positions from two hash values."},
	{Path: "kitchen/sauce", Title: "Tomato Sauce", Body: "Simmer crushed tomatoes with garlic and basil."},
}

func resultPaths(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Path
	}
	return out
}

func TestBuildAndSearch(t *testing.T) {
	data, err := Build(pages)
	require.NoError(t, err)

	entries, err := corpus.Decode(data)
	require.NoError(t, err)
	require.Len(t, entries, len(pages))
	for i, e := range entries {
		assert.Equal(t, pages[i].Path, e.Path)
		assert.Equal(t, pages[i].Title, e.Title)
	}

	tests := []struct {
		query string
		top   string
	}{
		{"bloom filter", "cs/bloom"},
		{"probabilistic membership", "cs/bloom"},
		{"double hashing probe", "cs/hashing"},
		{"summer garden", "garden/tomatoes"},
		{"garlic basil", "kitchen/sauce"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := Search(data, tt.query, 0)
			require.NoError(t, err)
			require.NotEmpty(t, results)
			assert.Equal(t, tt.top, results[0].Path)
			for i := 1; i < len(results); i++ {
				assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
			}
		})
	}
}

func TestSearchSharedWord(t *testing.T) {
	data, err := Build(pages)
	require.NoError(t, err)

	results, err := Search(data, "tomatoes", 0)
	require.NoError(t, err)
	got := resultPaths(results)
	assert.Contains(t, got, "garden/tomatoes")
	assert.Contains(t, got, "kitchen/sauce")
}

func TestSearchEmptyQuery(t *testing.T) {
	data, err := Build(pages)
	require.NoError(t, err)

	for _, q := range []string{"", "the", "  ,. "} {
		results, err := Search(data, q, 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
}

func TestSearchMisspelling(t *testing.T) {
	data, err := Build(pages)
	require.NoError(t, err)

	// prefix "tomat" and the phonetic hash still find the tomato pages
	results, err := Search(data, "tomatos", 0)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Contains(t, []string{"garden/tomatoes", "kitchen/sauce"}, results[0].Path)
}

func TestSearchFormatErrors(t *testing.T) {
	data, err := Build(pages)
	require.NoError(t, err)

	_, err = Search(data[:len(data)-4], "bloom", 0)
	require.Error(t, err)
	assert.True(t, IsFormatError(err))

	bad, err := corpus.Encode([]corpus.Entry{{Title: "x", Path: "x", Index: []byte{0, 0, 0}}})
	require.NoError(t, err)
	results, err := Search(bad, "bloom", 0)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.True(t, IsFormatError(err))
	assert.False(t, IsConfigError(err))
}

func TestBuildDeterministic(t *testing.T) {
	a, err := Build(pages)
	require.NoError(t, err)
	b, err := Build(pages, index.WithWorkers(4))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestConfigErrors(t *testing.T) {
	_, err := Build(pages, index.WithErrorRate(0))
	assert.True(t, IsConfigError(err))

	data, err := Build(pages)
	require.NoError(t, err)
	cfg := search.DefaultConfig()
	cfg.NgramWeight = -1
	_, err = Search(data, "bloom", 0, search.WithConfig(cfg))
	assert.True(t, IsConfigError(err))
	assert.False(t, IsFormatError(err))
}

func TestSearchLargeCorpusParallel(t *testing.T) {
	var docs []Document
	for i := 0; i < 200; i++ {
		docs = append(docs, Document{
			Path:  fmt.Sprintf("doc/%03d", i),
			Title: fmt.Sprintf("Document %d", i),
			Body:  fmt.Sprintf("entry %d mentions keyword%d and common text", i, i%10),
		})
	}
	data, err := Build(docs, index.WithWorkers(8))
	require.NoError(t, err)

	seq, err := Search(data, "keyword3 common", 0)
	require.NoError(t, err)
	par, err := Search(data, "keyword3 common", 0, search.WithWorkers(8))
	require.NoError(t, err)
	require.Equal(t, seq, par)
	require.NotEmpty(t, seq)
	assert.Equal(t, "doc/003", seq[0].Path)
}
