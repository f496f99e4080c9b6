// Package terms turns raw text into the strings stored in, and probed
// against, the per document Bloom filters.
//
// The same functions run at build time and at query time; any change here
// changes what an existing corpus can match.
package terms
