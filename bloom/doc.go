package bloom

/*

# Bloom filters for per document search indexes

This package provides the membership structure embedded in every corpus
chunk. One filter is built per document; it records the document's words,
their prefixes, n-grams and phonetic fingerprints.

It keeps the same style as the rest of the repository:

- small, composable functions
- explicit byte layouts
- index arithmetic on byte slices

## What Bloom filters are (and are not)

Bloom filters provide a *probabilistic prefilter*:

- If the filter says "definitely not present", then the term is not present.
- If the filter says "maybe present", then the term may or may not be present
  (false positives are possible).

The search engine only ever adds non-negative score contributions for
positive answers, so a false positive can inflate a rank slightly but never
hide a real match.

## Binary layout

	+----------------------+  12B header, little endian
	| m (u32) k (u32)      |
	| n (u32)              |
	+----------------------+  ceil(m/8) bytes
	| bitset               |
	+----------------------+

The textual form carries the same three integers plus the bitset as standard
base64 (`{"m":..,"k":..,"n":..,"bitsBase64":".."}`).

## Indexing and bit numbering

Probe positions are derived by double hashing: two 32 bit seeds h1 and h2 are
computed over the value's code points and probe i visits bit
(h1 + i*h2) mod m. h1 is FNV-1a, h2 is an xorshift mix forced odd. Bit j is
stored LSB0: byte j>>3, mask 1<<(j&7).

All hash arithmetic is wrapped uint32. The exact overflow behaviour is part of
the format: filters written by another implementation of the same scheme must
answer identically here.

*/
