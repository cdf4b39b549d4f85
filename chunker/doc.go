// Package chunker splits per-page document text into overlapping fixed-size
// word windows, the atomic units later embedded and retrieved.
//
// Splitting is a pure word-count sliding window over whitespace-tokenized
// text; it performs no natural-language boundary detection. The overlap must
// be strictly smaller than the window so the window always advances.
package chunker
