// Package fsstore persists chunk lists and vector indexes as files on
// disk, one pair of artifacts per document. Writes go through a
// temporary file followed by a rename so readers never observe a
// partially written artifact.
package fsstore
