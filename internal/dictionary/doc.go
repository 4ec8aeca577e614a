// Package dictionary provides lookup clients for the Merriam-Webster
// dictionary APIs. Each source returns a structured result per word and
// reports unavailability (missing API key, remote failure) distinctly
// from a word simply not having an entry.
package dictionary
