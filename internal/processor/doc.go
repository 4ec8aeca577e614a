// Package processor contains the main word processing pipeline: resolve
// every word against the configured dictionary sources, fetch the
// pronunciation audio, build the Anki package and write the missing-words
// report.
package processor
