// Package resolver fills a word's definition, part of speech and
// pronunciation audio from an ordered list of dictionary sources,
// escalating to the next source only for fields the earlier sources
// left unfilled, and classifies the per-word outcome.
package resolver
