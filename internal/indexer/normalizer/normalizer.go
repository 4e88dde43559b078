// Package normalizer turns raw document text into the ordered sequence of
// terms that the index stores. It lower-cases input, splits on every rune
// that is not a letter or digit, drops stop-words and stems what remains.
//
// Punctuation is a separator, not something to glue across: "don't" yields
// "don" and "t", and "state-of-the-art" yields four raw tokens. Positions
// handed to the index count only the terms that survive filtering, so a
// dropped stop-word leaves no gap.
package normalizer

import (
	"strings"
	"unicode"
)

// Normalizer holds a fixed stop-word set and stemmer. It is immutable after
// New and safe for concurrent use.
type Normalizer struct {
	stopwords StopwordSet
	stemmer   Stemmer
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithStopwords replaces the stop-word set.
func WithStopwords(set StopwordSet) Option {
	return func(n *Normalizer) {
		n.stopwords = set
	}
}

// WithoutStopwords disables stop-word filtering.
func WithoutStopwords() Option {
	return func(n *Normalizer) {
		n.stopwords = nil
	}
}

// WithStemmer replaces the stemmer.
func WithStemmer(s Stemmer) Option {
	return func(n *Normalizer) {
		n.stemmer = s
	}
}

// WithoutStemming disables stemming.
func WithoutStemming() Option {
	return func(n *Normalizer) {
		n.stemmer = nil
	}
}

// New returns a Normalizer using the English stop-word list and the Snowball
// English stemmer unless options say otherwise.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		stopwords: EnglishStopwords(),
		stemmer:   SnowballStemmer{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize returns the terms of text in their original left-to-right order.
func (n *Normalizer) Normalize(text string) []string {
	text = strings.ToLower(text)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := make([]string, 0, len(words))
	for _, word := range words {
		if n.stopwords.Contains(word) {
			continue
		}
		if n.stemmer != nil {
			// a stemmer may shrink a word but never delete it
			if stemmed := n.stemmer.Stem(word); stemmed != "" {
				word = stemmed
			}
		}
		terms = append(terms, word)
	}
	return terms
}

// ID identifies the normalization policy. Two normalizers with the same ID
// produce the same terms for every input.
func (n *Normalizer) ID() string {
	stemmer := "none"
	if n.stemmer != nil {
		stemmer = n.stemmer.Name()
	}
	return "stopwords=" + n.stopwords.digest() + ";stemmer=" + stemmer
}
