package normalizer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var englishStopwords = []string{
	"a", "an", "and", "are", "as", "at",
	"be", "by", "for", "from", "has", "he",
	"in", "is", "it", "its", "of", "on",
	"or", "that", "the", "to", "was", "were",
	"will", "with", "this", "but", "they",
	"have", "had", "what", "when", "where",
	"who", "which", "their", "if", "each",
	"do", "not", "no", "so", "can",
}

// StopwordSet is a set of lower-case words removed during normalization. A
// nil set removes nothing.
type StopwordSet map[string]struct{}

// NewStopwordSet builds a set from words, lower-casing each one. Blank
// entries are ignored.
func NewStopwordSet(words ...string) StopwordSet {
	set := make(StopwordSet, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

// EnglishStopwords returns a fresh copy of the built-in English list.
func EnglishStopwords() StopwordSet {
	return NewStopwordSet(englishStopwords...)
}

// Contains reports whether word is a stop-word. word must already be
// lower-case.
func (s StopwordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

func (s StopwordSet) digest() string {
	if len(s) == 0 {
		return "0"
	}
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	sum := sha256.Sum256([]byte(strings.Join(words, "\n")))
	return strconv.Itoa(len(words)) + ":" + hex.EncodeToString(sum[:4])
}

type stopwordFile struct {
	Stopwords []string `yaml:"stopwords"`
}

// LoadStopwords reads a YAML file of the form
//
//	stopwords: [a, an, the]
func LoadStopwords(path string) (StopwordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stopwords file %s: %w", path, err)
	}
	var f stopwordFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing stopwords file %s: %w", path, err)
	}
	return NewStopwordSet(f.Stopwords...), nil
}
