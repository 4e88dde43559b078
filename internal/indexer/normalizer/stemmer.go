package normalizer

import (
	"strings"

	"github.com/kljensen/snowball/english"
)

// Stemmer reduces a lower-case word to its stem. Implementations must be
// deterministic.
type Stemmer interface {
	Name() string
	Stem(word string) string
}

// SnowballStemmer applies the Snowball (Porter2) English algorithm.
type SnowballStemmer struct{}

func (SnowballStemmer) Name() string { return "snowball" }

func (SnowballStemmer) Stem(word string) string {
	return english.Stem(word, true)
}

// SuffixStemmer strips a fixed list of English suffixes. It is cruder than
// Snowball but has no dependencies on word shape beyond length.
type SuffixStemmer struct{}

var suffixRules = []struct {
	suffix      string
	replacement string
	minLen      int
}{
	{"ational", "ate", 2},
	{"tional", "tion", 2},
	{"encies", "ence", 2},
	{"ances", "ance", 2},
	{"ments", "ment", 2},
	{"izing", "ize", 2},
	{"ating", "ate", 2},
	{"iness", "y", 2},
	{"ously", "ous", 2},
	{"ively", "ive", 2},
	{"eness", "ene", 2},
	{"tion", "t", 3},
	{"sion", "s", 3},
	{"ying", "y", 2},
	{"ling", "l", 3},
	{"ies", "y", 2},
	{"ing", "", 3},
	{"ers", "er", 2},
	{"est", "", 3},
	{"ful", "", 3},
	{"ous", "", 3},
	{"ess", "", 3},
	{"ble", "", 3},
	{"ed", "", 3},
	{"er", "", 3},
	{"ly", "", 3},
	{"es", "", 3},
	{"ss", "ss", 2},
	{"s", "", 3},
}

func (SuffixStemmer) Name() string { return "suffix" }

// Stem applies the first rule whose suffix matches and whose result keeps at
// least minLen bytes.
func (SuffixStemmer) Stem(word string) string {
	for _, rule := range suffixRules {
		if strings.HasSuffix(word, rule.suffix) {
			stemmed := word[:len(word)-len(rule.suffix)] + rule.replacement
			if len(stemmed) >= rule.minLen {
				return stemmed
			}
		}
	}
	return word
}

// StemmerByName maps a configured stemmer name to an implementation. "none"
// and "" return a nil Stemmer and ok=true.
func StemmerByName(name string) (s Stemmer, ok bool) {
	switch strings.ToLower(name) {
	case "snowball", "porter2":
		return SnowballStemmer{}, true
	case "suffix":
		return SuffixStemmer{}, true
	case "none", "":
		return nil, true
	default:
		return nil, false
	}
}
