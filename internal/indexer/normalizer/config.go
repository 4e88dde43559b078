package normalizer

import (
	"github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/errors"
)

// FromConfig builds the Normalizer described by cfg. A stop-word file, when
// set, replaces the built-in English list.
func FromConfig(cfg config.NormalizerConfig) (*Normalizer, error) {
	stemmer, ok := StemmerByName(cfg.Stemmer)
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitUsage, "unknown stemmer %q", cfg.Stemmer)
	}
	opts := []Option{WithStemmer(stemmer)}
	switch {
	case !cfg.Stopwords:
		opts = append(opts, WithoutStopwords())
	case cfg.StopwordsFile != "":
		set, err := LoadStopwords(cfg.StopwordsFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithStopwords(set))
	}
	return New(opts...), nil
}
