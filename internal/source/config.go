package source

import (
	"github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/errors"
)

// FromConfig builds the source named by cfg.Source.Kind, bounded by the
// configured load timeout and retried on failure. Directory loads are not
// retried.
func FromConfig(cfg *config.Config) (Source, error) {
	var src Source
	kind := cfg.Source.Kind
	switch kind {
	case "dir":
		return WithTimeout(Dir{Path: cfg.Source.Dir, Pattern: cfg.Source.Pattern}, kind, cfg.Source.LoadTimeout), nil
	case "postgres":
		src = NewPostgres(cfg.Postgres)
	case "kafka":
		src = NewKafka(cfg.Kafka)
	default:
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitUsage, "unknown source kind %q", kind)
	}
	return WithRetry(WithTimeout(src, kind, cfg.Source.LoadTimeout), kind, cfg.Source.RetryAttempts), nil
}
