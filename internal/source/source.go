// Package source loads a corpus: an ordered list of raw document texts. The
// position of a text in the returned slice becomes its DocID, so every
// implementation returns documents in a stable order.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/resilience"
)

type Source interface {
	Load(ctx context.Context) ([]string, error)
}

// Inline serves a fixed slice of documents.
type Inline []string

func (s Inline) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]string(nil), s...), nil
}

type retrying struct {
	src  Source
	name string
	cfg  resilience.RetryConfig
}

// WithRetry retries failed loads with exponential backoff. Invalid-input
// errors are returned without retrying.
func WithRetry(src Source, name string, attempts int) Source {
	return &retrying{
		src:  src,
		name: name,
		cfg: resilience.RetryConfig{
			MaxAttempts: attempts,
			Permanent: func(err error) bool {
				return errors.Is(err, apperrors.ErrInvalidInput)
			},
		},
	}
}

func (r *retrying) Load(ctx context.Context) ([]string, error) {
	var docs []string
	err := resilience.Retry(ctx, "load "+r.name, r.cfg, func(ctx context.Context) error {
		var err error
		docs, err = r.src.Load(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrSourceUnavailable, err)
	}
	return docs, nil
}

type timed struct {
	src     Source
	name    string
	timeout time.Duration
}

// WithTimeout bounds each load of src by timeout. A non-positive timeout
// leaves src unbounded.
func WithTimeout(src Source, name string, timeout time.Duration) Source {
	return &timed{src: src, name: name, timeout: timeout}
}

func (t *timed) Load(ctx context.Context) ([]string, error) {
	var docs []string
	err := resilience.WithTimeout(ctx, t.timeout, "load "+t.name, func(ctx context.Context) error {
		var err error
		docs, err = t.src.Load(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", t.name, err)
	}
	return docs, nil
}
