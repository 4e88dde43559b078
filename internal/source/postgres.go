package source

import (
	"context"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/postgres"
	"github.com/lib/pq"
)

// Postgres loads one text column of a table, ordered by another column.
type Postgres struct {
	cfg config.PostgresConfig
}

func NewPostgres(cfg config.PostgresConfig) *Postgres {
	return &Postgres{cfg: cfg}
}

// Load opens a connection for the duration of the call.
func (p *Postgres) Load(ctx context.Context) ([]string, error) {
	client, err := postgres.New(ctx, p.cfg)
	if err != nil {
		return nil, err
	}
	defer client.Close()
	docs, err := client.QueryStrings(ctx, SelectQuery(p.cfg))
	if err != nil {
		return nil, fmt.Errorf("loading documents from %s: %w", p.cfg.Table, err)
	}
	return docs, nil
}

// SelectQuery returns the statement used to read the corpus. Identifiers are
// quoted, so configured names cannot inject SQL.
func SelectQuery(cfg config.PostgresConfig) string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s ASC",
		pq.QuoteIdentifier(cfg.BodyColumn),
		pq.QuoteIdentifier(cfg.Table),
		pq.QuoteIdentifier(cfg.OrderColumn),
	)
}
