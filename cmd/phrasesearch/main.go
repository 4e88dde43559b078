package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adithya-Monish-Kumar-K/phrase-index/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/phrase-index/internal/indexer/normalizer"
	"github.com/Adithya-Monish-Kumar-K/phrase-index/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/phrase-index/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/phrase-index/internal/source"
	"github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/redis"
)

type options struct {
	configPath string
	sourceKind string
	dir        string
	stemmer    string
	dump       bool
	phrases    []string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to config file")
	flag.StringVar(&opts.sourceKind, "source", "", "document source: dir, postgres or kafka")
	flag.StringVar(&opts.dir, "dir", "", "corpus directory (implies -source dir)")
	flag.StringVar(&opts.stemmer, "stemmer", "", "stemmer: snowball, suffix or none")
	flag.BoolVar(&opts.dump, "dump", false, "print the index snapshot before query results")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] phrase...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	opts.phrases = flag.Args()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, opts)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "phrasesearch: %v\n", err)
	}
	os.Exit(apperrors.ExitCode(err))
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return apperrors.New(apperrors.ErrInvalidInput, apperrors.ExitUsage, err.Error())
	}
	if opts.sourceKind != "" {
		cfg.Source.Kind = opts.sourceKind
	}
	if opts.dir != "" {
		cfg.Source.Kind = "dir"
		cfg.Source.Dir = opts.dir
	}
	if opts.stemmer != "" {
		cfg.Normalizer.Stemmer = opts.stemmer
	}
	logger.Setup(cfg.Logging)
	log := logger.WithComponent("phrasesearch")

	if len(opts.phrases) == 0 && !opts.dump {
		return apperrors.New(apperrors.ErrInvalidInput, apperrors.ExitUsage, "no phrases given")
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(nil)
		srv, err := metrics.StartServer(cfg.Metrics.Port)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("metrics server shutdown failed", "error", err)
			}
		}()
	}

	n, err := normalizer.FromConfig(cfg.Normalizer)
	if err != nil {
		return err
	}
	src, err := source.FromConfig(cfg)
	if err != nil {
		return err
	}
	docs, err := src.Load(ctx)
	if err != nil {
		return err
	}
	log.Info("corpus loaded", "source", cfg.Source.Kind, "documents", len(docs))

	start := time.Now()
	idx := index.Build(n, docs)
	elapsed := time.Since(start)
	log.Info("index built",
		"documents", idx.DocCount(),
		"terms", idx.TermCount(),
		"normalizer", n.ID(),
		"fingerprint", idx.Fingerprint(),
		"duration", elapsed,
	)
	if m != nil {
		m.SourceDocumentsRead.WithLabelValues(cfg.Source.Kind).Add(float64(len(docs)))
		m.DocsIndexedTotal.Add(float64(idx.DocCount()))
		m.IndexTerms.Set(float64(idx.TermCount()))
		m.IndexBuildDuration.Observe(elapsed.Seconds())
	}

	execOpts := []executor.Option{executor.WithMetrics(m)}
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("result cache disabled", "error", err)
		} else {
			defer client.Close()
			var cacheOpts []cache.Option
			if m != nil {
				cacheOpts = append(cacheOpts, cache.OnError(m.CacheErrorsTotal.Inc))
			}
			execOpts = append(execOpts, executor.WithCache(cache.New(client, cfg.Redis.CacheTTL, cacheOpts...)))
		}
	}
	exec := executor.New(idx, execOpts...)

	enc := json.NewEncoder(os.Stdout)
	if opts.dump {
		if err := enc.Encode(idx.Snapshot()); err != nil {
			return fmt.Errorf("writing index snapshot: %w", err)
		}
	}
	for _, p := range opts.phrases {
		result, err := exec.Execute(ctx, p)
		if err != nil {
			return err
		}
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("writing result for %q: %w", p, err)
		}
	}
	return nil
}
