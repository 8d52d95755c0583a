// Command gianna builds an in-memory full-text index from JSON-lines corpus
// files and answers free-text queries, either one-shot via -query or through
// an interactive prompt.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/derek9916/gianna/document"
	"github.com/derek9916/gianna/index"
	"github.com/derek9916/gianna/pkg/config"
	"github.com/derek9916/gianna/pkg/logger"
	"github.com/derek9916/gianna/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	fieldsFlag := flag.String("fields", "", "comma-separated field list overriding config")
	queryFlag := flag.String("query", "", "run a single query and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *fieldsFlag != "" {
		cfg.Index.Fields = strings.Split(*fieldsFlag, ",")
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting gianna", "fields", cfg.Index.Fields, "corpus_files", flag.NArg())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	if cfg.Metrics.Enabled {
		shutdown := metrics.StartServer(cfg.Metrics.Port)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown failed", "error", err)
			}
		}()
	}

	ix := index.New(cfg.Index.Fields)
	if err := loadCorpus(ctx, ix, flag.Args(), m); err != nil {
		slog.Error("corpus load failed", "error", err)
		os.Exit(1)
	}
	m.IndexedDocuments.Set(float64(ix.Len()))
	m.IndexedTokens.Set(float64(ix.Tokens()))
	slog.Info("corpus loaded", "docs", ix.Len(), "tokens", ix.Tokens())

	if *queryFlag != "" {
		runQuery(ix, m, *queryFlag, cfg.Search.Limit)
		return
	}
	repl(ctx, ix, m, cfg.Search.Limit)
}

// loadCorpus parses the given JSON-lines files concurrently and feeds the
// parsed documents to a single sequential indexing loop; the index itself is
// single-owner and is only ever touched from this goroutine.
func loadCorpus(ctx context.Context, ix *index.Index, paths []string, m *metrics.Metrics) error {
	docs := make(chan document.Document, 256)
	g, ctx := errgroup.WithContext(ctx)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			return parseFile(ctx, path, docs, m)
		})
	}
	go func() {
		_ = g.Wait()
		close(docs)
	}()

	for doc := range docs {
		if err := ix.Add(doc); err != nil {
			m.IngestErrorsTotal.WithLabelValues(ingestReason(err)).Inc()
			slog.Warn("skipping document", "error", err)
			continue
		}
		m.DocsIndexedTotal.Inc()
	}
	return g.Wait()
}

func parseFile(ctx context.Context, path string, docs chan<- document.Document, m *metrics.Metrics) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		doc, err := document.Parse([]byte(raw))
		if err != nil {
			m.IngestErrorsTotal.WithLabelValues("malformed").Inc()
			slog.Warn("skipping malformed line", "file", path, "line", line, "error", err)
			continue
		}
		select {
		case docs <- doc:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

func ingestReason(err error) string {
	switch {
	case errors.Is(err, index.ErrMissingIdentifier):
		return "missing_id"
	case errors.Is(err, index.ErrDuplicateIdentifier):
		return "duplicate_id"
	default:
		return "malformed"
	}
}

func runQuery(ix *index.Index, m *metrics.Metrics, query string, limit int) {
	start := time.Now()
	results := ix.Search(query)
	m.SearchLatency.Observe(time.Since(start).Seconds())
	m.SearchResultsCount.Observe(float64(len(results)))
	m.SearchQueriesTotal.WithLabelValues(resultType(query, results)).Inc()

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	for _, doc := range results {
		data, err := doc.Encode()
		if err != nil {
			slog.Warn("could not print result", "error", err)
			continue
		}
		fmt.Println(string(data))
	}
}

func resultType(query string, results []document.Document) string {
	if strings.TrimSpace(query) == "" {
		return "browse"
	}
	if len(results) == 0 {
		return "zero_result"
	}
	return "hit"
}

// repl reads queries from stdin until EOF or interrupt. Lines starting with
// a colon are commands: ":add {json}", ":update {json}", ":remove id",
// ":quit".
func repl(ctx context.Context, ix *index.Index, m *metrics.Metrics, limit int) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == ":quit":
			return
		case strings.HasPrefix(line, ":"):
			runCommand(ix, m, line)
		default:
			runQuery(ix, m, line, limit)
		}
		m.IndexedDocuments.Set(float64(ix.Len()))
		m.IndexedTokens.Set(float64(ix.Tokens()))
		fmt.Print("> ")
	}
}

func runCommand(ix *index.Index, m *metrics.Metrics, line string) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ":add", ":update":
		doc, err := document.Parse([]byte(arg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad document: %v\n", err)
			return
		}
		if cmd == ":add" {
			err = ix.Add(doc)
		} else {
			err = ix.Update(doc)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return
		}
		if cmd == ":add" {
			m.DocsIndexedTotal.Inc()
		} else {
			m.DocsUpdatedTotal.Inc()
		}
	case ":remove":
		if ix.Remove(arg) {
			m.DocsRemovedTotal.Inc()
			fmt.Println("removed")
		} else {
			fmt.Println("not found")
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %s\n", cmd)
	}
}
