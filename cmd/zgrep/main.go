// Command zgrep is a small demonstration CLI over package zg: it ingests
// a corpus file and runs a single query against it, printing matching
// zgram ids. It is not the frozen-index builder or the log/session
// layer spec.md places out of scope - just the one runnable entrypoint
// this repository has, in the spirit of the teacher's own small,
// single-purpose command-line tools.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kosak/z2kplus-sub000/index"
	"github.com/kosak/z2kplus-sub000/query"
	"github.com/kosak/z2kplus-sub000/zg"
)

func main() {
	var (
		corpusPath = flag.String("corpus", "", "path to a corpus file (one zgram per line: id\\tsender\\tinstance\\tbody)")
		queryText  = flag.String("query", "", "query text to run")
		reverse    = flag.Bool("reverse", false, "iterate in reverse-chronological order")
		margin     = flag.Int("margin", query.DefaultNearMargin, "default adjacency margin for ~tilded~ groups")
		emptyAll   = flag.Bool("empty-means-everything", true, "an empty query matches every zgram instead of none")
		verbose    = flag.Bool("v", false, "enable verbose (development-mode) logging")
	)
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync()

	if *corpusPath == "" {
		logger.Fatalw("missing required flag", "flag", "-corpus")
	}

	engine := zg.New(zg.WithNearMargin(*margin))

	n, err := ingestCorpus(engine, *corpusPath, logger)
	if err != nil {
		logger.Fatalw("ingesting corpus", "path", *corpusPath, "error", err)
	}
	logger.Infow("ingested corpus", "path", *corpusPath, "zgrams", n)

	ids, err := engine.Search(*queryText, zg.SearchOptions{
		Forward:              !*reverse,
		EmptyMeansEverything: *emptyAll,
	})
	if err != nil {
		logger.Fatalw("query failed", "query", *queryText, "error", err)
	}

	for _, id := range ids {
		fmt.Println(uint64(id))
	}
	logger.Infow("query complete", "query", *queryText, "matches", len(ids))
}

func newLogger(verbose bool) *zap.SugaredLogger {
	var l *zap.Logger
	var err error
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		l, err = cfg.Build()
	}
	if err != nil {
		// The logger itself failed to construct; fall back to a no-op
		// sugared logger rather than leaving logger nil everywhere.
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// ingestCorpus reads path, one zgram per line as
// "id\tsender\tinstance\tbody" (a demo-only convenience format - see the
// package doc comment - not spec.md's frozen blob or log-record wire
// format, both explicitly out of scope).
func ingestCorpus(e *zg.Engine, path string, logger *zap.SugaredLogger) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, "\t", 4)
		if len(fields) != 4 {
			logger.Warnw("skipping malformed corpus line", "line", lineNo)
			continue
		}
		id, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			logger.Warnw("skipping corpus line with bad id", "line", lineNo, "error", err)
			continue
		}
		z := index.Zephyrgram{
			Id:       index.ZgramId(id),
			Sender:   fields[1],
			Instance: fields[2],
			Body:     fields[3],
		}
		if err := e.Ingest(z); err != nil {
			return n, fmt.Errorf("line %d: %w", lineNo, err)
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, err
	}
	return n, nil
}
