package bank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/jlabel/pkg/label"
	"github.com/leapstack-labs/jlabel/pkg/question"
	"github.com/leapstack-labs/jlabel/pkg/question/fallback"
)

// Fallback selects what happens to a set the question engine rejects.
type Fallback string

const (
	// FallbackNone leaves rejected sets without a matcher.
	FallbackNone Fallback = "none"
	// FallbackNoop turns rejected sets into questions that match nothing.
	FallbackNoop Fallback = "noop"
	// FallbackRegex matches rejected sets as plain wildcards.
	FallbackRegex Fallback = "regex"
)

// ParseFallback validates a fallback name.
func ParseFallback(s string) (Fallback, error) {
	switch f := Fallback(s); f {
	case FallbackNone, FallbackNoop, FallbackRegex:
		return f, nil
	case "":
		return FallbackNone, nil
	}
	return "", fmt.Errorf("unknown fallback %q, must be one of: none, noop, regex", s)
}

// Config controls how a bank is compiled.
type Config struct {
	Fallback Fallback
	// TolerateQuirks accepts known malformed delimiters and logs a warning
	// for each affected pattern.
	TolerateQuirks bool
	// Workers bounds concurrent compilation and matching. Zero means GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

// Entry is one compiled set.
type Entry struct {
	Set
	// Question is the structured question, nil when the engine rejected the set.
	Question question.AllQuestion
	// Matcher evaluates labels. It is nil only when the set was rejected and
	// no fallback applies.
	Matcher question.Matcher
	// Err is why the engine rejected the set.
	Err error
	// Code is question.ErrorCode(Err).
	Code string
	// Fallback is the fallback that produced Matcher, empty for structured questions.
	Fallback Fallback
	Quirks   []question.Quirk
}

// OK reports whether the set compiled into a structured question.
func (e *Entry) OK() bool { return e.Err == nil }

// Bank is a compiled set of questions. It is safe for concurrent use.
type Bank struct {
	Entries []Entry
	workers int
	logger  *slog.Logger
}

// Compile compiles every set. Rejected sets are reported on their entries,
// not as an error; the error is non-nil only when ctx is cancelled or a
// regex fallback cannot be built.
func Compile(ctx context.Context, sets []Set, cfg Config) (*Bank, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	b := &Bank{
		Entries: make([]Entry, len(sets)),
		workers: workers,
		logger:  logger,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, set := range sets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entry, err := compileSet(set, cfg, logger)
			if err != nil {
				return err
			}
			b.Entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("compiled question bank",
		"sets", len(b.Entries),
		"rejected", len(b.Rejected()),
		"workers", workers)
	return b, nil
}

func compileSet(set Set, cfg Config, logger *slog.Logger) (Entry, error) {
	entry := Entry{Set: set}

	var opts []question.Option
	if cfg.TolerateQuirks {
		opts = append(opts, question.WithQuirkHandler(func(q question.Quirk) {
			entry.Quirks = append(entry.Quirks, q)
			logger.Warn("tolerated malformed pattern",
				"question", set.Name,
				"pattern", q.Pattern,
				"position", q.Position.String(),
				"want", q.Want,
				"got", q.Got)
		}))
	}

	parse := question.NewParser(opts...)

	var (
		q   question.AllQuestion
		err error
	)
	switch cfg.Fallback {
	case FallbackNoop:
		nq, _ := fallback.Noop(parse)(set.Patterns)
		q, err = nq.Question, nq.Err
		entry.Matcher = nq
	case FallbackRegex:
		rq, rerr := fallback.Regex(parse)(set.Patterns)
		if rerr != nil {
			return Entry{}, fmt.Errorf("question %q: %w", set.Name, rerr)
		}
		q, err = rq.Question, rq.Err
		entry.Matcher = rq
	default:
		q, err = parse(set.Patterns)
		if err == nil {
			entry.Matcher = q
		}
	}

	if err == nil {
		entry.Question = q
		return entry, nil
	}

	entry.Err = err
	entry.Code = question.ErrorCode(err)
	if entry.Matcher != nil {
		entry.Fallback = cfg.Fallback
	}
	logger.Debug("question rejected", "question", set.Name, "code", entry.Code, "fallback", string(entry.Fallback), "error", err)
	return entry, nil
}

// Rejected returns the entries the engine could not compile.
func (b *Bank) Rejected() []Entry {
	var out []Entry
	for _, e := range b.Entries {
		if !e.OK() {
			out = append(out, e)
		}
	}
	return out
}

// Err joins the errors of rejected sets that have no matcher.
func (b *Bank) Err() error {
	var errs []error
	for _, e := range b.Entries {
		if e.Matcher == nil {
			errs = append(errs, fmt.Errorf("question %q: %w", e.Name, e.Err))
		}
	}
	return errors.Join(errs...)
}

// Match returns the names of the questions l satisfies, in bank order.
func (b *Bank) Match(l *label.Label) []string {
	var names []string
	for _, e := range b.Entries {
		if e.Matcher != nil && e.Matcher.Test(l) {
			names = append(names, e.Name)
		}
	}
	return names
}

// MatchAll evaluates every label. The result is indexed like labels.
func (b *Bank) MatchAll(ctx context.Context, labels []*label.Label) ([][]string, error) {
	out := make([][]string, len(labels))

	workers := b.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, l := range labels {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = b.Match(l)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if b.logger != nil {
		b.logger.Debug("matched labels", "labels", len(labels), "questions", len(b.Entries))
	}
	return out, nil
}
