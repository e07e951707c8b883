// Package fallback wraps a question parser so that pattern sets it cannot
// express degrade gracefully instead of failing the caller.
package fallback

import (
	"github.com/leapstack-labs/jlabel/pkg/label"
	"github.com/leapstack-labs/jlabel/pkg/question"
)

// NoopQuestion is the result of a parser wrapped by Noop. When the inner
// parser failed, Err holds its error and Test always reports false.
type NoopQuestion[M question.Matcher] struct {
	Question M
	Err      error
}

// Noop wraps parse so that it never fails. Pattern sets parse rejects
// become questions that match no label.
func Noop[M question.Matcher](parse question.ParseFunc[M]) question.ParseFunc[NoopQuestion[M]] {
	return func(patterns []string) (NoopQuestion[M], error) {
		q, err := parse(patterns)
		if err != nil {
			return NoopQuestion[M]{Err: err}, nil
		}
		return NoopQuestion[M]{Question: q}, nil
	}
}

// Test implements question.Matcher.
func (q NoopQuestion[M]) Test(l *label.Label) bool {
	if q.Err != nil {
		return false
	}
	return q.Question.Test(l)
}

// RegexFallback is the result of a parser wrapped by Regex. Exactly one of
// Question and Regex is in use: Regex is non-nil when the inner parser
// failed, and Err then holds that failure.
type RegexFallback[M question.Matcher] struct {
	Question M
	Regex    *RegexQuestion
	Err      error
}

// Regex wraps parse so that rejected pattern sets are matched as plain
// wildcards against the serialized label. It fails only when the patterns
// cannot be compiled into a regular expression either.
func Regex[M question.Matcher](parse question.ParseFunc[M]) question.ParseFunc[RegexFallback[M]] {
	return func(patterns []string) (RegexFallback[M], error) {
		q, err := parse(patterns)
		if err == nil {
			return RegexFallback[M]{Question: q}, nil
		}
		re, rerr := ParseRegex(patterns)
		if rerr != nil {
			return RegexFallback[M]{}, rerr
		}
		return RegexFallback[M]{Regex: re, Err: err}, nil
	}
}

// Test implements question.Matcher.
func (q RegexFallback[M]) Test(l *label.Label) bool {
	if q.Regex != nil {
		return q.Regex.Test(l)
	}
	return q.Question.Test(l)
}
