package fallback

import (
	"errors"
	"fmt"
	"regexp"
	"regexp/syntax"

	"github.com/leapstack-labs/jlabel/pkg/label"
)

// ErrFailRegex is returned when a pattern set cannot be compiled into a
// regular expression.
var ErrFailRegex = errors.New("failed to build regex")

// RegexQuestion matches wildcard patterns against the wire form of a label.
// '*' matches any run of non-newline characters and '?' exactly one; every
// other character matches itself. A label matches when its whole line
// matches any of the patterns.
type RegexQuestion struct {
	re *regexp.Regexp
}

// ParseRegex compiles patterns into a RegexQuestion.
func ParseRegex(patterns []string) (*RegexQuestion, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: no patterns", ErrFailRegex)
	}

	alternatives := make([]*syntax.Regexp, 0, len(patterns))
	for _, p := range patterns {
		alternatives = append(alternatives, wildcard(p))
	}
	body := alternatives[0]
	if len(alternatives) > 1 {
		body = &syntax.Regexp{Op: syntax.OpAlternate, Sub: alternatives}
	}
	tree := &syntax.Regexp{Op: syntax.OpConcat, Sub: []*syntax.Regexp{
		{Op: syntax.OpBeginText},
		body,
		{Op: syntax.OpEndText},
	}}

	re, err := regexp.Compile(tree.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailRegex, err)
	}
	return &RegexQuestion{re: re}, nil
}

// wildcard converts one pattern into a concatenation tree.
func wildcard(pattern string) *syntax.Regexp {
	var subs []*syntax.Regexp
	for _, r := range pattern {
		switch r {
		case '*':
			subs = append(subs, &syntax.Regexp{
				Op:  syntax.OpStar,
				Sub: []*syntax.Regexp{{Op: syntax.OpAnyCharNotNL}},
			})
		case '?':
			subs = append(subs, &syntax.Regexp{Op: syntax.OpAnyCharNotNL})
		default:
			subs = append(subs, &syntax.Regexp{Op: syntax.OpLiteral, Rune: []rune{r}})
		}
	}
	if len(subs) == 0 {
		return &syntax.Regexp{Op: syntax.OpEmptyMatch}
	}
	return &syntax.Regexp{Op: syntax.OpConcat, Sub: subs}
}

// Test implements question.Matcher.
func (q *RegexQuestion) Test(l *label.Label) bool {
	return q.re.MatchString(l.String())
}

// String returns the compiled expression.
func (q *RegexQuestion) String() string {
	return q.re.String()
}
