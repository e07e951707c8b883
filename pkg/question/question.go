package question

import (
	"fmt"

	"github.com/leapstack-labs/jlabel/pkg/label"
)

const undefinedText = "xx"

// Matcher tests a label against a compiled question.
type Matcher interface {
	Test(l *label.Label) bool
}

// ParseFunc compiles a set of patterns into a matcher.
type ParseFunc[M Matcher] func(patterns []string) (M, error)

// field is implemented by the six position enumerations.
type field[T, R any] interface {
	Position
	compile(texts []string) (R, error)
	get(l *label.Label) (T, bool)
	test(r R, v T) bool
}

// Question is a compiled question over the field Pos. A nil Range asks
// whether the field is absent (xx).
type Question[P field[T, R], T, R any] struct {
	Pos   P
	Range *R
}

type (
	PhoneQuestion         = Question[PhonePosition, string, PhoneRange]
	SignedRangeQuestion   = Question[SignedRangePosition, int8, Interval]
	UnsignedRangeQuestion = Question[UnsignedRangePosition, uint8, Interval]
	BooleanQuestion       = Question[BooleanPosition, bool, bool]
	CategoryQuestion      = Question[CategoryPosition, uint8, CategoryRange]
	UndefinedQuestion     = Question[UndefinedPosition, struct{}, struct{}]
)

// Kind returns the value kind of the question's field.
func (q Question[P, T, R]) Kind() Kind { return q.Pos.Kind() }

// Position returns the field the question asks about.
func (q Question[P, T, R]) Position() Position { return q.Pos }

// Test reports whether l satisfies the question.
func (q Question[P, T, R]) Test(l *label.Label) bool {
	if q.Pos.Kind() == KindUndefined {
		return true
	}
	v, ok := q.Pos.get(l)
	switch {
	case q.Range != nil && ok:
		return q.Pos.test(*q.Range, v)
	case q.Range == nil && !ok:
		return true
	default:
		return false
	}
}

func (q Question[P, T, R]) String() string {
	if q.Pos.Kind() == KindUndefined {
		return q.Pos.String() + " (any)"
	}
	if q.Range == nil {
		return q.Pos.String() + " = xx"
	}
	if b, ok := any(*q.Range).(bool); ok {
		return fmt.Sprintf("%s = %t", q.Pos, b)
	}
	return fmt.Sprintf("%s in %v", q.Pos, *q.Range)
}

func (Question[P, T, R]) question() {}

// AllQuestion is a compiled question of any kind. It is implemented only
// by the Question instantiations above.
type AllQuestion interface {
	Matcher
	Kind() Kind
	Position() Position
	String() string
	question()
}

// Parse compiles the patterns of one question. All patterns must resolve
// to the same position.
func Parse(patterns []string, opts ...Option) (AllQuestion, error) {
	return newConfig(opts).parse(patterns)
}

// NewParser returns Parse bound to opts, for use with the fallback wrappers.
func NewParser(opts ...Option) ParseFunc[AllQuestion] {
	c := newConfig(opts)
	return c.parse
}

func (c *config) parse(patterns []string) (AllQuestion, error) {
	if len(patterns) == 0 {
		return nil, ErrEmpty
	}

	var pos Position
	texts := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		p, text, err := c.resolveAs(pattern, pos)
		if err != nil {
			return nil, err
		}
		pos = p
		texts = append(texts, text)
	}

	switch p := pos.(type) {
	case PhonePosition:
		return asAll(newQuestion[PhonePosition, string, PhoneRange](p, texts))
	case SignedRangePosition:
		return asAll(newQuestion[SignedRangePosition, int8, Interval](p, texts))
	case UnsignedRangePosition:
		return asAll(newQuestion[UnsignedRangePosition, uint8, Interval](p, texts))
	case BooleanPosition:
		return asAll(newQuestion[BooleanPosition, bool, bool](p, texts))
	case CategoryPosition:
		return asAll(newQuestion[CategoryPosition, uint8, CategoryRange](p, texts))
	case UndefinedPosition:
		return asAll(newQuestion[UndefinedPosition, struct{}, struct{}](p, texts))
	}
	panic(fmt.Sprintf("question: unknown position type %T", pos))
}

func newQuestion[P field[T, R], T, R any](pos P, texts []string) (Question[P, T, R], error) {
	if len(texts) == 1 && texts[0] == undefinedText {
		return Question[P, T, R]{Pos: pos}, nil
	}
	r, err := pos.compile(texts)
	if err != nil {
		return Question[P, T, R]{}, err
	}
	return Question[P, T, R]{Pos: pos, Range: &r}, nil
}

func asAll[Q AllQuestion](q Q, err error) (AllQuestion, error) {
	if err != nil {
		return nil, err
	}
	return q, nil
}
