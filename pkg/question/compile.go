package question

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"github.com/leapstack-labs/jlabel/pkg/label"
)

// PhoneRange is the set of phoneme identities a phone question accepts.
type PhoneRange []string

func (r PhoneRange) String() string {
	return "{" + strings.Join(r, ",") + "}"
}

// Interval is the half-open integer range [Start, End).
type Interval struct {
	Start int
	End   int
}

// Contains reports whether v lies in the interval.
func (r Interval) Contains(v int) bool {
	return r.Start <= v && v < r.End
}

func (r Interval) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// CategoryRange is the set of category codes a category question accepts.
type CategoryRange []uint8

func (r CategoryRange) String() string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = strconv.Itoa(int(v))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func emptyTexts(texts []string) error {
	if len(texts) == 0 {
		return ErrEmpty
	}
	return nil
}

// Phone

func (PhonePosition) compile(texts []string) (PhoneRange, error) {
	if err := emptyTexts(texts); err != nil {
		return nil, err
	}
	return PhoneRange(slices.Clone(texts)), nil
}

func (p PhonePosition) get(l *label.Label) (string, bool) {
	var v *string
	switch p {
	case P1:
		v = l.Phoneme.P2
	case P2:
		v = l.Phoneme.P1
	case P3:
		v = l.Phoneme.C
	case P4:
		v = l.Phoneme.N1
	case P5:
		v = l.Phoneme.N2
	}
	if v == nil {
		return "", false
	}
	return *v, true
}

func (PhonePosition) test(r PhoneRange, v string) bool {
	return slices.Contains(r, v)
}

// Signed range

func (SignedRangePosition) compile(texts []string) (Interval, error) {
	return compileIntervals(texts, signedInterval)
}

func (SignedRangePosition) get(l *label.Label) (int8, bool) {
	if l.Mora == nil {
		return 0, false
	}
	return l.Mora.RelativeAccentPosition, true
}

func (SignedRangePosition) test(r Interval, v int8) bool {
	return r.Contains(int(v))
}

func signedInterval(s string) (Interval, error) {
	switch s {
	case "-??":
		return Interval{-99, -9}, nil
	case "-?":
		return Interval{-9, 0}, nil
	case "?":
		return Interval{0, 10}, nil
	}
	if d, ok := strings.CutSuffix(s, "?"); ok {
		n, err := number[int8](d)
		if err == nil && n < 0 {
			err = errNegativeDecade
		}
		if err != nil {
			return Interval{}, &NumberError{Text: s, Wildcard: true, Err: err}
		}
		return decade(int(n)), nil
	}
	n, err := number[int8](s)
	if err != nil {
		return Interval{}, &NumberError{Text: s, Err: err}
	}
	return Interval{int(n), int(n) + 1}, nil
}

// Unsigned range

func (UnsignedRangePosition) compile(texts []string) (Interval, error) {
	return compileIntervals(texts, unsignedInterval)
}

func (p UnsignedRangePosition) get(l *label.Label) (uint8, bool) {
	switch p {
	case A2, A3:
		if l.Mora == nil {
			return 0, false
		}
		if p == A2 {
			return l.Mora.PositionForward, true
		}
		return l.Mora.PositionBackward, true
	case E1, E2:
		return accentPhrasePrevNext(l.AccentPhrasePrev, p == E1)
	case F1, F2, F5, F6, F7, F8:
		f := l.AccentPhraseCurr
		if f == nil {
			return 0, false
		}
		switch p {
		case F1:
			return f.MoraCount, true
		case F2:
			return f.AccentPosition, true
		case F5:
			return f.AccentPhrasePositionForward, true
		case F6:
			return f.AccentPhrasePositionBackward, true
		case F7:
			return f.MoraPositionForward, true
		default:
			return f.MoraPositionBackward, true
		}
	case G1, G2:
		return accentPhrasePrevNext(l.AccentPhraseNext, p == G1)
	case H1, H2:
		return breathGroupPrevNext(l.BreathGroupPrev, p == H1)
	case I1, I2, I3, I4, I5, I6, I7, I8:
		i := l.BreathGroupCurr
		if i == nil {
			return 0, false
		}
		switch p {
		case I1:
			return i.AccentPhraseCount, true
		case I2:
			return i.MoraCount, true
		case I3:
			return i.BreathGroupPositionForward, true
		case I4:
			return i.BreathGroupPositionBackward, true
		case I5:
			return i.AccentPhrasePositionForward, true
		case I6:
			return i.AccentPhrasePositionBackward, true
		case I7:
			return i.MoraPositionForward, true
		default:
			return i.MoraPositionBackward, true
		}
	case J1, J2:
		return breathGroupPrevNext(l.BreathGroupNext, p == J1)
	case K1:
		return l.Utterance.BreathGroupCount, true
	case K2:
		return l.Utterance.AccentPhraseCount, true
	case K3:
		return l.Utterance.MoraCount, true
	}
	return 0, false
}

func accentPhrasePrevNext(a *label.AccentPhrasePrevNext, first bool) (uint8, bool) {
	if a == nil {
		return 0, false
	}
	if first {
		return a.MoraCount, true
	}
	return a.AccentPosition, true
}

func breathGroupPrevNext(g *label.BreathGroupPrevNext, first bool) (uint8, bool) {
	if g == nil {
		return 0, false
	}
	if first {
		return g.AccentPhraseCount, true
	}
	return g.MoraCount, true
}

func (UnsignedRangePosition) test(r Interval, v uint8) bool {
	return r.Contains(int(v))
}

func unsignedInterval(s string) (Interval, error) {
	// Fields counted from one never hold 0, so "?" starts at 1.
	if s == "?" {
		return Interval{1, 10}, nil
	}
	if d, ok := strings.CutSuffix(s, "?"); ok {
		n, err := number[uint8](d)
		if err != nil {
			return Interval{}, &NumberError{Text: s, Wildcard: true, Err: err}
		}
		return decade(int(n)), nil
	}
	n, err := number[uint8](s)
	if err != nil {
		return Interval{}, &NumberError{Text: s, Err: err}
	}
	return Interval{int(n), int(n) + 1}, nil
}

// Boolean

func (p BooleanPosition) compile(texts []string) (bool, error) {
	if err := emptyTexts(texts); err != nil {
		return false, err
	}
	if len(texts) > 1 {
		return false, &BooleanError{Text: strings.Join(texts, ",")}
	}
	var v bool
	switch texts[0] {
	case "0":
		v = false
	case "1":
		v = true
	default:
		return false, &BooleanError{Text: texts[0]}
	}
	// E5 and G5 store "is pause insertion" inverted.
	if p == E5 || p == G5 {
		v = !v
	}
	return v, nil
}

func (p BooleanPosition) get(l *label.Label) (bool, bool) {
	switch p {
	case E3:
		if l.AccentPhrasePrev != nil {
			return l.AccentPhrasePrev.IsInterrogative, true
		}
	case E5:
		if l.AccentPhrasePrev != nil && l.AccentPhrasePrev.IsPauseInsertion != nil {
			return *l.AccentPhrasePrev.IsPauseInsertion, true
		}
	case F3:
		if l.AccentPhraseCurr != nil {
			return l.AccentPhraseCurr.IsInterrogative, true
		}
	case G3:
		if l.AccentPhraseNext != nil {
			return l.AccentPhraseNext.IsInterrogative, true
		}
	case G5:
		if l.AccentPhraseNext != nil && l.AccentPhraseNext.IsPauseInsertion != nil {
			return *l.AccentPhraseNext.IsPauseInsertion, true
		}
	}
	return false, false
}

func (BooleanPosition) test(r bool, v bool) bool {
	return r == v
}

// Category

func (CategoryPosition) compile(texts []string) (CategoryRange, error) {
	if err := emptyTexts(texts); err != nil {
		return nil, err
	}
	r := make(CategoryRange, 0, len(texts))
	for _, s := range texts {
		n, err := number[uint8](s)
		if err != nil {
			return nil, &NumberError{Text: s, Err: err}
		}
		r = append(r, n)
	}
	return r, nil
}

func (p CategoryPosition) get(l *label.Label) (uint8, bool) {
	var w *label.Word
	switch p {
	case B1, B2, B3:
		w = l.WordPrev
	case C1, C2, C3:
		w = l.WordCurr
	case D1, D2, D3:
		w = l.WordNext
	}
	if w == nil {
		return 0, false
	}
	var v *uint8
	switch p {
	case B1, C1, D1:
		v = w.Pos
	case B2, C2, D2:
		v = w.CType
	default:
		v = w.CForm
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

func (CategoryPosition) test(r CategoryRange, v uint8) bool {
	return slices.Contains(r, v)
}

// Undefined

func (UndefinedPosition) compile(texts []string) (struct{}, error) {
	if err := emptyTexts(texts); err != nil {
		return struct{}{}, err
	}
	return struct{}{}, &NumberError{Text: texts[0], Err: errAlwaysUndefined}
}

func (UndefinedPosition) get(*label.Label) (struct{}, bool) {
	return struct{}{}, false
}

func (UndefinedPosition) test(struct{}, struct{}) bool {
	return true
}

// Shared helpers

func number[T int8 | uint8](s string) (T, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return safecast.Conv[T](n)
}

// decade is the interval n? covers: [10n, 10n+10).
func decade(n int) Interval {
	return Interval{n * 10, n*10 + 10}
}

func compileIntervals(texts []string, parse func(string) (Interval, error)) (Interval, error) {
	intervals := make([]Interval, 0, len(texts))
	for _, s := range texts {
		r, err := parse(s)
		if err != nil {
			return Interval{}, err
		}
		intervals = append(intervals, r)
	}
	return mergeIntervals(intervals)
}

// mergeIntervals joins intervals into one, failing when they leave a gap.
func mergeIntervals(intervals []Interval) (Interval, error) {
	if len(intervals) == 0 {
		return Interval{}, ErrEmpty
	}
	sorted := slices.Clone(intervals)
	slices.SortFunc(sorted, func(a, b Interval) int {
		return cmp.Compare(a.Start, b.Start)
	})

	merged := sorted[0]
	for _, r := range sorted[1:] {
		if r.Start > merged.End {
			return Interval{}, fmt.Errorf("%w: %v and %v", ErrIncontinuousRange, merged, r)
		}
		merged.End = max(merged.End, r.End)
	}
	return merged, nil
}
