package label

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

const undefined = "xx"

// tokenizer walks a label line delimiter by delimiter.
type tokenizer struct {
	input string
	pos   int
	err   error
}

// Parse parses one full-context label line.
func Parse(input string) (*Label, error) {
	t := &tokenizer{input: input}
	l := t.label()
	if t.err != nil {
		return nil, t.err
	}
	return l, nil
}

// until returns the text up to the next occurrence of symbol and moves past it.
func (t *tokenizer) until(symbol string) string {
	if t.err != nil {
		return ""
	}
	i := strings.Index(t.input[t.pos:], symbol)
	if i < 0 {
		t.fail(ErrSymbolNotFound, "expected %q", symbol)
		return ""
	}
	s := t.input[t.pos : t.pos+i]
	t.pos += i + len(symbol)
	return s
}

// rest returns the remaining input.
func (t *tokenizer) rest() string {
	if t.err != nil {
		return ""
	}
	s := t.input[t.pos:]
	t.pos = len(t.input)
	return s
}

func (t *tokenizer) fail(err error, format string, args ...any) {
	if t.err != nil {
		return
	}
	t.err = &ParseError{Offset: t.pos, Message: fmt.Sprintf(format, args...), Err: err}
}

func (t *tokenizer) str(s string) *string {
	if s == undefined {
		return nil
	}
	return &s
}

func (t *tokenizer) u8(s string) *uint8 {
	if s == undefined || t.err != nil {
		return nil
	}
	return number[uint8](t, s)
}

func (t *tokenizer) i8(s string) *int8 {
	if s == undefined || t.err != nil {
		return nil
	}
	return number[int8](t, s)
}

func number[T int8 | uint8](t *tokenizer, s string) *T {
	n, err := strconv.Atoi(s)
	if err != nil {
		t.fail(ErrInvalidNumber, "%q: %v", s, err)
		return nil
	}
	v, err := safecast.Conv[T](n)
	if err != nil {
		t.fail(ErrInvalidNumber, "%q: %v", s, err)
		return nil
	}
	return &v
}

func (t *tokenizer) boolean(s string) *bool {
	var v bool
	switch s {
	case undefined:
		return nil
	case "0":
		v = false
	case "1":
		v = true
	default:
		t.fail(ErrInvalidBoolean, "%q", s)
		return nil
	}
	return &v
}

func (t *tokenizer) mustUndefined(s string) {
	if t.err == nil && s != undefined {
		t.fail(ErrNotUndefined, "got %q", s)
	}
}

// required is used by the K block, which has no xx form.
func (t *tokenizer) required(s string) uint8 {
	if t.err != nil {
		return 0
	}
	if v := number[uint8](t, s); v != nil {
		return *v
	}
	return 0
}

func (t *tokenizer) label() *Label {
	l := &Label{}
	l.Phoneme = t.phoneme()
	l.Mora = t.mora()
	l.WordPrev = t.word("-", "_", "/C:")
	l.WordCurr = t.word("_", "+", "/D:")
	l.WordNext = t.word("+", "_", "/E:")
	l.AccentPhrasePrev = t.accentPhrasePrevNext("!", "-", "/F:")
	l.AccentPhraseCurr = t.accentPhraseCurr()
	l.AccentPhraseNext = t.accentPhrasePrevNext("%", "_", "/H:")
	l.BreathGroupPrev = t.breathGroupPrevNext("/I:")
	l.BreathGroupCurr = t.breathGroupCurr()
	l.BreathGroupNext = t.breathGroupPrevNext("/K:")
	l.Utterance = t.utterance()
	return l
}

// p1^p2-p3+p4=p5
func (t *tokenizer) phoneme() Phoneme {
	return Phoneme{
		P2: t.str(t.until("^")),
		P1: t.str(t.until("-")),
		C:  t.str(t.until("+")),
		N1: t.str(t.until("=")),
		N2: t.str(t.until("/A:")),
	}
}

// /A:a1+a2+a3
func (t *tokenizer) mora() *Mora {
	a1 := t.i8(t.until("+"))
	a2 := t.u8(t.until("+"))
	a3 := t.u8(t.until("/B:"))
	if a1 == nil || a2 == nil || a3 == nil {
		return nil
	}
	return &Mora{RelativeAccentPosition: *a1, PositionForward: *a2, PositionBackward: *a3}
}

// /B:b1-b2_b3, /C:c1_c2+c3, /D:d1+d2_d3
func (t *tokenizer) word(sep1, sep2, end string) *Word {
	w := Word{
		Pos:   t.u8(t.until(sep1)),
		CType: t.u8(t.until(sep2)),
		CForm: t.u8(t.until(end)),
	}
	if w.Pos == nil && w.CType == nil && w.CForm == nil {
		return nil
	}
	return &w
}

// /E:e1_e2!e3_e4-e5, /G:g1_g2%g3_g4_g5
func (t *tokenizer) accentPhrasePrevNext(flag, sep, end string) *AccentPhrasePrevNext {
	n1 := t.u8(t.until("_"))
	n2 := t.u8(t.until(flag))
	n3 := t.boolean(t.until("_"))
	t.mustUndefined(t.until(sep))
	n5 := t.boolean(t.until(end))
	if n1 == nil || n2 == nil || n3 == nil {
		return nil
	}
	a := &AccentPhrasePrevNext{MoraCount: *n1, AccentPosition: *n2, IsInterrogative: *n3}
	if n5 != nil {
		a.IsPauseInsertion = Ptr(!*n5)
	}
	return a
}

// /F:f1_f2#f3_f4@f5_f6|f7_f8
func (t *tokenizer) accentPhraseCurr() *AccentPhraseCurrent {
	f1 := t.u8(t.until("_"))
	f2 := t.u8(t.until("#"))
	f3 := t.boolean(t.until("_"))
	t.mustUndefined(t.until("@"))
	f5 := t.u8(t.until("_"))
	f6 := t.u8(t.until("|"))
	f7 := t.u8(t.until("_"))
	f8 := t.u8(t.until("/G:"))
	if f1 == nil || f2 == nil || f3 == nil || f5 == nil || f6 == nil || f7 == nil || f8 == nil {
		return nil
	}
	return &AccentPhraseCurrent{
		MoraCount:                    *f1,
		AccentPosition:               *f2,
		IsInterrogative:              *f3,
		AccentPhrasePositionForward:  *f5,
		AccentPhrasePositionBackward: *f6,
		MoraPositionForward:          *f7,
		MoraPositionBackward:         *f8,
	}
}

// /H:h1_h2, /J:j1_j2
func (t *tokenizer) breathGroupPrevNext(end string) *BreathGroupPrevNext {
	n1 := t.u8(t.until("_"))
	n2 := t.u8(t.until(end))
	if n1 == nil || n2 == nil {
		return nil
	}
	return &BreathGroupPrevNext{AccentPhraseCount: *n1, MoraCount: *n2}
}

// /I:i1-i2@i3+i4&i5-i6|i7+i8
func (t *tokenizer) breathGroupCurr() *BreathGroupCurrent {
	var v [8]*uint8
	for i, sep := range []string{"-", "@", "+", "&", "-", "|", "+", "/J:"} {
		v[i] = t.u8(t.until(sep))
	}
	for _, p := range v {
		if p == nil {
			return nil
		}
	}
	return &BreathGroupCurrent{
		AccentPhraseCount:            *v[0],
		MoraCount:                    *v[1],
		BreathGroupPositionForward:   *v[2],
		BreathGroupPositionBackward:  *v[3],
		AccentPhrasePositionForward:  *v[4],
		AccentPhrasePositionBackward: *v[5],
		MoraPositionForward:          *v[6],
		MoraPositionBackward:         *v[7],
	}
}

// /K:k1+k2-k3
func (t *tokenizer) utterance() Utterance {
	return Utterance{
		BreathGroupCount:  t.required(t.until("+")),
		AccentPhraseCount: t.required(t.until("-")),
		MoraCount:         t.required(t.rest()),
	}
}
