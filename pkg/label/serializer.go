package label

import (
	"strconv"
	"strings"
)

// String serializes the label into its canonical wire form.
func (l *Label) String() string {
	var b strings.Builder
	b.Grow(160)
	w := writer{&b}

	// p1^p2-p3+p4=p5
	w.str(l.Phoneme.P2)
	b.WriteByte('^')
	w.str(l.Phoneme.P1)
	b.WriteByte('-')
	w.str(l.Phoneme.C)
	b.WriteByte('+')
	w.str(l.Phoneme.N1)
	b.WriteByte('=')
	w.str(l.Phoneme.N2)

	b.WriteString("/A:")
	if m := l.Mora; m != nil {
		b.WriteString(strconv.Itoa(int(m.RelativeAccentPosition)))
		b.WriteByte('+')
		w.u8(m.PositionForward)
		b.WriteByte('+')
		w.u8(m.PositionBackward)
	} else {
		w.allXX("++")
	}

	b.WriteString("/B:")
	w.word(l.WordPrev, "-_")
	b.WriteString("/C:")
	w.word(l.WordCurr, "_+")
	b.WriteString("/D:")
	w.word(l.WordNext, "+_")

	b.WriteString("/E:")
	w.accentPhrasePrevNext(l.AccentPhrasePrev, '!', '-')

	b.WriteString("/F:")
	if f := l.AccentPhraseCurr; f != nil {
		w.u8(f.MoraCount)
		b.WriteByte('_')
		w.u8(f.AccentPosition)
		b.WriteByte('#')
		w.boolean(f.IsInterrogative)
		b.WriteString("_xx@")
		w.u8(f.AccentPhrasePositionForward)
		b.WriteByte('_')
		w.u8(f.AccentPhrasePositionBackward)
		b.WriteByte('|')
		w.u8(f.MoraPositionForward)
		b.WriteByte('_')
		w.u8(f.MoraPositionBackward)
	} else {
		w.allXX("_#_@_|_")
	}

	b.WriteString("/G:")
	w.accentPhrasePrevNext(l.AccentPhraseNext, '%', '_')

	b.WriteString("/H:")
	w.breathGroupPrevNext(l.BreathGroupPrev)

	b.WriteString("/I:")
	if i := l.BreathGroupCurr; i != nil {
		w.u8(i.AccentPhraseCount)
		b.WriteByte('-')
		w.u8(i.MoraCount)
		b.WriteByte('@')
		w.u8(i.BreathGroupPositionForward)
		b.WriteByte('+')
		w.u8(i.BreathGroupPositionBackward)
		b.WriteByte('&')
		w.u8(i.AccentPhrasePositionForward)
		b.WriteByte('-')
		w.u8(i.AccentPhrasePositionBackward)
		b.WriteByte('|')
		w.u8(i.MoraPositionForward)
		b.WriteByte('+')
		w.u8(i.MoraPositionBackward)
	} else {
		w.allXX("-@+&-|+")
	}

	b.WriteString("/J:")
	w.breathGroupPrevNext(l.BreathGroupNext)

	b.WriteString("/K:")
	w.u8(l.Utterance.BreathGroupCount)
	b.WriteByte('+')
	w.u8(l.Utterance.AccentPhraseCount)
	b.WriteByte('-')
	w.u8(l.Utterance.MoraCount)

	return b.String()
}

type writer struct {
	b *strings.Builder
}

func (w writer) xx() {
	w.b.WriteString(undefined)
}

// allXX writes xx for every field of an absent block, separated by seps.
func (w writer) allXX(seps string) {
	w.xx()
	for i := 0; i < len(seps); i++ {
		w.b.WriteByte(seps[i])
		w.xx()
	}
}

func (w writer) str(s *string) {
	if s == nil {
		w.xx()
		return
	}
	w.b.WriteString(*s)
}

func (w writer) u8(v uint8) {
	w.b.WriteString(strconv.Itoa(int(v)))
}

func (w writer) boolean(v bool) {
	if v {
		w.b.WriteByte('1')
	} else {
		w.b.WriteByte('0')
	}
}

// orXX writes v zero-padded to width, or xx.
func (w writer) orXX(v *uint8, width int) {
	if v == nil {
		w.xx()
		return
	}
	s := strconv.Itoa(int(*v))
	for i := len(s); i < width; i++ {
		w.b.WriteByte('0')
	}
	w.b.WriteString(s)
}

func (w writer) word(word *Word, seps string) {
	if word == nil {
		w.allXX(seps)
		return
	}
	w.orXX(word.Pos, 2)
	w.b.WriteByte(seps[0])
	w.orXX(word.CType, 1)
	w.b.WriteByte(seps[1])
	w.orXX(word.CForm, 1)
}

func (w writer) accentPhrasePrevNext(a *AccentPhrasePrevNext, flag, sep byte) {
	if a == nil {
		w.allXX(string([]byte{'_', flag, '_', sep}))
		return
	}
	w.u8(a.MoraCount)
	w.b.WriteByte('_')
	w.u8(a.AccentPosition)
	w.b.WriteByte(flag)
	w.boolean(a.IsInterrogative)
	w.b.WriteString("_xx")
	w.b.WriteByte(sep)
	if a.IsPauseInsertion == nil {
		w.xx()
	} else {
		w.boolean(!*a.IsPauseInsertion)
	}
}

func (w writer) breathGroupPrevNext(g *BreathGroupPrevNext) {
	if g == nil {
		w.allXX("_")
		return
	}
	w.u8(g.AccentPhraseCount)
	w.b.WriteByte('_')
	w.u8(g.MoraCount)
}
