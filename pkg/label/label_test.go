package label

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sampleLine = "sil^n-i+h=o/A:-3+1+7/B:xx-xx_xx/C:02_xx+xx/D:02+xx_xx/E:xx_xx!xx_xx-xx/F:7_4#0_xx@1_3|1_12/G:4_4%0_xx_1/H:xx_xx/I:3-12@1+2&1-8|1+41/J:5_29/K:2+8-41"
	silLine    = "xx^xx-sil+k=o/A:xx+xx+xx/B:xx-xx_xx/C:xx_xx+xx/D:09+xx_xx/E:xx_xx!xx_xx-xx/F:xx_xx#xx_xx@xx_xx|xx_xx/G:5_5%0_xx_xx/H:xx_xx/I:xx-xx@xx+xx&xx-xx|xx+xx/J:1_5/K:1+1-5"
	wordLine   = "k^o-N+n=i/A:2+3+3/B:04-1_2/C:13_0+1/D:xx+xx_xx/E:2_1!1_xx-1/F:3_3#0_xx@2_1|3_3/G:xx_xx%xx_xx_xx/H:1_2/I:2-5@1+1&1-2|1+5/J:xx_xx/K:1+2-5"
)

func TestParse_Sample(t *testing.T) {
	l, err := Parse(sampleLine)
	require.NoError(t, err)

	assert.Equal(t, Phoneme{
		P2: Ptr("sil"),
		P1: Ptr("n"),
		C:  Ptr("i"),
		N1: Ptr("h"),
		N2: Ptr("o"),
	}, l.Phoneme)
	assert.Equal(t, &Mora{RelativeAccentPosition: -3, PositionForward: 1, PositionBackward: 7}, l.Mora)
	assert.Nil(t, l.WordPrev)
	assert.Equal(t, &Word{Pos: Ptr[uint8](2)}, l.WordNext)
	assert.Nil(t, l.AccentPhrasePrev)
	require.NotNil(t, l.AccentPhraseNext)
	require.NotNil(t, l.AccentPhraseNext.IsPauseInsertion)
	assert.False(t, *l.AccentPhraseNext.IsPauseInsertion, "wire 1 means no pause")
	assert.Nil(t, l.BreathGroupPrev)
	assert.Equal(t, &BreathGroupPrevNext{AccentPhraseCount: 5, MoraCount: 29}, l.BreathGroupNext)
	assert.Equal(t, Utterance{BreathGroupCount: 2, AccentPhraseCount: 8, MoraCount: 41}, l.Utterance)
}

func TestParse_Absent(t *testing.T) {
	l, err := Parse(silLine)
	require.NoError(t, err)

	assert.Nil(t, l.Phoneme.P2)
	assert.Nil(t, l.Mora)
	assert.Nil(t, l.AccentPhraseCurr)
	require.NotNil(t, l.AccentPhraseNext)
	assert.Nil(t, l.AccentPhraseNext.IsPauseInsertion)
	assert.Nil(t, l.BreathGroupCurr)
}

func TestRoundTrip(t *testing.T) {
	for _, line := range []string{sampleLine, silLine, wordLine} {
		t.Run(line[:9], func(t *testing.T) {
			l, err := Parse(line)
			require.NoError(t, err)
			assert.Equal(t, line, l.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"missing block", "a^b-c+d=e/A:1+2+3", ErrSymbolNotFound},
		{"bad number", sampleLineWith("/A:-3+1+7", "/A:-3+z+7"), ErrInvalidNumber},
		{"out of range", sampleLineWith("/A:-3+1+7", "/A:-3+256+7"), ErrInvalidNumber},
		{"bad boolean", sampleLineWith("%0_xx_1", "%2_xx_1"), ErrInvalidBoolean},
		{"defined e4", sampleLineWith("#0_xx@", "#0_1@"), ErrNotUndefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var pe *ParseError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func sampleLineWith(old, repl string) string {
	return strings.Replace(sampleLine, old, repl, 1)
}
