package question

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/jlabel/pkg/label"
)

const sampleLine = "sil^n-i+h=o/A:-3+1+7/B:xx-xx_xx/C:02_xx+xx/D:02+xx_xx/E:xx_xx!xx_xx-xx/F:7_4#0_xx@1_3|1_12/G:4_4%0_xx_1/H:xx_xx/I:3-12@1+2&1-8|1+41/J:5_29/K:2+8-41"

func mustLabel(t *testing.T, line string) *label.Label {
	t.Helper()
	l, err := label.Parse(line)
	require.NoError(t, err)
	return l
}

func TestParse_Phone(t *testing.T) {
	q, err := Parse([]string{"a^*", "A^*"})
	require.NoError(t, err)
	assert.Equal(t, PhoneQuestion{Pos: P1, Range: &PhoneRange{"a", "A"}}, q)

	for phone, want := range map[string]bool{"a": true, "A": true, "b": false} {
		l := &label.Label{Phoneme: label.Phoneme{P2: label.Ptr(phone)}}
		assert.Equal(t, want, q.Test(l), phone)
	}
	assert.False(t, q.Test(&label.Label{}), "absent field")
}

func TestParse_SignedRange(t *testing.T) {
	q, err := Parse([]string{"*/A:-??+*", "*/A:-?+*", "*/A:?+*", "*/A:10+*", "*/A:11+*"})
	require.NoError(t, err)
	assert.Equal(t, SignedRangeQuestion{Pos: A1, Range: &Interval{-99, 12}}, q)

	for _, v := range []int8{-50, -1, 0, 10, 11} {
		assert.True(t, q.Test(&label.Label{Mora: &label.Mora{RelativeAccentPosition: v}}), v)
	}
	for _, v := range []int8{12, -100} {
		assert.False(t, q.Test(&label.Label{Mora: &label.Mora{RelativeAccentPosition: v}}), v)
	}

	q, err = Parse([]string{"*/A:-3+*"})
	require.NoError(t, err)
	assert.Equal(t, SignedRangeQuestion{Pos: A1, Range: &Interval{-3, -2}}, q)
}

func TestParse_UnsignedRange(t *testing.T) {
	q, err := Parse([]string{"*_?/I:*", "*_1?/I:*", "*_2?/I:*", "*_30/I:*", "*_31/I:*"})
	require.NoError(t, err)
	assert.Equal(t, UnsignedRangeQuestion{Pos: H2, Range: &Interval{1, 32}}, q)

	q, err = Parse([]string{"*+7/B:*"})
	require.NoError(t, err)
	assert.True(t, q.Test(mustLabel(t, sampleLine)))
	assert.False(t, q.Test(&label.Label{Mora: &label.Mora{PositionBackward: 8}}))
}

func TestParse_Boolean(t *testing.T) {
	q, err := Parse([]string{"*%1_*"})
	require.NoError(t, err)
	assert.Equal(t, BooleanQuestion{Pos: G3, Range: label.Ptr(true)}, q)

	assert.True(t, q.Test(&label.Label{AccentPhraseNext: &label.AccentPhrasePrevNext{IsInterrogative: true}}))
	assert.False(t, q.Test(&label.Label{AccentPhraseNext: &label.AccentPhrasePrevNext{}}))
	assert.False(t, q.Test(&label.Label{}))
}

func TestParse_PauseInsertion(t *testing.T) {
	// Wire "1" on G5 means no pause is inserted.
	q, err := Parse([]string{"*_1/H:*"})
	require.NoError(t, err)
	assert.Equal(t, BooleanQuestion{Pos: G5, Range: label.Ptr(false)}, q)
	assert.True(t, q.Test(mustLabel(t, sampleLine)))
}

func TestParse_PositionMismatch(t *testing.T) {
	_, err := Parse([]string{"*/A:-??+*", "*/B:0+*"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPositionMismatch)
	assert.Equal(t, "PositionMismatch", ErrorCode(err))

	_, err = Parse([]string{"*/A:-??+*", "*/B:0-*"})
	assert.ErrorIs(t, err, ErrPositionMismatch)
}

func TestParse_Undefined(t *testing.T) {
	q, err := Parse([]string{"*_xx_*"})
	require.NoError(t, err)
	assert.Equal(t, KindUndefined, q.Kind())
	assert.Equal(t, Position(G4), q.Position())

	assert.True(t, q.Test(&label.Label{}))
	assert.True(t, q.Test(mustLabel(t, sampleLine)))
}

func TestParse_Category(t *testing.T) {
	q, err := Parse([]string{"*/B:17-*", "*/B:20-*"})
	require.NoError(t, err)
	assert.Equal(t, CategoryQuestion{Pos: B1, Range: &CategoryRange{17, 20}}, q)

	for v, want := range map[uint8]bool{17: true, 20: true, 18: false} {
		l := &label.Label{WordPrev: &label.Word{Pos: label.Ptr(v)}}
		assert.Equal(t, want, q.Test(l), v)
	}
	assert.False(t, q.Test(&label.Label{WordPrev: &label.Word{CType: label.Ptr[uint8](17)}}))
}

func TestParse_Absent(t *testing.T) {
	l := mustLabel(t, sampleLine)

	tests := []struct {
		patterns []string
		want     bool
	}{
		{[]string{"*/B:xx-*"}, true},
		{[]string{"*/C:xx_*"}, false},
		{[]string{"*_xx/I:*"}, true},
		{[]string{"*/E:xx_*"}, true},
		{[]string{"*/J:xx_*"}, false},
		{[]string{"*_xx+*"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.patterns[0], func(t *testing.T) {
			q, err := Parse(tt.patterns)
			require.NoError(t, err)
			assert.Nil(t, rangeOf(q))
			assert.Equal(t, tt.want, q.Test(l))
		})
	}
}

func TestParse_Label(t *testing.T) {
	l := mustLabel(t, sampleLine)

	tests := []struct {
		patterns []string
		want     bool
	}{
		{[]string{"sil^*"}, true},
		{[]string{"*^n-*"}, true},
		{[]string{"*-i+*", "*-u+*"}, true},
		{[]string{"*+h=*"}, true},
		{[]string{"*=a/A:*"}, false},
		{[]string{"*/A:-?+*"}, true},
		{[]string{"*+1+*"}, true},
		{[]string{"*/C:02_*"}, true},
		{[]string{"*/D:1+*"}, false},
		{[]string{"*/F:7_*"}, true},
		{[]string{"*_4#*"}, true},
		{[]string{"*#0_*"}, true},
		{[]string{"*@1_*"}, true},
		{[]string{"*_3|*"}, true},
		{[]string{"*|1_*"}, true},
		{[]string{"*_1?/G:*"}, true},
		{[]string{"*/G:4_*"}, true},
		{[]string{"*_4%*"}, true},
		{[]string{"*%1_*"}, false},
		{[]string{"*/I:3-*"}, true},
		{[]string{"*-1?@*"}, true},
		{[]string{"*@1+*"}, true},
		{[]string{"*+2&*"}, true},
		{[]string{"*&1-*"}, true},
		{[]string{"*-8|*"}, true},
		{[]string{"*|1+*"}, true},
		{[]string{"*+4?/J:*"}, true},
		{[]string{"*/J:5_*"}, true},
		{[]string{"*_2?/K:*"}, true},
		{[]string{"*/K:2+*"}, true},
		{[]string{"*+8-*"}, true},
		{[]string{"*-4?"}, true},
		{[]string{"*-41"}, true},
		{[]string{"*-42"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.patterns[0], func(t *testing.T) {
			q, err := Parse(tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Test(l))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		code     string
	}{
		{"no patterns", nil, "Empty"},
		{"gap", []string{"*/A:?+*", "*/A:5?+*"}, "IncontinuousRange"},
		{"bad wildcard", []string{"*/A:-1?+*"}, "FailWildcard"},
		{"bad literal", []string{"*/B:x-*"}, "FailLiteral"},
		{"boolean text", []string{"*%2_*"}, "InvalidBoolean"},
		{"boolean pair", []string{"*%0_*", "*%1_*"}, "InvalidBoolean"},
		{"undefined value", []string{"*_1_*"}, "FailLiteral"},
		{"empty range", []string{"*/A:+*"}, "EmptyRange"},
		{"no position", []string{"*/Z:1+*"}, "NoMatchingPosition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.patterns)
			require.Error(t, err)
			assert.Equal(t, tt.code, ErrorCode(err))
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	patterns := []string{"*_?/I:*", "*_1?/I:*", "*_2?/I:*"}
	a, err := Parse(patterns)
	require.NoError(t, err)
	b, err := Parse(patterns)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestQuestion_Concurrent(t *testing.T) {
	q, err := Parse([]string{"*/A:-??+*", "*/A:-?+*"})
	require.NoError(t, err)
	l := mustLabel(t, sampleLine)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.True(t, q.Test(l))
			}
		}()
	}
	wg.Wait()
}

func TestQuestion_String(t *testing.T) {
	tests := []struct {
		patterns []string
		want     string
	}{
		{[]string{"a^*", "A^*"}, "P1 in {a,A}"},
		{[]string{"*/A:-?+*"}, "A1 in [-9,0)"},
		{[]string{"*%1_*"}, "G3 = true"},
		{[]string{"*/B:xx-*"}, "B1 = xx"},
		{[]string{"*_xx_*"}, "G4 (any)"},
		{[]string{"*/B:17-*", "*/B:20-*"}, "B1 in {17,20}"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			q, err := Parse(tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.String())
		})
	}
}

func TestNewParser_QuirkHandler(t *testing.T) {
	var quirks []Quirk
	parse := NewParser(WithQuirkHandler(func(q Quirk) { quirks = append(quirks, q) }))

	q, err := parse([]string{"*-1/H:*"})
	require.NoError(t, err)
	assert.Equal(t, BooleanQuestion{Pos: G5, Range: label.Ptr(false)}, q)
	assert.Len(t, quirks, 1)

	_, err = Parse([]string{"*-1/H:*"})
	assert.ErrorIs(t, err, ErrPrefixVerify)
}

func rangeOf(q AllQuestion) any {
	switch q := q.(type) {
	case PhoneQuestion:
		return ptrOrNil(q.Range)
	case SignedRangeQuestion:
		return ptrOrNil(q.Range)
	case UnsignedRangeQuestion:
		return ptrOrNil(q.Range)
	case BooleanQuestion:
		return ptrOrNil(q.Range)
	case CategoryQuestion:
		return ptrOrNil(q.Range)
	case UndefinedQuestion:
		return ptrOrNil(q.Range)
	}
	return nil
}

func ptrOrNil[T any](p *T) any {
	if p == nil {
		return nil
	}
	return p
}
