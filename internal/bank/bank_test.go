package bank

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/jlabel/internal/testutil"
	"github.com/leapstack-labs/jlabel/pkg/label"
	"github.com/leapstack-labs/jlabel/pkg/question"
)

const (
	sampleLine = "sil^n-i+h=o/A:-3+1+7/B:xx-xx_xx/C:02_xx+xx/D:02+xx_xx/E:xx_xx!xx_xx-xx/F:7_4#0_xx@1_3|1_12/G:4_4%0_xx_1/H:xx_xx/I:3-12@1+2&1-8|1+41/J:5_29/K:2+8-41"
	silLine    = "xx^xx-sil+k=o/A:xx+xx+xx/B:xx-xx_xx/C:xx_xx+xx/D:09+xx_xx/E:xx_xx!xx_xx-xx/F:xx_xx#xx_xx@xx_xx|xx_xx/G:5_5%0_xx_xx/H:xx_xx/I:xx-xx@xx+xx&xx-xx|xx+xx/J:1_5/K:1+1-5"
)

const sampleHED = `# vowels
QS "C-i" {*-i+*}
QS "C-Sil" {*-sil+*,*-pau+*}
QS "A1<=0" {*/A:-??+*,*/A:-?+*,*/A:0+*}
QS "Mismatch" {*/A:-??+*,*/B:0+*}
QS "Gap" {*/A:?+*,*/A:5?+*}
QS "Quirk" {*-1/H:*}
`

func mustLabels(t *testing.T, lines ...string) []*label.Label {
	t.Helper()
	out := make([]*label.Label, len(lines))
	for i, line := range lines {
		l, err := label.Parse(line)
		require.NoError(t, err)
		out[i] = l
	}
	return out
}

func mustSets(t *testing.T) []Set {
	t.Helper()
	sets, err := ParseHED(strings.NewReader(sampleHED))
	require.NoError(t, err)
	return sets
}

func TestCompile_NoFallback(t *testing.T) {
	b, err := Compile(context.Background(), mustSets(t), Config{
		Fallback: FallbackNone,
		Workers:  2,
		Logger:   testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	require.Len(t, b.Entries, 6)

	codes := make(map[string]string)
	for _, e := range b.Entries {
		codes[e.Name] = e.Code
	}
	assert.Equal(t, map[string]string{
		"C-i":      "",
		"C-Sil":    "",
		"A1<=0":    "",
		"Mismatch": "PositionMismatch",
		"Gap":      "IncontinuousRange",
		"Quirk":    "PrefixVerifyError",
	}, codes)

	assert.Len(t, b.Rejected(), 3)
	assert.ErrorIs(t, b.Err(), question.ErrPositionMismatch)
	assert.ErrorIs(t, b.Err(), question.ErrIncontinuousRange)

	labels := mustLabels(t, sampleLine, silLine)
	assert.Equal(t, []string{"C-i", "A1<=0"}, b.Match(labels[0]))
	assert.Equal(t, []string{"C-Sil"}, b.Match(labels[1]))
}

func TestCompile_TolerateQuirks(t *testing.T) {
	logger, logs := testutil.NewRecordingLogger(t)
	b, err := Compile(context.Background(), mustSets(t), Config{
		TolerateQuirks: true,
		Logger:         logger,
	})
	require.NoError(t, err)

	e := b.Entries[5]
	require.Equal(t, "Quirk", e.Name)
	assert.True(t, e.OK())
	require.Len(t, e.Quirks, 1)
	assert.Equal(t, question.Position(question.G5), e.Quirks[0].Position)
	assert.True(t, logs.Contains("tolerated malformed pattern"))
	assert.True(t, logs.Contains("question=Quirk"))

	// Wire "1" on G5 means no pause, and the sample label has no pause.
	assert.Contains(t, b.Match(mustLabels(t, sampleLine)[0]), "Quirk")
}

func TestCompile_Fallbacks(t *testing.T) {
	sets := []Set{
		{Name: "Regexish", Patterns: []string{"*^n-i+*"}},
		{Name: "Mismatch", Patterns: []string{"*/A:-3+*", "*/B:0+*"}},
	}
	l := mustLabels(t, sampleLine)[0]

	b, err := Compile(context.Background(), sets, Config{Fallback: FallbackNoop})
	require.NoError(t, err)
	assert.Equal(t, FallbackNoop, b.Entries[0].Fallback)
	assert.Empty(t, b.Match(l))
	assert.NoError(t, b.Err())

	b, err = Compile(context.Background(), sets, Config{Fallback: FallbackRegex})
	require.NoError(t, err)
	assert.Equal(t, FallbackRegex, b.Entries[0].Fallback)
	assert.Equal(t, []string{"Regexish", "Mismatch"}, b.Match(l))
}

func TestCompile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Compile(ctx, mustSets(t), Config{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatchAll(t *testing.T) {
	b, err := Compile(context.Background(), mustSets(t), Config{Workers: 4})
	require.NoError(t, err)

	lines := []string{sampleLine, silLine, sampleLine, silLine, sampleLine}
	got, err := b.MatchAll(context.Background(), mustLabels(t, lines...))
	require.NoError(t, err)
	require.Len(t, got, len(lines))
	for i := range lines {
		if i%2 == 0 {
			assert.Equal(t, []string{"C-i", "A1<=0"}, got[i])
		} else {
			assert.Equal(t, []string{"C-Sil"}, got[i])
		}
	}
}

func TestParseFallback(t *testing.T) {
	for _, s := range []string{"none", "noop", "regex"} {
		f, err := ParseFallback(s)
		require.NoError(t, err)
		assert.Equal(t, Fallback(s), f)
	}

	f, err := ParseFallback("")
	require.NoError(t, err)
	assert.Equal(t, FallbackNone, f)

	_, err = ParseFallback("strict")
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.hed")
	require.NoError(t, os.WriteFile(path, []byte(sampleHED), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, nil, func() { changes.Add(1) })
	}()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(sampleHED), 0o600)
		return changes.Load() > 0
	}, 5*time.Second, 200*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
