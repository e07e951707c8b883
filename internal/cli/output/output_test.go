package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"text", ModeText, false},
		{"markdown", ModeMarkdown, false},
		{"json", ModeJSON, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	var out, errOut bytes.Buffer

	assert.Equal(t, ModeMarkdown, NewRenderer(&out, &errOut, ModeAuto).EffectiveMode(), "buffers are not terminals")
	assert.Equal(t, ModeMarkdown, NewRenderer(&out, &errOut, "bogus").EffectiveMode())
	assert.Equal(t, ModeText, NewRenderer(&out, &errOut, ModeText).EffectiveMode())
	assert.Equal(t, ModeJSON, NewRenderer(&out, &errOut, ModeJSON).EffectiveMode())
}

func TestRenderer_Streams(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	r.Println("result")
	r.Success("compiled")
	r.Error("failed")
	r.Warning("careful")

	assert.Equal(t, "result\n", out.String())
	assert.Contains(t, errOut.String(), "✓ compiled")
	assert.Contains(t, errOut.String(), "✗ failed")
	assert.Contains(t, errOut.String(), "! careful")
	assert.NotContains(t, errOut.String(), "\x1b[", "no color on a non-terminal")
}

func TestRenderer_Header(t *testing.T) {
	var out bytes.Buffer
	NewRenderer(&out, &out, ModeMarkdown).Header(2, "Questions")
	assert.Equal(t, "## Questions\n\n", out.String())

	out.Reset()
	NewRenderer(&out, &out, ModeText).Header(1, "Questions")
	assert.Equal(t, "Questions\n", out.String())
}

func TestRenderer_StatusLine(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &out, ModeText)

	r.StatusLine("C-Vowel", "success", "")
	r.StatusLine("Gap", "error", "IncontinuousRange")

	assert.Equal(t, "  ✓ C-Vowel\n  ✗ Gap IncontinuousRange\n", out.String())
}

func TestRenderer_JSON(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &out, ModeJSON)

	require.NoError(t, r.JSON(map[string]int{"sets": 2}))
	assert.JSONEq(t, `{"sets": 2}`, out.String())
}

func TestRenderer_Table(t *testing.T) {
	var out bytes.Buffer
	NewRenderer(&out, &out, ModeMarkdown).Table(
		[]string{"Name", "Position"},
		[][]string{{"C-i", "P3"}},
	)
	assert.Contains(t, out.String(), "Name")
	assert.Contains(t, out.String(), "| --- |")
	assert.Contains(t, out.String(), "C-i")

	out.Reset()
	NewRenderer(&out, &out, ModeText).Table(
		[]string{"Name", "Position"},
		[][]string{{"C-i", "P3"}},
	)
	assert.Contains(t, out.String(), "┌")
	assert.Contains(t, out.String(), "C-i")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Title", FormatHeader(3, "Title"))
	assert.Equal(t, "- **Sets:** 4", FormatKeyValue("Sets", "4"))
}

func TestNewRendererWithTTY(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, ModeText, NewRendererWithTTY(&out, &out, true, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeMarkdown, NewRendererWithTTY(&out, &out, false, ModeAuto).EffectiveMode())
	assert.False(t, IsTerminal(&out))
}
