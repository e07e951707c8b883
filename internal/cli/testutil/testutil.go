// Package testutil holds fixtures and captured renderers for command tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/jlabel/internal/cli/output"
)

// SampleLabel is a full-context label for the second mora of "nihon".
const SampleLabel = "sil^n-i+h=o/A:-3+1+7/B:xx-xx_xx/C:02_xx+xx/D:02+xx_xx/E:xx_xx!xx_xx-xx/F:7_4#0_xx@1_3|1_12/G:4_4%0_xx_1/H:xx_xx/I:3-12@1+2&1-8|1+41/J:5_29/K:2+8-41"

// SilenceLabel is the leading silence of an utterance.
const SilenceLabel = "xx^xx-sil+k=o/A:xx+xx+xx/B:xx-xx_xx/C:xx_xx+xx/D:09+xx_xx/E:xx_xx!xx_xx-xx/F:xx_xx#xx_xx@xx_xx|xx_xx/G:5_5%0_xx_xx/H:xx_xx/I:xx-xx@xx+xx&xx-xx|xx+xx/J:1_5/K:1+1-5"

// SampleQuestions is a question file with one set per outcome: matches
// SampleLabel, matches SilenceLabel, and rejected by the structured engine.
const SampleQuestions = `# test bank
QS "C-i" {*-i+*}
QS "C-Sil" {*-sil+*,*-pau+*}
QS "A1<=0" {*/A:-??+*,*/A:-?+*,*/A:0+*}
QS "R-n-i" {*^n-i+*}
`

// SetupTestBank writes SampleQuestions (or content, when given) to a
// question file in a temp directory and returns its path.
func SetupTestBank(t *testing.T, content ...string) string {
	t.Helper()

	data := SampleQuestions
	if len(content) > 0 {
		data = strings.Join(content, "\n")
	}

	path := filepath.Join(t.TempDir(), "questions.hed")
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("failed to write question file: %v", err)
	}
	return path
}

// SetupTestLabels writes labels one per line and returns the file path.
func SetupTestLabels(t *testing.T, labels ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "labels.lab")
	if err := os.WriteFile(path, []byte(strings.Join(labels, "\n")+"\n"), 0600); err != nil {
		t.Fatalf("failed to write label file: %v", err)
	}
	return path
}

// TestRenderer wraps a renderer with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a renderer writing to buffers.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a text-mode renderer that behaves like a TTY.
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a markdown-mode renderer.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a JSON-mode renderer.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns captured stdout.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns captured stderr.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// AssertNoANSI fails if s contains ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("output contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic checks on markdown output.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()
	AssertNoANSI(t, md)
	if !strings.Contains(md, "#") && !strings.Contains(md, "|") && !strings.Contains(md, "- ") {
		t.Errorf("output does not look like markdown: %q", md)
	}
}
