package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/jlabel/internal/cli/commands"
	"github.com/leapstack-labs/jlabel/internal/cli/config"
	"github.com/leapstack-labs/jlabel/internal/cli/testutil"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	cfgFile = ""
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_Help(t *testing.T) {
	out, _, err := run(t, "--help")
	require.NoError(t, err)

	for _, name := range []string{"check", "match", "repl", "positions", "version", "completion"} {
		assert.Contains(t, out, name)
	}
}

func TestRoot_Version(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "jlq v"+Version)
}

func TestRoot_FlagsReachCommands(t *testing.T) {
	t.Chdir(t.TempDir())
	path := testutil.SetupTestBank(t)

	out, _, err := run(t, "check", "-q", path, "--fallback", "regex", "-o", "json")
	require.NoError(t, err)

	var result commands.CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Summary.Fallback)

	_, _, err = run(t, "check", path, "--fallback", "regex", "--strict")
	assert.Error(t, err)
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	bankPath := filepath.Join(dir, "questions.hed")
	require.NoError(t, os.WriteFile(bankPath, []byte(testutil.SampleQuestions), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jlq.yaml"), []byte("questions: questions.hed\nfallback: noop\noutput: json\n"), 0600))
	t.Chdir(dir)

	out, _, err := run(t, "match", "--label", testutil.SampleLabel)
	require.NoError(t, err)

	var results []commands.MatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, []string{"C-i", "A1<=0"}, results[0].Matches)
}

func TestRoot_InvalidConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := run(t, "positions", "--fallback", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown fallback")
}

func TestRoot_VerboseLogs(t *testing.T) {
	t.Chdir(t.TempDir())
	path := testutil.SetupTestBank(t, `QS "C-i" {*-i+*}`)

	_, errOut, err := run(t, "check", path, "-v", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, errOut, "compiled question bank")
}

func TestCompletion(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "jlq")

	_, _, err = run(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestGetConfigAndRenderer_Defaults(t *testing.T) {
	cfg := GetConfig(context.Background())
	assert.Equal(t, config.DefaultFallback, cfg.Fallback)
	assert.NotNil(t, GetRenderer(context.Background()))
}
