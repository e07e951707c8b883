// Package bank loads named question sets from question files, compiles them
// and evaluates labels against the whole bank.
package bank

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Set is one named question as written in a question file.
type Set struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
	// Line is the 1-based line the set was defined on, 0 when unknown.
	Line int `yaml:"-"`
}

// SyntaxError reports a malformed question file.
type SyntaxError struct {
	File    string
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// LoadFile reads a question file. Files ending in .yaml or .yml are read as
// YAML, anything else as HTS question lines.
func LoadFile(path string) ([]Set, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return nil, fmt.Errorf("failed to read question file: %w", err)
	}

	var sets []Set
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		sets, err = ParseYAML(data)
	default:
		sets, err = ParseHED(bytes.NewReader(data))
	}
	var se *SyntaxError
	if errors.As(err, &se) {
		se.File = path
	}
	if err != nil {
		return nil, err
	}
	return sets, nil
}

// ParseHED reads HTS question lines:
//
//	QS "C-Vowel" {*-a+*,*-i+*,*-u+*,*-e+*,*-o+*}
//
// Blank lines and lines starting with '#' are skipped. Any other line is a
// syntax error.
func ParseHED(r io.Reader) ([]Set, error) {
	var sets []Set
	seen := make(map[string]int)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		set, err := parseQS(line)
		if err != nil {
			return nil, &SyntaxError{Line: lineNo, Message: err.Error()}
		}
		if prev, ok := seen[set.Name]; ok {
			return nil, &SyntaxError{Line: lineNo, Message: fmt.Sprintf("question %q already defined on line %d", set.Name, prev)}
		}
		seen[set.Name] = lineNo
		set.Line = lineNo
		sets = append(sets, set)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read question lines: %w", err)
	}
	return sets, nil
}

func parseQS(line string) (Set, error) {
	rest, ok := strings.CutPrefix(line, "QS")
	if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
		return Set{}, fmt.Errorf("expected QS, got %q", line)
	}
	rest = strings.TrimSpace(rest)

	open := strings.IndexByte(rest, '{')
	if open < 0 || !strings.HasSuffix(rest, "}") {
		return Set{}, fmt.Errorf("expected {patterns} in %q", line)
	}

	name := unquote(strings.TrimSpace(rest[:open]))
	if name == "" {
		return Set{}, fmt.Errorf("missing question name in %q", line)
	}

	var patterns []string
	for _, p := range strings.Split(rest[open+1:len(rest)-1], ",") {
		if p = unquote(strings.TrimSpace(p)); p != "" {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		return Set{}, fmt.Errorf("question %q has no patterns", name)
	}
	return Set{Name: name, Patterns: patterns}, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

type yamlFile struct {
	Questions []yamlSet `yaml:"questions"`
}

type yamlSet struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
	line     int
}

func (s *yamlSet) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlSet
	if err := node.Decode((*plain)(s)); err != nil {
		return err
	}
	s.line = node.Line
	return nil
}

// ParseYAML reads a YAML question file:
//
//	questions:
//	  - name: C-Vowel
//	    patterns: ["*-a+*", "*-i+*"]
//
// Unknown top-level keys are rejected.
func ParseYAML(data []byte) ([]Set, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f yamlFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &SyntaxError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}

	sets := make([]Set, 0, len(f.Questions))
	seen := make(map[string]int)
	for _, q := range f.Questions {
		if q.Name == "" {
			return nil, &SyntaxError{Line: q.line, Message: "missing question name"}
		}
		if len(q.Patterns) == 0 {
			return nil, &SyntaxError{Line: q.line, Message: fmt.Sprintf("question %q has no patterns", q.Name)}
		}
		if prev, ok := seen[q.Name]; ok {
			return nil, &SyntaxError{Line: q.line, Message: fmt.Sprintf("question %q already defined on line %d", q.Name, prev)}
		}
		seen[q.Name] = q.line
		sets = append(sets, Set{Name: q.Name, Patterns: q.Patterns, Line: q.line})
	}
	return sets, nil
}
