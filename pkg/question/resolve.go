package question

import (
	"errors"
	"fmt"
	"strings"
)

// Resolution tables. Everything that ties label delimiters to positions
// lives here; SelfCheck verifies the tables agree with each other.

// prefixLetters maps "<LETTER>:" at the end of a prefix to the first field
// of that block.
var prefixLetters = map[byte]Position{
	'A': A1, 'B': B1, 'C': C1, 'D': D1, 'E': E1, 'F': F1,
	'G': G1, 'H': H1, 'I': I1, 'J': J1, 'K': K1,
}

// prefixSingles maps the last byte of a prefix when it alone is decisive.
var prefixSingles = map[byte]Position{
	'^': P2, '=': P5, '!': E3, '#': F3, '%': G3, '&': I5,
}

// suffixLetters maps "/<LETTER>" at the start of a suffix to the last field
// of the previous block.
var suffixLetters = map[byte]Position{
	'A': P5, 'B': A3, 'C': B3, 'D': C3, 'E': D3, 'F': E5,
	'G': F8, 'H': G5, 'I': H2, 'J': I8, 'K': J2,
}

// suffixSingles maps the first byte of a suffix when it alone is decisive.
var suffixSingles = map[byte]Position{
	'^': P1, '=': P4, '!': E2, '#': F2, '%': G2, '&': I4,
}

type delimiterPair struct {
	prefix byte // last byte of the prefix
	suffix byte // first byte of the suffix
}

// combinations resolves the delimiters that are ambiguous on their own.
var combinations = map[delimiterPair]Position{
	{'-', '+'}: P3,
	{'+', '+'}: A2,
	{'-', '_'}: B2,
	{'_', '+'}: C2,
	{'+', '_'}: D2,
	{'_', '-'}: E4,
	{'-', '/'}: E5,
	{'_', '@'}: F4,
	{'@', '_'}: F5,
	{'_', '|'}: F6,
	{'|', '_'}: F7,
	{'_', '_'}: G4,
	{'-', '@'}: I2,
	{'@', '+'}: I3,
	{'-', '|'}: I6,
	{'|', '+'}: I7,
	{'+', '-'}: K2,
}

type delimiterHint struct {
	prefix string
	suffix string
}

// hints are the delimiters that surround each field on the wire.
var hints = map[Position]delimiterHint{
	P1: {"", "^"},
	P2: {"^", "-"},
	P3: {"-", "+"},
	P4: {"+", "="},
	P5: {"=", "/A:"},

	A1: {"/A:", "+"},
	A2: {"+", "+"},
	A3: {"+", "/B:"},

	B1: {"/B:", "-"},
	B2: {"-", "_"},
	B3: {"_", "/C:"},

	C1: {"/C:", "_"},
	C2: {"_", "+"},
	C3: {"+", "/D:"},

	D1: {"/D:", "+"},
	D2: {"+", "_"},
	D3: {"_", "/E:"},

	E1: {"/E:", "_"},
	E2: {"_", "!"},
	E3: {"!", "_"},
	E4: {"_", "-"},
	E5: {"-", "/F:"},

	F1: {"/F:", "_"},
	F2: {"_", "#"},
	F3: {"#", "_"},
	F4: {"_", "@"},
	F5: {"@", "_"},
	F6: {"_", "|"},
	F7: {"|", "_"},
	F8: {"_", "/G:"},

	G1: {"/G:", "_"},
	G2: {"_", "%"},
	G3: {"%", "_"},
	G4: {"_", "_"},
	G5: {"_", "/H:"},

	H1: {"/H:", "_"},
	H2: {"_", "/I:"},

	I1: {"/I:", "-"},
	I2: {"-", "@"},
	I3: {"@", "+"},
	I4: {"+", "&"},
	I5: {"&", "-"},
	I6: {"-", "|"},
	I7: {"|", "+"},
	I8: {"+", "/J:"},

	J1: {"/J:", "_"},
	J2: {"_", "/K:"},

	K1: {"/K:", "+"},
	K2: {"+", "-"},
	K3: {"-", ""},
}

// alternatePrefixes are prefix hints found in existing question files that
// differ from the wire format. G5 written as "*-1/H:*" is one of them.
// They are only accepted when a quirk handler is installed.
var alternatePrefixes = map[Position][]string{
	G5: {"-"},
}

// Quirk describes a pattern that resolved only through an alternate prefix.
type Quirk struct {
	Pattern  string
	Position Position
	// Want is the wire prefix of the position, Got is what the pattern used.
	Want string
	Got  string
}

// Resolve infers the position a single pattern asks about, and returns it
// together with the variable part of the pattern.
func Resolve(pattern string, opts ...Option) (Position, string, error) {
	return newConfig(opts).resolve(pattern)
}

func (c *config) resolve(pattern string) (Position, string, error) {
	return c.resolveAs(pattern, nil)
}

// resolveAs resolves pattern, failing with ErrPositionMismatch as soon as
// the looked up position differs from want. A nil want accepts any position.
func (c *config) resolveAs(pattern string, want Position) (Position, string, error) {
	s := splitPattern(pattern)
	pos, err := lookup(s)
	if err == nil && want != nil && pos != want {
		err = fmt.Errorf("%w: %s and %s", ErrPositionMismatch, want, pos)
	}
	if err == nil {
		err = c.verify(pattern, s, pos)
	}
	if err == nil && s.core == "" {
		err = ErrEmptyRange
	}
	if err != nil {
		return nil, "", &PatternError{Pattern: pattern, Err: err}
	}
	return pos, s.core, nil
}

func lookup(s patternSplit) (Position, error) {
	if n := len(s.prefix); n > 0 {
		if s.prefix[n-1] == ':' {
			if n >= 2 {
				if p, ok := prefixLetters[s.prefix[n-2]]; ok {
					return p, nil
				}
			}
		} else if p, ok := prefixSingles[s.prefix[n-1]]; ok {
			return p, nil
		}
	}

	if n := len(s.suffix); n > 0 {
		if s.suffix[0] == '/' {
			if n >= 2 {
				if p, ok := suffixLetters[s.suffix[1]]; ok {
					return p, nil
				}
			}
		} else if p, ok := suffixSingles[s.suffix[0]]; ok {
			return p, nil
		}
	}

	if len(s.prefix) > 0 && len(s.suffix) > 0 {
		pair := delimiterPair{s.prefix[len(s.prefix)-1], s.suffix[0]}
		if p, ok := combinations[pair]; ok {
			return p, nil
		}
	}

	if s.suffix == "" && !s.trailingStar {
		return K3, nil
	}
	return nil, ErrNoMatchingPosition
}

func (c *config) verify(pattern string, s patternSplit, pos Position) error {
	if pos != P1 && !s.leadingStar {
		return ErrMissingPrefixAsterisk
	}
	if pos != K3 && !s.trailingStar {
		return ErrMissingSuffixAsterisk
	}

	h := hints[pos]
	if !strings.HasSuffix(h.prefix, s.prefix) && !c.tolerate(pattern, s, pos, h) {
		return ErrPrefixVerify
	}
	if !strings.HasPrefix(h.suffix, s.suffix) {
		return ErrSuffixVerify
	}
	return nil
}

func (c *config) tolerate(pattern string, s patternSplit, pos Position, h delimiterHint) bool {
	if c.quirk == nil {
		return false
	}
	for _, alt := range alternatePrefixes[pos] {
		if strings.HasSuffix(alt, s.prefix) {
			c.quirk(Quirk{Pattern: pattern, Position: pos, Want: h.prefix, Got: s.prefix})
			return true
		}
	}
	return false
}

// Hint returns the delimiters that surround pos on the wire.
func Hint(pos Position) (prefix, suffix string) {
	h := hints[pos]
	return h.prefix, h.suffix
}

// CanonicalPattern returns the smallest pattern that asks whether pos is 1.
func CanonicalPattern(pos Position) string {
	h := hints[pos]
	lead, trail := "*", "*"
	if pos == P1 {
		lead = ""
	}
	if pos == K3 {
		trail = ""
	}
	return lead + h.prefix + "1" + h.suffix + trail
}

// SelfCheck verifies the resolution tables: no combination is shadowed by a
// single-byte rule, and every position's canonical pattern resolves back to
// that position.
func SelfCheck() error {
	var errs []error

	for pair, pos := range combinations {
		if p, ok := prefixSingles[pair.prefix]; ok {
			errs = append(errs, fmt.Errorf("combination %q%q for %s is shadowed by prefix %q for %s", pair.prefix, pair.suffix, pos, pair.prefix, p))
		}
		if p, ok := suffixSingles[pair.suffix]; ok {
			errs = append(errs, fmt.Errorf("combination %q%q for %s is shadowed by suffix %q for %s", pair.prefix, pair.suffix, pos, pair.suffix, p))
		}
		if pair.prefix == ':' {
			errs = append(errs, fmt.Errorf("combination %q%q for %s is shadowed by block prefixes", pair.prefix, pair.suffix, pos))
		}
	}

	all := AllPositions()
	if len(hints) != len(all) {
		errs = append(errs, fmt.Errorf("%d hints for %d positions", len(hints), len(all)))
	}
	for _, pos := range all {
		if _, ok := hints[pos]; !ok {
			errs = append(errs, fmt.Errorf("%s has no delimiter hint", pos))
			continue
		}
		pattern := CanonicalPattern(pos)
		got, _, err := Resolve(pattern)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", pos, err))
		case got != pos:
			errs = append(errs, fmt.Errorf("%s: %q resolves to %s", pos, pattern, got))
		}
	}

	return errors.Join(errs...)
}
