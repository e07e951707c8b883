package question

import "strings"

const (
	// prefixDelimiters end the prefix, scanning forward.
	prefixDelimiters = "!#%&+-=@^_|:"
	// suffixDelimiters start the suffix, scanning backward.
	suffixDelimiters = "!#%&+-=@^_|/"
)

// patternSplit is a wildcard pattern cut around its variable part.
//
//	*/A:-??+*
//	 ^^^ prefix, "-??" core, "+" suffix
type patternSplit struct {
	prefix       string
	core         string
	suffix       string
	leadingStar  bool
	trailingStar bool
}

func splitPattern(pattern string) patternSplit {
	var s patternSplit
	if strings.HasPrefix(pattern, "*") {
		pattern = pattern[1:]
		s.leadingStar = true
	}
	if strings.HasSuffix(pattern, "*") {
		pattern = pattern[:len(pattern)-1]
		s.trailingStar = true
	}

	prefix := 0
	if i := strings.IndexAny(pattern, prefixDelimiters); i >= 0 {
		prefix = i + 1
	}
	suffix := len(pattern)
	if i := strings.LastIndexAny(pattern, suffixDelimiters); i >= 0 {
		suffix = i
	}

	// Only one delimiter: the cut spanning the whole text belongs to an
	// edge field (P1 has no prefix, K3 has no suffix).
	if prefix > suffix {
		if prefix == len(pattern) {
			prefix = 0
		} else {
			suffix = len(pattern)
		}
	}

	s.prefix = pattern[:prefix]
	s.core = pattern[prefix:suffix]
	s.suffix = pattern[suffix:]
	return s
}
