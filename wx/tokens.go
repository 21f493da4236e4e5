package wx

import (
	"regexp"
	"strings"
)

// tokenList holds the whitespace-split remainder of a report body. Extractors
// search forward from the start, splice out what they claim, and leave the
// rest for later extractors, so decoding order does not depend on exact token
// positions.
type tokenList struct {
	toks []string
}

func newTokenList(s string) *tokenList {
	return &tokenList{toks: strings.Fields(s)}
}

func (tl *tokenList) len() int { return len(tl.toks) }

func (tl *tokenList) at(i int) string { return tl.toks[i] }

// remove splices n tokens starting at index i out of the list.
func (tl *tokenList) remove(i, n int) {
	tl.toks = append(tl.toks[:i], tl.toks[i+n:]...)
}

// removeAll removes every occurrence of the literal token, reporting whether
// any was present.
func (tl *tokenList) removeAll(tok string) bool {
	found := false
	for i := 0; i < len(tl.toks); {
		if tl.toks[i] == tok {
			tl.remove(i, 1)
			found = true
			continue
		}
		i++
	}
	return found
}

// find returns the index of the first token matching re, or -1.
func (tl *tokenList) find(re *regexp.Regexp) int {
	for i, tok := range tl.toks {
		if re.MatchString(tok) {
			return i
		}
	}
	return -1
}

// rest hands back the remaining tokens.
func (tl *tokenList) rest() []string { return tl.toks }
