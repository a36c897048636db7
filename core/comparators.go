package core

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ComparatorKind is the closed set of byte classes a Transition can
// test.
type ComparatorKind int

const (
	Everything ComparatorKind = iota // Matches every byte.
	Exact                            // Matches Comparator.Value only.
	Digit                            // '0' through '9'.
	Whitespace                       // Space, tab, CR, or LF.
	Delimiter                        // Space or double quote.
)

var comparatorNames = [...]string{
	Everything: "*",
	Exact:      "exact",
	Digit:      "digit",
	Whitespace: "ws",
	Delimiter:  "delim",
}

func (k ComparatorKind) String() string {
	if k < 0 || int(k) >= len(comparatorNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return comparatorNames[k]
}

// Comparator classifies one input byte, optionally against a bound
// Value.  Value is only consulted by Exact.
//
// Comparators are pure.
type Comparator struct {
	Kind  ComparatorKind
	Value byte
}

// Any returns the catch-all Comparator.
func Any() Comparator { return Comparator{Kind: Everything} }

// Char returns a Comparator that matches exactly c.
func Char(c byte) Comparator { return Comparator{Kind: Exact, Value: c} }

// Digits returns a Comparator that matches ASCII decimal digits.
func Digits() Comparator { return Comparator{Kind: Digit} }

// Space returns a Comparator that matches whitespace.
func Space() Comparator { return Comparator{Kind: Whitespace} }

// Delim returns a Comparator that matches keyword delimiters.
func Delim() Comparator { return Comparator{Kind: Delimiter} }

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool { return '0' <= c && c <= '9' }

// IsWhitespace reports whether c is a space, tab, CR, or LF.
func IsWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// IsDelimiter reports whether c can terminate a keyword.
func IsDelimiter(c byte) bool { return c == ' ' || c == '"' }

// Matches reports whether the given byte is in this Comparator's
// class.
func (c Comparator) Matches(sym byte) bool {
	switch c.Kind {
	case Everything:
		return true
	case Exact:
		return sym == c.Value
	case Digit:
		return IsDigit(sym)
	case Whitespace:
		return IsWhitespace(sym)
	case Delimiter:
		return IsDelimiter(sym)
	}
	return false
}

// String renders Exact comparators as a quoted byte and the others by
// kind name.  The result can be read back with ParseComparator.
func (c Comparator) String() string {
	if c.Kind == Exact {
		return Quote(c.Value)
	}
	return c.Kind.String()
}

// Quote renders a symbol in single quotes with Go escapes for
// non-printing bytes.
func Quote(c byte) string {
	return strconv.QuoteRuneToASCII(rune(c))
}

// ParseComparator is the inverse of Comparator.String.
func ParseComparator(s string) (Comparator, error) {
	if strings.HasPrefix(s, "'") {
		r, _, tail, err := strconv.UnquoteChar(strings.TrimSuffix(s[1:], "'"), '\'')
		if err != nil || tail != "" || r > 0xff {
			return Comparator{}, errors.New("bad comparator " + s)
		}
		return Char(byte(r)), nil
	}
	for k, name := range comparatorNames {
		if k != int(Exact) && name == s {
			return Comparator{Kind: ComparatorKind(k)}, nil
		}
	}
	return Comparator{}, errors.New("unknown comparator " + s)
}

func (c Comparator) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Comparator) UnmarshalJSON(bs []byte) error {
	var s string
	if err := json.Unmarshal(bs, &s); err != nil {
		return err
	}
	x, err := ParseComparator(s)
	if err != nil {
		return err
	}
	*c = x
	return nil
}

// MarshalYAML makes YAML output match JSON output.
func (c Comparator) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}
