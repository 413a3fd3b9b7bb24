package code

import (
	"fmt"
	"strings"
)

const customPrefix = "set:"

// Alphabet is the character class a cell accepts. Classes are ASCII-only;
// other scripts' digits are not folded into 0-9.
type Alphabet struct {
	name  string
	noun  string
	allow func(rune) bool
}

var (
	// Digits accepts 0-9 and is the default.
	Digits = Alphabet{name: "digits", noun: "digit", allow: isDigit}
	// Alnum accepts ASCII letters and digits.
	Alnum = Alphabet{name: "alnum", noun: "character", allow: func(r rune) bool { return isDigit(r) || isLetter(r) }}
	// Alpha accepts ASCII letters.
	Alpha = Alphabet{name: "alpha", noun: "letter", allow: isLetter}
	// Hex accepts hexadecimal digits in either case.
	Hex = Alphabet{name: "hex", noun: "hex digit", allow: func(r rune) bool {
		return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	}}
)

// ParseAlphabet resolves a configured alphabet name. Besides the named classes
// it accepts "set:<chars>" for an explicit character set.
func ParseAlphabet(value string) (Alphabet, error) {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "", Digits.name:
		return Digits, nil
	case Alnum.name:
		return Alnum, nil
	case Alpha.name:
		return Alpha, nil
	case Hex.name:
		return Hex, nil
	}
	if strings.HasPrefix(strings.ToLower(trimmed), customPrefix) {
		chars := trimmed[len(customPrefix):]
		if chars == "" {
			return Alphabet{}, fmt.Errorf("alphabet %q: empty character set", value)
		}
		set := make(map[rune]struct{}, len(chars))
		for _, r := range chars {
			set[r] = struct{}{}
		}
		return Alphabet{
			name: trimmed,
			noun: "character",
			allow: func(r rune) bool {
				_, ok := set[r]
				return ok
			},
		}, nil
	}
	return Alphabet{}, fmt.Errorf("unknown alphabet %q (want digits, alnum, alpha, hex or set:<chars>)", value)
}

// Name returns the configured name of the alphabet.
func (a Alphabet) Name() string {
	return a.name
}

// Noun describes one accepted character, e.g. "digit".
func (a Alphabet) Noun() string {
	if a.noun == "" {
		return "character"
	}
	return a.noun
}

// Allows reports whether r belongs to the alphabet. The zero Alphabet behaves
// like Digits.
func (a Alphabet) Allows(r rune) bool {
	if a.allow == nil {
		return isDigit(r)
	}
	return a.allow(r)
}

// Filter drops every rune of s outside the alphabet.
func (a Alphabet) Filter(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if a.Allows(r) {
			out = append(out, r)
		}
	}
	return out
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
