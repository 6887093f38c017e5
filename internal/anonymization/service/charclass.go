package service

import (
	"unicode"
)

// Alphabets for each character class.
const (
	DigitAlphabet = "0123456789"
	LowerAlphabet = "abcdefghijklmnopqrstuvwxyz"
	UpperAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// AlphanumericAlphabet is the symbol order used for mixed alphanumeric values.
	AlphanumericAlphabet = LowerAlphabet + UpperAlphabet + DigitAlphabet
)

// CharClass is the class of a single character.
type CharClass uint8

const (
	ClassOther CharClass = iota
	ClassDigit
	ClassLower
	ClassUpper
)

// ClassOf returns the class of r using Unicode categories.
func ClassOf(r rune) CharClass {
	switch {
	case unicode.IsDigit(r):
		return ClassDigit
	case unicode.IsLower(r):
		return ClassLower
	case unicode.IsUpper(r):
		return ClassUpper
	default:
		return ClassOther
	}
}

// Alphabet returns the output alphabet for the class, empty for ClassOther.
func (c CharClass) Alphabet() string {
	switch c {
	case ClassDigit:
		return DigitAlphabet
	case ClassLower:
		return LowerAlphabet
	case ClassUpper:
		return UpperAlphabet
	default:
		return ""
	}
}

// Tag is the single-byte class marker mixed into shim messages.
func (c CharClass) Tag() byte {
	switch c {
	case ClassDigit:
		return 'd'
	case ClassLower:
		return 'l'
	case ClassUpper:
		return 'u'
	default:
		return 0
	}
}

// Composition describes the character make-up of a whole value.
type Composition int

const (
	// CompositionArbitrary covers empty values and anything with non-alphanumerics.
	CompositionArbitrary Composition = iota
	CompositionDigits
	CompositionLower
	CompositionUpper
	CompositionAlphanumeric
)

// Compose classifies s. The checks run in order digits, lower, upper, alphanumeric.
func Compose(s string) Composition {
	if s == "" {
		return CompositionArbitrary
	}
	digits, lower, upper, alnum := true, true, true, true
	for _, r := range s {
		c := ClassOf(r)
		digits = digits && c == ClassDigit
		lower = lower && c == ClassLower
		upper = upper && c == ClassUpper
		alnum = alnum && (c != ClassOther || unicode.IsLetter(r) || unicode.IsNumber(r))
	}
	switch {
	case digits:
		return CompositionDigits
	case lower:
		return CompositionLower
	case upper:
		return CompositionUpper
	case alnum:
		return CompositionAlphanumeric
	default:
		return CompositionArbitrary
	}
}
