package service

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/capitalone/fpe/ff1"
	"golang.org/x/crypto/hkdf"

	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
)

// numerals are the FF1 digit symbols, in order, for radices up to 62.
const numerals = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const ff1KeyInfo = "anonymizer/ff1/v1"

var (
	// ErrAlphabetTooSmall is returned for alphabets with fewer than two symbols.
	ErrAlphabetTooSmall = errors.New("alphabet must have at least 2 symbols")
	// ErrAlphabetTooLarge is returned for alphabets with more symbols than numerals.
	ErrAlphabetTooLarge = errors.New("alphabet exceeds supported radix")
	// ErrSymbolNotInAlphabet is returned when the value uses a symbol outside the alphabet.
	ErrSymbolNotInAlphabet = errors.New("value contains symbol outside alphabet")
	// ErrInvalidUTF8 is returned for values that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("value is not valid utf-8")
)

// FF1Cipher enciphers strings with NIST FF1 under an AES-256 key derived from the secret.
type FF1Cipher struct {
	key []byte
}

// NewFF1Cipher derives the FF1 key from secret with HKDF-SHA256.
func NewFF1Cipher(secret keysDomain.Secret) (*FF1Cipher, error) {
	ikm := secret.Bytes()
	defer keysDomain.Zero(ikm)

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, nil, []byte(ff1KeyInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive ff1 key: %w", err)
	}
	return &FF1Cipher{key: key}, nil
}

// EncryptNumeric implements FormatCipher.
func (c *FF1Cipher) EncryptNumeric(digits string, tweak []byte) (string, error) {
	return c.EncryptString(DigitAlphabet, digits, tweak)
}

// EncryptString implements FormatCipher.
func (c *FF1Cipher) EncryptString(alphabet, value string, tweak []byte) (string, error) {
	if !utf8.ValidString(value) {
		return "", ErrInvalidUTF8
	}
	symbols := []rune(alphabet)
	radix := len(symbols)
	if radix < 2 {
		return "", ErrAlphabetTooSmall
	}
	if radix > len(numerals) {
		return "", ErrAlphabetTooLarge
	}

	index := make(map[rune]int, radix)
	for i, r := range symbols {
		index[r] = i
	}

	var in strings.Builder
	for _, r := range value {
		i, ok := index[r]
		if !ok {
			return "", ErrSymbolNotInAlphabet
		}
		in.WriteByte(numerals[i])
	}

	cipher, err := ff1.NewCipher(radix, len(tweak), c.key, tweak)
	if err != nil {
		return "", fmt.Errorf("failed to create ff1 cipher: %w", err)
	}
	out, err := cipher.Encrypt(in.String())
	if err != nil {
		return "", fmt.Errorf("failed to encrypt: %w", err)
	}

	var b strings.Builder
	for _, n := range out {
		i := strings.IndexRune(numerals[:radix], n)
		if i < 0 {
			return "", fmt.Errorf("unexpected ff1 numeral %q", n)
		}
		b.WriteRune(symbols[i])
	}
	return b.String(), nil
}
