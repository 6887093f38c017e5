package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"hash"
	"strings"
	"unicode/utf8"

	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
)

// ShimCipher is the always-available format-preserving fallback. Each digit, lower
// and upper letter is replaced by a keyed choice from its class alphabet; other
// characters are kept. It is deterministic but not a bijection.
type ShimCipher struct {
	key []byte
}

// NewShimCipher creates a shim keyed by secret.
func NewShimCipher(secret keysDomain.Secret) *ShimCipher {
	return &ShimCipher{key: secret.Bytes()}
}

// Transform maps s character by character under salt. Bytes that are not valid
// UTF-8 are copied unchanged and count as one position each.
func (s *ShimCipher) Transform(value string, salt []byte) string {
	if value == "" {
		return ""
	}
	mac := hmac.New(sha256.New, s.key)

	var b strings.Builder
	b.Grow(len(value))
	for pos, rest := 0, value; rest != ""; pos++ {
		r, size := utf8.DecodeRuneInString(rest)
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(rest[0])
		} else {
			b.WriteRune(s.mapRune(mac, r, pos, salt))
		}
		rest = rest[size:]
	}
	return b.String()
}

func (s *ShimCipher) mapRune(mac hash.Hash, r rune, pos int, salt []byte) rune {
	class := ClassOf(r)
	alphabet := class.Alphabet()
	if alphabet == "" {
		return r
	}

	mac.Reset()
	mac.Write([]byte{class.Tag(), byte(pos & 0xFF)})
	if r < 0x80 {
		mac.Write([]byte{byte(r)})
	}
	mac.Write(salt)
	digest := mac.Sum(nil)
	return rune(alphabet[int(digest[0])%len(alphabet)])
}

// EncryptNumeric implements FormatCipher.
func (s *ShimCipher) EncryptNumeric(digits string, tweak []byte) (string, error) {
	return s.Transform(digits, tweak), nil
}

// EncryptString implements FormatCipher. The alphabet is ignored; output characters
// follow each input character's class.
func (s *ShimCipher) EncryptString(_ string, value string, tweak []byte) (string, error) {
	return s.Transform(value, tweak), nil
}
