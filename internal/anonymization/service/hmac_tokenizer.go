package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base32"
	"strings"

	"github.com/allisson/anonymizer/internal/anonymization/domain"
	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
	"github.com/allisson/anonymizer/internal/records"
)

var tokenEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// HMACTokenizer maps values to opaque lowercase base32 tokens of HMAC-SHA256.
type HMACTokenizer struct {
	key []byte
}

// NewHMACTokenizer creates a tokenizer keyed by secret.
func NewHMACTokenizer(secret keysDomain.Secret) *HMACTokenizer {
	return &HMACTokenizer{key: secret.Bytes()}
}

// Token returns the first length characters of the encoded digest of s. length is
// clamped to the digest length; non-positive lengths yield "".
func (h *HMACTokenizer) Token(s string, length int) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(s))
	encoded := tokenEncoding.EncodeToString(mac.Sum(nil))
	if length <= 0 {
		return ""
	}
	if length < len(encoded) {
		encoded = encoded[:length]
	}
	return strings.ToLower(encoded)
}

// Tokenize applies Token to present values; missing values pass through.
func (h *HMACTokenizer) Tokenize(v records.Value, length int) records.Value {
	if v.IsNull() {
		return v
	}
	return records.NewValue(h.Token(v.String, length))
}

// AnonymizeEmail tokenizes the local part and, unless preserveDomain is set, the
// domain. Values that are not emails are tokenized whole with length characters.
// With legacyLength the non-preserved form is a single token of
// length+len(domain) characters.
func (h *HMACTokenizer) AnonymizeEmail(v records.Value, length int, preserveDomain, legacyLength bool) records.Value {
	if v.IsNull() {
		return v
	}
	local, dom, ok := domain.SplitEmail(v.String)
	if !ok {
		return records.NewValue(h.Token(v.String, length))
	}
	if preserveDomain {
		return records.NewValue(h.Token(local, length) + "@" + dom)
	}
	if legacyLength {
		return records.NewValue(h.Token(v.String, length+len(dom)))
	}
	return records.NewValue(h.Token(local, length) + "@" + h.Token(dom, length))
}
