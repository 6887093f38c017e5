package service

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/allisson/anonymizer/internal/anonymization/domain"
	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
	"github.com/allisson/anonymizer/internal/records"
)

// FormatPreservingTransformer maps values to values of the same length and
// character-class layout. It tries the configured cipher first and uses the shim
// with the same tweak whenever the cipher cannot serve the value.
type FormatPreservingTransformer struct {
	cipher FormatCipher
	shim   *ShimCipher
}

// NewFormatPreservingTransformer creates a transformer. A nil cipher means shim only.
func NewFormatPreservingTransformer(secret keysDomain.Secret, cipher FormatCipher) *FormatPreservingTransformer {
	return &FormatPreservingTransformer{cipher: cipher, shim: NewShimCipher(secret)}
}

// Transform transforms a present value under tweak; missing values pass through.
func (t *FormatPreservingTransformer) Transform(v records.Value, tweak string) records.Value {
	if v.IsNull() {
		return v
	}
	return records.NewValue(t.TransformString(v.String, []byte(tweak)))
}

// TransformString transforms s under tweak. Values that are not valid UTF-8 always
// take the shim, which keeps the invalid bytes as they are.
func (t *FormatPreservingTransformer) TransformString(s string, tweak []byte) string {
	if t.cipher == nil || !utf8.ValidString(s) {
		return t.shim.Transform(s, tweak)
	}

	var (
		out string
		err error
	)
	switch Compose(s) {
	case CompositionDigits:
		out, err = t.cipher.EncryptNumeric(s, tweak)
	case CompositionLower:
		out, err = t.cipher.EncryptString(LowerAlphabet, s, tweak)
	case CompositionUpper:
		out, err = t.cipher.EncryptString(UpperAlphabet, s, tweak)
	case CompositionAlphanumeric:
		out, err = t.cipher.EncryptString(AlphanumericAlphabet, s, tweak)
	default:
		alphabet := observedAlphabet(s)
		if len([]rune(alphabet)) < 2 {
			return t.shim.Transform(s, tweak)
		}
		out, err = t.cipher.EncryptString(alphabet, s, tweak)
	}
	if err != nil || len([]rune(out)) != len([]rune(s)) {
		return t.shim.Transform(s, tweak)
	}
	return out
}

// AnonymizeEmail transforms the local part under the email-local tweak. With
// preserveDomain the domain is kept; otherwise each dot-separated label is
// transformed under the email-domain tweak. Non-email values are transformed whole
// under the email tweak.
func (t *FormatPreservingTransformer) AnonymizeEmail(v records.Value, preserveDomain bool) records.Value {
	if v.IsNull() {
		return v
	}
	local, dom, ok := domain.SplitEmail(v.String)
	if !ok {
		return records.NewValue(t.TransformString(v.String, []byte(domain.TweakEmail)))
	}

	anonLocal := t.TransformString(local, []byte(domain.TweakEmailLocal))
	if preserveDomain {
		return records.NewValue(anonLocal + "@" + dom)
	}

	labels := strings.Split(dom, ".")
	for i, label := range labels {
		labels[i] = t.TransformString(label, []byte(domain.TweakEmailDomain))
	}
	return records.NewValue(anonLocal + "@" + strings.Join(labels, "."))
}

// observedAlphabet returns the sorted distinct non-whitespace runes of s.
func observedAlphabet(s string) string {
	seen := make(map[rune]struct{})
	var runes []rune
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		runes = append(runes, r)
	}
	slices.Sort(runes)
	return string(runes)
}
