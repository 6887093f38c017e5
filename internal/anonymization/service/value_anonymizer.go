package service

import (
	"github.com/allisson/anonymizer/internal/anonymization/domain"
	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
	"github.com/allisson/anonymizer/internal/records"
)

// CipherFactory builds the true format-preserving cipher for a secret. A nil
// factory, or a nil cipher, selects the shim.
type CipherFactory func(secret keysDomain.Secret) (FormatCipher, error)

// FF1CipherFactory is the CipherFactory backed by FF1.
func FF1CipherFactory(secret keysDomain.Secret) (FormatCipher, error) {
	c, err := NewFF1Cipher(secret)
	if err != nil {
		return nil, err
	}
	return c, nil
}

type hashAnonymizer struct {
	tokenizer *HMACTokenizer
	opts      domain.Options
}

func (h *hashAnonymizer) AnonymizeValue(
	_ string,
	class domain.ColumnClassification,
	v records.Value,
) records.Value {
	if class == domain.ColumnEmail {
		return h.tokenizer.AnonymizeEmail(v, h.opts.HMACEmailLength, h.opts.EmailPreserveDomain, h.opts.LegacyEmailLength)
	}
	return h.tokenizer.Tokenize(v, h.opts.HMACTokenLength)
}

type formatPreservingAnonymizer struct {
	transformer    *FormatPreservingTransformer
	preserveDomain bool
}

func (f *formatPreservingAnonymizer) AnonymizeValue(
	column string,
	class domain.ColumnClassification,
	v records.Value,
) records.Value {
	if class == domain.ColumnEmail {
		return f.transformer.AnonymizeEmail(v, f.preserveDomain)
	}
	return f.transformer.Transform(v, column)
}

// NewValueAnonymizer returns the ValueAnonymizer for opts.Mode. A cipher factory
// error is not fatal; the transformer then runs on the shim alone.
func NewValueAnonymizer(
	secret keysDomain.Secret,
	opts domain.Options,
	cipherFactory CipherFactory,
) (ValueAnonymizer, error) {
	mode, err := domain.ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}

	switch mode {
	case domain.ModeHash:
		return &hashAnonymizer{tokenizer: NewHMACTokenizer(secret), opts: opts}, nil
	default:
		var cipher FormatCipher
		if cipherFactory != nil {
			if c, err := cipherFactory(secret); err == nil {
				cipher = c
			}
		}
		return &formatPreservingAnonymizer{
			transformer:    NewFormatPreservingTransformer(secret, cipher),
			preserveDomain: opts.EmailPreserveDomain,
		}, nil
	}
}
