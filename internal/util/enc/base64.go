package enc

import (
	"encoding/base64"
	"github.com/pkg/errors"
	"strings"
)

// -------------------------------------------------------

// Base64Decoder reads RFC 4648 base64, with or without padding. The URL-safe alphabet
// (`-` and `_`) is accepted as well.
type Base64Decoder struct {
}

func (b *Base64Decoder) Name() string {
	return "base64"
}

func (b *Base64Decoder) Decode(data string) ([]byte, error) {
	data = strings.TrimRight(strings.TrimSpace(data), "=")
	encoding := base64.RawStdEncoding
	if strings.ContainsAny(data, "-_") {
		encoding = base64.RawURLEncoding
	}
	res, err := encoding.DecodeString(data)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return res, nil
}
