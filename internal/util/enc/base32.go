package enc

import (
	"encoding/base32"
	"github.com/pkg/errors"
	"strings"
)

var base32Unpadded = base32.StdEncoding.WithPadding(base32.NoPadding)

// -------------------------------------------------------

// Base32Decoder reads RFC 4648 base32. Padding is optional and lowercase letters are accepted,
// as people tend to type them that way.
type Base32Decoder struct {
}

func (b *Base32Decoder) Name() string {
	return "base32"
}

func (b *Base32Decoder) Decode(data string) ([]byte, error) {
	data = strings.TrimRight(strings.ToUpper(strings.TrimSpace(data)), "=")
	res, err := base32Unpadded.DecodeString(data)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return res, nil
}
