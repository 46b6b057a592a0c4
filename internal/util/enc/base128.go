package enc

import (
	"github.com/pkg/errors"
	"go.chromium.org/luci/common/data/base128"
)

// -------------------------------------------------------

// Base128Decoder reads base128 text: every 7 input bits are stored in one (7-bit clean) character.
type Base128Decoder struct {
}

func (b *Base128Decoder) Name() string {
	return "base128"
}

func (b *Base128Decoder) Decode(data string) ([]byte, error) {
	res, err := base128.DecodeString(data)
	if err != nil {
		err = errors.WithStack(err)
		return nil, err
	}
	return res, nil
}
