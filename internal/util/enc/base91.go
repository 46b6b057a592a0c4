package enc

import (
	"github.com/mtraver/base91"
	"github.com/pkg/errors"
)

// cb91 is the standard basE91 alphabet
const cb91 = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!#$%&()*+,./:;<=>?@[]^_`{|}~\""

var stdBase91Encoding = base91.NewEncoding(cb91)

// -------------------------------------------------------

// Base91Decoder reads basE91 text using the standard alphabet
type Base91Decoder struct {
}

func (b *Base91Decoder) Name() string {
	return "base91"
}

func (b *Base91Decoder) Decode(data string) ([]byte, error) {
	res, err := stdBase91Encoding.DecodeString(data)
	if err != nil {
		err = errors.WithStack(err)
		return nil, err
	}
	return res, nil
}
