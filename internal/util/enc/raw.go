package enc

import (
	"encoding/hex"
	"github.com/pkg/errors"
	"strings"
)

// -------------------------------------------------------

// RawDecoder does not do any translation whatsoever, the bytes of the string are the input
type RawDecoder struct {
}

func (r *RawDecoder) Name() string {
	return "raw"
}

func (r *RawDecoder) Decode(data string) ([]byte, error) {
	return []byte(data), nil
}

// -------------------------------------------------------

// HexDecoder reads two hex digits per byte. Whitespace is ignored, so `de ad be ef` works too.
type HexDecoder struct {
}

func (h *HexDecoder) Name() string {
	return "hex"
}

func (h *HexDecoder) Decode(data string) ([]byte, error) {
	res, err := hex.DecodeString(strings.Join(strings.Fields(data), ""))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return res, nil
}
