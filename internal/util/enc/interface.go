package enc

import (
	"github.com/pkg/errors"
	"sort"
	"strings"
)

// ErrUnknownFormat is returned by FindDecoder when no input format is registered under the given name
var ErrUnknownFormat = errors.New("unknown input format")

type Encoder interface {
	// Name is the user-friendly name of this encoder
	Name() string
	// Code represents the short (one-letter) code for the encoder
	Code() byte

	// Encode will take an array of bytes and encode it using this encoder
	Encode([]byte) string

	// Return a list of test patterns for the specified encoding
	TestPatterns() []string
}

// Decoder turns text given on the command line or in a request back into the bytes to encode.
type Decoder interface {
	// Name is the name of the input format, as used in `--input-format`
	Name() string

	// Decode converts the textual representation into raw bytes
	Decode(string) ([]byte, error)
}

// DefaultFormat is used when no input format is specified
const DefaultFormat = "raw"

var decoders = map[string]Decoder{
	"raw":     &RawDecoder{},
	"hex":     &HexDecoder{},
	"base32":  &Base32Decoder{},
	"base64":  &Base64Decoder{},
	"base91":  &Base91Decoder{},
	"base128": &Base128Decoder{},
}

// FindDecoder returns the decoder for the named input format. Lookup is case-insensitive and an
// empty name selects DefaultFormat.
func FindDecoder(name string) (Decoder, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultFormat
	}
	if d, ok := decoders[name]; ok {
		return d, nil
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q (known: %v)", name, strings.Join(FormatNames(), ", "))
}

// FormatNames lists registered input formats in alphabetical order
func FormatNames() []string {
	res := make([]string, 0, len(decoders))
	for k := range decoders {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// DecodeInput is a shortcut for FindDecoder followed by Decode.
func DecodeInput(format, data string) ([]byte, error) {
	d, err := FindDecoder(format)
	if err != nil {
		return nil, err
	}
	return d.Decode(data)
}
