// Package corpus reads, writes and checks reference vectors: pairs of an input and the value the
// legacy ENCODE function produced for it.
//
// Files are YAML documents holding a list of cases. JSON is a subset of YAML, so the reference
// `tests.json` files (`[{"encoded": "...", "input": [1, 2, 3]}]`) load as they are. Instead of a
// list of byte values, an input may be given as a string using the `text` key:
//
//	- name: example password
//	  text: my-passw0rd
//	  encoded: lEsdklcFaOOjlbma
package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/bokysan/progress-encode/internal/util/enc"
	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"io"
	"io/ioutil"
	"os"
	"unicode"
	"unicode/utf8"
)

// Format is the serialization used by Write
type Format string

const (
	FormatYaml Format = "yaml"
	FormatJson Format = "json"
)

// Case is a single reference vector
type Case struct {
	Name    string
	Input   []byte
	Encoded string
}

// Corpus is an ordered list of reference vectors
type Corpus []Case

// fileCase is the on-disk representation of a Case
type fileCase struct {
	Name    string  `json:"name,omitempty"  yaml:"name,omitempty"`
	Text    *string `json:"text,omitempty"  yaml:"text,omitempty"`
	Input   *[]int  `json:"input,omitempty" yaml:"input,omitempty"`
	Encoded string  `json:"encoded"         yaml:"encoded"`
}

// String returns the name of the case or, when unnamed, its input
func (c Case) String() string {
	if c.Name != "" {
		return c.Name
	}
	if utf8.Valid(c.Input) {
		return fmt.Sprintf("%q", c.Input)
	}
	return fmt.Sprintf("%x", c.Input)
}

// LoadFile reads the corpus from the given YAML or JSON file
func LoadFile(filename string) (Corpus, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("Could not close %s: %v", filename, err)
		}
	}()

	c, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not load corpus from %v", filename)
	}
	return c, nil
}

// Load reads the corpus from the stream. Every case must carry exactly one of `input` and `text`
// and an encoded value of the proper length.
func Load(r io.Reader) (Corpus, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Corpus{}, nil
	}

	cases, err := decode(data)
	if err != nil {
		return nil, err
	}

	res := make(Corpus, 0, len(cases))
	for i, fc := range cases {
		c, err := fc.toCase()
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid case at position %v", i)
		}
		res = append(res, c)
	}
	return res, nil
}

// decode reads JSON documents with the JSON decoder, as the YAML one does not handle all of the JSON
// string escapes. Anything else, including flow style YAML lists, is read as YAML.
func decode(data []byte) ([]fileCase, error) {
	var cases []fileCase
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		err := json.Unmarshal(data, &cases)
		if err == nil {
			return cases, nil
		}
		var syntaxError *json.SyntaxError
		if !errors.As(err, &syntaxError) {
			return nil, errors.Wrapf(err, "Could not decode corpus")
		}
		cases = nil
	}

	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, errors.Wrapf(err, "Could not decode corpus")
	}
	return cases, nil
}

func (fc fileCase) toCase() (Case, error) {
	c := Case{
		Name:    fc.Name,
		Encoded: fc.Encoded,
	}

	switch {
	case fc.Text != nil && fc.Input != nil:
		return c, errors.Errorf("both 'input' and 'text' are set")
	case fc.Text != nil:
		c.Input = []byte(*fc.Text)
	case fc.Input != nil:
		c.Input = make([]byte, len(*fc.Input))
		for i, v := range *fc.Input {
			if v < 0 || v > 255 {
				return c, errors.Errorf("input value %v at index %v is not a byte", v, i)
			}
			c.Input[i] = byte(v)
		}
	default:
		return c, errors.Errorf("one of 'input' or 'text' is required")
	}

	if len(c.Encoded) != enc.EncodedLen {
		return c, errors.Errorf("encoded value %q must be %v characters long", c.Encoded, enc.EncodedLen)
	}
	return c, nil
}

func (c Case) toFile() fileCase {
	fc := fileCase{
		Name:    c.Name,
		Encoded: c.Encoded,
	}
	if text := string(c.Input); isPlainText(text) {
		fc.Text = &text
	} else {
		input := make([]int, len(c.Input))
		for i, b := range c.Input {
			input[i] = int(b)
		}
		fc.Input = &input
	}
	return fc
}

// isPlainText returns true if the input can be written as `text` and read back unchanged. Control
// characters and strings YAML would read as something else (`null`, `- x`) are written as bytes.
func isPlainText(text string) bool {
	if !utf8.ValidString(text) {
		return false
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return false
		}
	}

	data, err := yaml.Marshal([]fileCase{{Text: &text}})
	if err != nil {
		return false
	}
	var back []fileCase
	if err := yaml.Unmarshal(data, &back); err != nil {
		return false
	}
	return len(back) == 1 && back[0].Text != nil && *back[0].Text == text
}

// Generate builds a corpus by encoding all the inputs with the encoder
func Generate(encoder enc.Encoder, inputs ...[]byte) Corpus {
	res := make(Corpus, len(inputs))
	for i, in := range inputs {
		res[i] = Case{
			Input:   in,
			Encoded: encoder.Encode(in),
		}
	}
	return res
}

// Check encodes the input of every case and compares it with the recorded value. All mismatches
// are returned in a multierror, each of them a *Mismatch.
func (c Corpus) Check(encoder enc.Encoder) error {
	var errs error
	for i, tc := range c {
		actual := encoder.Encode(tc.Input)
		if actual != tc.Encoded {
			errs = multierror.Append(errs, &Mismatch{
				Index:   i,
				Case:    tc,
				Actual:  actual,
				Encoder: encoder.Name(),
			})
			continue
		}
		log.Tracef("Case %v (%v) OK", i, tc)
	}
	return errs
}

// Write serializes the corpus in a form Load can read back
func (c Corpus) Write(w io.Writer, format Format) error {
	cases := make([]fileCase, len(c))
	for i, tc := range c {
		cases[i] = tc.toFile()
	}

	var data []byte
	var err error
	switch format {
	case FormatJson:
		data, err = json.MarshalIndent(cases, "", "  ")
		data = append(data, '\n')
	case FormatYaml:
		data, err = yaml.Marshal(cases)
	default:
		return errors.Errorf("Unsupported corpus format: %v", format)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = w.Write(data)
	return errors.WithStack(err)
}
