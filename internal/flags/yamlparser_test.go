package flags

import (
	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

type generalOptions struct {
	Experimental bool   `json:"experimental" long:"experimental" description:"Enable experimental features"`
	File         string `json:"file"         long:"file"`
}

type InputOptions struct {
	Format string `json:"input-format" long:"input-format"`
}

type encodeCommand struct {
	InputOptions `json:",inline"`
	Output       string `json:"output" long:"output"`
}

func (e *encodeCommand) Execute(args []string) error {
	return nil
}

func newParser(t *testing.T) (*flags.Parser, *generalOptions, *encodeCommand) {
	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag)

	general := &generalOptions{}
	_, err := parser.AddGroup("General", "General options", general)
	require.NoErrorf(t, err, "Could not add general group")

	encode := &encodeCommand{}
	_, err = parser.AddCommand("encode", "Encode", "Encode values", encode)
	require.NoErrorf(t, err, "Could not add encode command")

	return parser, general, encode
}

func Test_EmptyParse(t *testing.T) {
	file := "testdata/empty.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag)
	yamlParser := NewYamlParser(parser)
	err := yamlParser.ParseFile(file)

	require.NoErrorf(t, err, "Parsing not successful: %v", file)
}

func Test_GroupParse(t *testing.T) {
	file := "testdata/general.yml"

	parser, general, _ := newParser(t)
	err := NewYamlParser(parser).ParseFile(file)
	require.NoErrorf(t, err, "Parsing not successful: %v", file)

	require.Equal(t, true, general.Experimental, "Invalid reading of boolean value")
	require.Equal(t, "something.txt", general.File, "Invalid reading of string value")
}

func Test_CommandParse_MultipleDocuments(t *testing.T) {
	file := "testdata/encode.yml"

	parser, general, encode := newParser(t)
	err := NewYamlParser(parser).ParseFile(file)
	require.NoErrorf(t, err, "Parsing not successful: %v", file)

	require.Equal(t, "something.txt", general.File)
	require.Equal(t, "hex", encode.Format, "Embedded options were not read")
	require.Equal(t, "json", encode.Output, "Later document did not override the earlier one")
}

func Test_Parse_Reader(t *testing.T) {
	parser, _, encode := newParser(t)
	err := NewYamlParser(parser).Parse(strings.NewReader("encode:\n  output: text\n"))
	require.NoError(t, err)
	require.Equal(t, "text", encode.Output)
}

func Test_InvalidNoCommand(t *testing.T) {
	file := "testdata/invalid_no_command.yml"

	parser, _, _ := newParser(t)
	err := NewYamlParser(parser).ParseFile(file)
	require.Errorf(t, err, "Parsing not successful, expected error but did not get one: %v", file)
}

func Test_InvalidYaml(t *testing.T) {
	parser, _, _ := newParser(t)
	err := NewYamlParser(parser).ParseFile("testdata/invalid_yaml.yml")
	require.Error(t, err)
}

func Test_MissingFile(t *testing.T) {
	parser, _, _ := newParser(t)
	err := NewYamlParser(parser).ParseFile("testdata/does-not-exist.yml")
	require.Error(t, err)
}
