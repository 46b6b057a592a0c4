package flags

import (
	"fmt"
	"github.com/goccy/go-yaml"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"io"
	"os"
	"path"
	"reflect"
	"strings"
	"unsafe"
)

// YamlParser is an argument parser for flags package but takes a YAML file instead of a standard INI.
//
// Every top-level key of a document is matched against the commands of the parser (e.g. `encode:`)
// and then against option groups, by their short description (e.g. `general:`). The value under
// the key is decoded directly into the struct backing the command or group, using its `json` tags.
type YamlParser struct {
	parser *flags.Parser
}

// NewYamlParser creates a new yaml parser for a given flags.Parser.
func NewYamlParser(p *flags.Parser) *YamlParser {
	return &YamlParser{
		parser: p,
	}
}

// ParseFile parses flags from an yaml formatted file. The returned errors
// can be of the type flags.Error.
func (y *YamlParser) ParseFile(filename string) error {
	body, err := os.Open(filename)

	if err != nil {
		return errors.WithStack(err)
	}

	defer func() {
		if err := body.Close(); err != nil {
			log.Errorf("Could not close %s: %v", filename, err)
		}
	}()

	// Relative references inside the file are resolved against the file's directory
	return y.Parse(body, yaml.ReferenceDirs(path.Dir(filename)), yaml.RecursiveDir(true))
}

// Parse reads YAML documents one after another from the stream. Multiple documents, separated by
// triple dashes (`---`), are applied in order, so later documents override earlier ones.
func (y *YamlParser) Parse(config io.Reader, opts ...yaml.DecodeOption) error {
	decoder := yaml.NewDecoder(config, opts...)

	for i := 1; ; i++ {
		obj := make(map[string]interface{})
		err := decoder.Decode(&obj)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return errors.Wrapf(err, "Could not decode element at position %v", i)
		}

		if err = y.parseSegment(obj); err != nil {
			return errors.WithStack(err)
		}
	}
}

// parseSegment matches every key of the segment to a command or an option group and decodes
// the value into it.
func (y *YamlParser) parseSegment(obj map[string]interface{}) error {
	for name, val := range obj {
		target := y.find(name)
		if target == nil {
			return errors.WithStack(&flags.Error{
				Type:    flags.ErrUnknownGroup,
				Message: fmt.Sprintf("could not find command or group '%s'", name),
			})
		}

		if conv, err := yaml.Marshal(val); err != nil {
			return errors.WithStack(err)
		} else if err := yaml.Unmarshal(conv, target); err != nil {
			return errors.Wrapf(err, "Could not apply configuration of '%s'", name)
		}
	}
	return nil
}

// find returns the pointer to the data structure of the named command or group
func (y *YamlParser) find(name string) interface{} {
	var group *flags.Group
	if command := y.parser.Find(name); command != nil {
		group = command.Group
	} else {
		for _, g := range y.parser.Groups() {
			if strings.EqualFold(g.ShortDescription, name) {
				group = g
				break
			}
		}
	}
	if group == nil {
		return nil
	}

	// The flags library does not expose the structure it was given, so it's read from the private
	// `data` field.
	dataField := reflect.Indirect(reflect.ValueOf(group)).FieldByName("data")
	dataField = reflect.NewAt(dataField.Type(), unsafe.Pointer(dataField.UnsafeAddr())).Elem()
	return dataField.Elem().Interface()
}
