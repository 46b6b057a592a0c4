package encode

import (
	"fmt"
	"github.com/bokysan/progress-encode/internal/args"
	"github.com/bokysan/progress-encode/internal/corpus"
	"github.com/bokysan/progress-encode/internal/logging"
	"github.com/bokysan/progress-encode/internal/util/enc"
	"github.com/pkg/errors"
	"io"
	"os"
)

// Command prints the ENCODE value of every input
type Command struct {
	args.Input `json:",inline"`

	Output string `json:"output" short:"o" long:"output" env:"OUTPUT" description:"Output format. 'json' and 'yaml' produce a corpus which can be checked with 'verify --corpus'." choice:"text" choice:"json" choice:"yaml" default:"text"`

	stdin  io.Reader
	stdout io.Writer
}

func NewCommand() *Command {
	return &Command{
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

func (c *Command) Execute(positional []string) error {
	logging.SetupLogging()

	values, err := c.Input.Values(positional, c.stdin)
	if err != nil {
		return err
	}

	encoder := &enc.ProgressEncoder{}
	switch c.Output {
	case "json", "yaml":
		return corpus.Generate(encoder, values...).Write(c.stdout, corpus.Format(c.Output))
	default:
		for _, v := range values {
			if _, err := fmt.Fprintln(c.stdout, encoder.Encode(v)); err != nil {
				return errors.WithStack(err)
			}
		}
	}
	return nil
}
