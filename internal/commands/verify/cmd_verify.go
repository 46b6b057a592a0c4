package verify

import (
	"fmt"
	"github.com/bokysan/progress-encode/internal/args"
	"github.com/bokysan/progress-encode/internal/corpus"
	"github.com/bokysan/progress-encode/internal/logging"
	"github.com/bokysan/progress-encode/internal/util"
	"github.com/bokysan/progress-encode/internal/util/enc"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"io"
	"os"
)

// ExitMismatch is the exit code used when a value does not match
const ExitMismatch = 1

// Command checks values against stored ENCODE values
type Command struct {
	args.Input `json:",inline"`

	Expected string `json:"expected" short:"e" long:"expected" env:"EXPECTED" description:"The stored ENCODE value the input(s) should produce"`
	Corpus   string `json:"corpus"              long:"corpus"                 description:"Check every case of a YAML/JSON corpus file instead"`

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

	if c.Corpus != "" {
		if c.Expected != "" {
			return &flags.Error{
				Type:    flags.ErrInvalidChoice,
				Message: "`--expected` and `--corpus` cannot be used together",
			}
		}
		return c.verifyCorpus()
	}
	if c.Expected == "" {
		return &flags.Error{
			Type:    flags.ErrRequired,
			Message: "one of `--expected` or `--corpus` is required",
		}
	}
	if len(c.Expected) != enc.EncodedLen {
		log.Warnf("Expected value %q is not %v characters long and can never match", c.Expected, enc.EncodedLen)
	}

	values, err := c.Input.Values(positional, c.stdin)
	if err != nil {
		return err
	}

	failed := 0
	for i, v := range values {
		if enc.Verify(v, c.Expected) {
			log.Infof("Value #%v matches", i+1)
		} else {
			log.Errorf("Value #%v does not match %q", i+1, c.Expected)
			failed++
		}
	}
	if failed > 0 {
		return util.NewExitError(ExitMismatch, "%v of %v value(s) do not match", failed, len(values))
	}
	return c.ok()
}

func (c *Command) verifyCorpus() error {
	cases, err := corpus.LoadFile(c.Corpus)
	if err != nil {
		return err
	}

	mismatches := corpus.Mismatches(cases.Check(&enc.ProgressEncoder{}))
	for _, m := range mismatches {
		log.Errorf("%v", m)
	}
	if len(mismatches) > 0 {
		return util.NewExitError(ExitMismatch, "%v of %v case(s) in %v do not match", len(mismatches), len(cases), c.Corpus)
	}

	log.Infof("All %v case(s) in %v match", len(cases), c.Corpus)
	return c.ok()
}

func (c *Command) ok() error {
	_, err := fmt.Fprintln(c.stdout, "OK")
	return errors.WithStack(err)
}
