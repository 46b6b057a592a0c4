package args

import (
	"bufio"
	"fmt"
	"github.com/bokysan/progress-encode/internal/util/enc"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh/terminal"
	"io"
	"os"
	"strings"
)

// ErrNoInput is returned when a command did not receive any value to work on
var ErrNoInput = errors.New("no input given: pass values as arguments, use --stdin or --prompt")

// overridden in tests
var (
	promptFd               = int(os.Stdin.Fd())
	promptOutput io.Writer = os.Stderr
	isTerminal             = terminal.IsTerminal
	readPassword           = terminal.ReadPassword
)

// Values collects the values to encode, in order: the positional arguments, the lines read from
// stdin (with `--stdin`) and the value typed at the prompt (with `--prompt`). Each of them is
// decoded with the selected input format.
func (i *Input) Values(positional []string, stdin io.Reader) ([][]byte, error) {
	decoder, err := enc.FindDecoder(i.Format)
	if err != nil {
		return nil, err
	}

	texts := append([]string{}, positional...)

	if i.Stdin {
		lines, err := readLines(stdin)
		if err != nil {
			return nil, err
		}
		texts = append(texts, lines...)
	}

	if i.Prompt {
		text, err := prompt("Value: ")
		if err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}

	if len(texts) == 0 {
		return nil, errors.WithStack(ErrNoInput)
	}

	res := make([][]byte, len(texts))
	for k, t := range texts {
		if res[k], err = decoder.Decode(t); err != nil {
			return nil, errors.Wrapf(err, "Could not decode value #%v as %v", k+1, decoder.Name())
		}
	}
	log.Debugf("Read %v value(s) using %v input format", len(res), decoder.Name())
	return res, nil
}

// readLines returns every line of the stream without the line terminator (`\n` or `\r\n`)
func readLines(r io.Reader) ([]string, error) {
	res := make([]string, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		res = append(res, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "Could not read standard input")
	}
	return res, nil
}

// prompt reads a single value from the terminal with echo turned off
func prompt(label string) (string, error) {
	if !isTerminal(promptFd) {
		return "", errors.Errorf("--prompt requires an interactive terminal")
	}
	if _, err := fmt.Fprint(promptOutput, label); err != nil {
		return "", errors.WithStack(err)
	}
	value, err := readPassword(promptFd)
	_, _ = fmt.Fprintln(promptOutput)
	if err != nil {
		return "", errors.Wrapf(err, "Could not read from the terminal")
	}
	return string(value), nil
}
