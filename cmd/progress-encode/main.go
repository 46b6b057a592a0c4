package main

import (
	"fmt"
	"github.com/bokysan/progress-encode/internal/args"
	"github.com/bokysan/progress-encode/internal/commands/encode"
	"github.com/bokysan/progress-encode/internal/commands/serve"
	"github.com/bokysan/progress-encode/internal/commands/verify"
	"github.com/bokysan/progress-encode/internal/commands/version"
	peFlags "github.com/bokysan/progress-encode/internal/flags"
	"github.com/bokysan/progress-encode/internal/util"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"os"
	"path"
)

const (
	// ErrConfigFileDoesNotExist is raised when configuration file cannot be found
	ErrConfigFileDoesNotExist = flags.ErrInvalidTag + 1
)

// ProgressEncode is the main executable
type ProgressEncode struct {
	parser *flags.Parser
}

// NewProgressEncode will create a new instance of ProgressEncode and initialize the parser
func NewProgressEncode() *ProgressEncode {
	executablePath := path.Base(os.Args[0])

	pe := &ProgressEncode{
		parser: flags.NewNamedParser(executablePath, flags.HelpFlag|flags.PrintErrors),
	}

	pe.setupGeneral()
	pe.addCommand("version", "Print the version", "Print the application version and exit", &version.Command{})
	pe.addCommand("encode", "Encode values",
		"Print the 16 character legacy ENCODE value of every input, one per line", encode.NewCommand())
	pe.addCommand("verify", "Check values against stored ENCODE values",
		"Check that the input(s) produce the expected ENCODE value, or check a whole corpus of reference values. "+
			"Exits with code 1 on a mismatch.", verify.NewCommand())
	pe.addCommand("serve", "Run the HTTP service",
		"Serve POST /encode and POST /verify over HTTP until interrupted", serve.NewCommand())

	return pe
}

// setupGeneral will configure general options
func (pe *ProgressEncode) setupGeneral() {
	if _, err := pe.parser.AddGroup("General", "General options", &args.General); err != nil {
		err = errors.WithStack(err)
		util.MustErrorNilOrExit(err)
	}
}

// addCommand registers a sub-command
func (pe *ProgressEncode) addCommand(name, short, long string, cmd interface{}) {
	_, err := pe.parser.AddCommand(name, short, long, cmd)
	util.MustErrorNilOrExit(err)
}

// main reads the configuration file, if given, and runs the selected command
func main() {

	pe := NewProgressEncode()
	args.General.ConfigurationFile = func(file string) error {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			message := fmt.Sprintf("Configuration file %s does not exist.", file)
			util.MustErrorNilOrExit(&flags.Error{
				Type:    ErrConfigFileDoesNotExist,
				Message: message,
			})
		}

		yamlParser := peFlags.NewYamlParser(pe.parser)

		args.General.ConfigurationFilePath = file
		return yamlParser.ParseFile(file)
	}

	_, err := pe.parser.Parse()
	util.MustErrorNilOrExit(err)

}
