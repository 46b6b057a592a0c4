package version

import (
	"github.com/bokysan/progress-encode/internal/version"
	"github.com/k0kubun/go-ansi"
)

const (
	Bold           = "\x1b[1m"
	Reset          = "\x1b[0m"
	LightGray      = "\x1b[37m"
	DarkGray       = "\x1b[90m"
	White          = "\x1b[97m"
	BackgroundBlue = "\x1b[44m"
)

// Command prints the build information
type Command struct {
}

func (i *Command) String() string {
	return "Version details"
}

//goland:noinspection GoUnhandledErrorResult
func (i *Command) Execute(args []string) error {
	PrintVersion()
	if version.GitTag != "" {
		ansi.Printf(DarkGray+" Git tag     "+White+"%+v"+Reset+"\n", version.GitTag)
	}
	if version.GitBranch != "" {
		ansi.Printf(DarkGray+" Git branch  "+White+"%+v"+Reset+"\n", version.GitBranch)
	}
	if version.GitState != "" {
		ansi.Printf(DarkGray+" Git state   "+White+"%+v"+Reset+"\n", version.GitState)
	}
	ansi.Printf(DarkGray+" Go version  "+White+"%+v"+Reset+"\n", version.RuntimeVersion())
	return nil
}

//goland:noinspection GoUnhandledErrorResult
func PrintVersion() {
	ansi.Printf(Bold+BackgroundBlue+
		LightGray+" PROGRESS-ENCODE - legacy ENCODE values "+White+"%s"+LightGray+" "+Reset+"\n",
		version.AppVersion())
	if version.BuildDate != "" {
		ansi.Printf(DarkGray+" Built on    "+White+"%+v"+Reset+"\n", version.BuildDate)
	}
	if version.GitCommit != "" {
		ansi.Printf(DarkGray+" Git version "+White+"%+v"+Reset+"\n", version.GitCommit)
	}
}
