package logging

import (
	"github.com/bokysan/progress-encode/internal/args"
	"github.com/bokysan/progress-encode/internal/util"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"os"
	"strings"
)

// SetupLogging configures logrus from the general options. Commands call it first thing in
// their Execute.
func SetupLogging() {
	SetVerbosity(args.General.Verbose)

	if args.General.LogReportCaller {
		log.AddHook(&ContextHook{})
	}

	if args.General.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{
			FieldMap: log.FieldMap{
				log.FieldKeyTime:  "timestamp",
				log.FieldKeyLevel: "@level",
				log.FieldKeyMsg:   "message",
				log.FieldKeyFunc:  "@caller",
			},
		})
	} else {
		log.SetFormatter(&log.TextFormatter{
			ForceColors:   IsColorForced(),
			DisableColors: IsColorDisabled(),
			FullTimestamp: args.General.LogFullTimestamp,
		})
	}
	log.SetReportCaller(args.General.LogReportCaller)

	if args.General.LogFile != nil && len(*args.General.LogFile) > 0 && *args.General.LogFile != "-" {
		f, err := os.OpenFile(*args.General.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			util.MustErrorNilOrExit(errors.Wrapf(err, "Could not open log file %v", *args.General.LogFile))
		}
		log.SetOutput(f)
	}

	log.Debugf("Verbosity level: %v", VerbosityName())
	if args.General.ConfigurationFilePath != "" {
		log.Debugf("Configuration read from %v", args.General.ConfigurationFilePath)
	}
}

// IsColorForced returns true if `--log-color` explicitly enables colors
func IsColorForced() bool {
	color := strings.TrimSpace(strings.ToLower(args.General.LogColor))
	return color == "yes" || color == "true" || color == "1"
}

// IsColorDisabled returns true if `--log-color` explicitly disables colors
func IsColorDisabled() bool {
	color := strings.TrimSpace(strings.ToLower(args.General.LogColor))
	return color == "no" || color == "false" || color == "0"
}
