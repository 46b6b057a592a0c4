package args

type CallbackOption func(string) error

// General holds the options shared by all the commands
var General struct {
	Verbose               []bool         `short:"v" long:"verbose"             env:"VERBOSITY"          description:"Show verbose debug information. Repeat for more detail."`
	ConfigurationFile     CallbackOption `short:"c" long:"config"              env:"CONFIG"             description:"Configuration file (yaml-formatted)" no-ini:"true"`
	ConfigurationFilePath string
	LogFile               *string `short:"l" long:"log-file"            env:"LOG_FILE"           description:"Log file (file will be appended). If not set, defaults to stderr." default:"-"`
	LogFormat             string  `short:"f" long:"log-format"          env:"LOG_FORMAT"         description:"Log file format (json or text)." choice:"text" choice:"json" default:"text"`
	LogColor              string  `short:"C" long:"log-color"           env:"LOG_COLOR"          description:"Should the log output be colored? true, false or auto" choice:"yes" choice:"no" choice:"true" choice:"false" choice:"auto" default:"auto"`
	LogFullTimestamp      bool    `          long:"log-full-timestamp"  env:"LOG_FULL_TIMESTAMP" description:"Display full timestamp in logs."`
	LogReportCaller       bool    `          long:"log-report-caller"   env:"LOG_REPORT_CALLER"  description:"If you wish to add the calling method as a field."`
}

// Input holds the options of commands which read a value to encode
type Input struct {
	Format string `json:"input-format" short:"i" long:"input-format" env:"INPUT_FORMAT" description:"How the value is written on the command line" choice:"raw" choice:"hex" choice:"base32" choice:"base64" choice:"base91" choice:"base128" default:"raw"`
	Prompt bool   `json:"prompt"       short:"p" long:"prompt"                           description:"Read the value from the terminal without echoing it"`
	Stdin  bool   `json:"stdin"        short:"s" long:"stdin"                            description:"Read newline-separated values from the standard input"`
}
