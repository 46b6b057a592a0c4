package logging

import (
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
)

// callerDepth is the number of frames between the hook and the code which produced the log line
const callerDepth = 9

// ContextHook will add go source information (file, line, func)
type ContextHook struct{}

// Levels defines which logging levels fire the hook. In our case, all levels.
func (hook ContextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire adds the source location of the logging call to the entry.
func (hook ContextHook) Fire(entry *logrus.Entry) error {
	if pc, file, line, ok := runtime.Caller(callerDepth); ok {
		entry.Data["file"] = path.Base(file)
		entry.Data["line"] = line
		entry.Data["func"] = path.Base(runtime.FuncForPC(pc).Name())
	}

	return nil
}
