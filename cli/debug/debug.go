// Package debug toggles framesplit's debug mode. The state lives in the
// FRAMESPLIT_DEBUG environment variable so that it survives into child
// processes started by "framesplit build".
package debug

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const envDebug = "FRAMESPLIT_DEBUG"

// Enable sets FRAMESPLIT_DEBUG and switches logrus to debug level.
func Enable() {
	os.Setenv(envDebug, "1")
	logrus.SetLevel(logrus.DebugLevel)
}

// Disable clears FRAMESPLIT_DEBUG and switches logrus back to info level.
func Disable() {
	os.Setenv(envDebug, "")
	logrus.SetLevel(logrus.InfoLevel)
}

// IsEnabled reports whether FRAMESPLIT_DEBUG is set to something other
// than "0" or "false".
func IsEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envDebug))) {
	case "", "0", "false":
		return false
	}
	return true
}
