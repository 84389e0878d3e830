package internal

import (
	"os"
	"strings"
)

const appName = "activelabel"

// IsDebugMode reports whether ACTIVELABEL_DEBUG is set to a true value
func IsDebugMode() bool {
	isDebug := strings.ToLower(os.Getenv("ACTIVELABEL_DEBUG"))
	return isDebug == "true" || isDebug == "1"
}
