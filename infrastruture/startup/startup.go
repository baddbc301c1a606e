// Package startup reports failures that happen while the service is being
// wired, before any logger can be relied on.
package startup

import (
	"fmt"
	"io"
	"os"
)

var (
	Stderr io.Writer = os.Stderr
	Exit             = os.Exit
)

// Fatalf writes the message to Stderr and exits with status 1.
func Fatalf(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, format+"\n", args...)
	Exit(1)
}
