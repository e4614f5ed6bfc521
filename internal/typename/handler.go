package typename

import (
	"fmt"
	"io"

	"go.followtheprocess.codes/hue"
)

const (
	errorStyle    = hue.Red | hue.Bold
	positionStyle = hue.Bold
)

// PrettyConsoleHandler returns an [ErrorHandler] that writes styled diagnostics
// to w, one per line.
func PrettyConsoleHandler(w io.Writer) ErrorHandler {
	return func(pos Position, msg string) {
		fmt.Fprintf(w, "%s: %s: %s\n", errorStyle.Text("error"), positionStyle.Text(pos.String()), msg)
	}
}
