package cmd

import (
	"fmt"
	"io"
	"os"
)

// readSource resolves a subcommand's source argument: an inline -e
// expression, a file path, or (when neither is given) stdin — mirroring
// the teacher's lex.go/parse.go input-resolution order.
func readSource(expr string, args []string) (source, label string, err error) {
	switch {
	case expr != "":
		return expr, "<eval>", nil
	case len(args) == 1:
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(data), args[0], nil
	default:
		data, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", readErr)
		}
		return string(data), "<stdin>", nil
	}
}
