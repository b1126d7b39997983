// Command minirustc is the command-line front end over pkg/minirust: it
// drives the tokenize/parse/check/ir/compile stages from files or stdin
// and renders their results as text or JSON.
package main

import (
	"fmt"
	"os"

	"github.com/birukG09/MiniRust-Compiler/cmd/minirustc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
