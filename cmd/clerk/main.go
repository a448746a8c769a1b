// Command clerk is the memo & mail tracking CLI.
package main

import (
	"os"

	"github.com/ilawal010/Clerk/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
