package main

import (
	"fmt"
	"os"

	"github.com/psygate/bitvectors/cmd/bitcli"
)

func main() {
	if err := bitcli.Cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
