package main

import (
	"os"

	"cephcsi-tools/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
