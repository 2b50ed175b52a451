package main

import (
	"os"

	"github.com/stockroom-dev/stockroom/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
