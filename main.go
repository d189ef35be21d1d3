package main

import (
	"os"

	"github.com/tonhe/inkboard/cmd"
)

func main() {
	cmd.Execute(os.Args[1:])
}
