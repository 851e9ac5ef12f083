package main

import (
	"github.com/iaww/iaww-server-go/internal/cli"
)

func main() {
	cli.Execute()
}
