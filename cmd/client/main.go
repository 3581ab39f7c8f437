package main

import (
	"github.com/mcoot/coincollector-go/internal/cli"
)

func main() {
	cli.Execute()
}
