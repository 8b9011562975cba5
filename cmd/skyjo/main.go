package main

import "github.com/mcoot/skyjoscore/internal/cli"

func main() {
	cli.Execute()
}
