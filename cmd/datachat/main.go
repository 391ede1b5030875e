package main

import "github.com/datachat-dev/datachat/internal/cli"

func main() {
	cli.Execute()
}
