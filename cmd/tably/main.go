package main

import "github.com/tably-dev/tably/internal/cli"

func main() {
	cli.Execute()
}
