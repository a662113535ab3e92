package main

import "mclang-tool/internal/cli"

func main() {
	cli.Execute()
}
