package main

import "github.com/docatlas/docatlas/internal/cli"

func main() {
	cli.Execute()
}
