package main

import "fridge-chef/internal/cli"

func main() {
	cli.Execute()
}
