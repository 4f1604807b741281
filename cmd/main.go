package main

import "intervalcoach/internal/cli"

func main() {
	cli.Execute()
}
