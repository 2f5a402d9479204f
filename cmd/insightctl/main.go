package main

import "insight-console/internal/cli"

func main() {
	cli.Execute()
}
