package main

import "github.com/tessro/unyo/internal/cli"

func main() {
	cli.Execute()
}
