package main

import "github.com/andrescamacho/starhold-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
