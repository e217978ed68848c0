package main

import "github.com/LeJamon/goHederad/internal/cli"

func main() {
	cli.Execute()
}
