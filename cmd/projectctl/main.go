package main

import "github.com/yigit/projecthub/internal/cli"

func main() {
	cli.Execute()
}
