package main

import "github.com/aria-assistant/cli/cmd"

func main() {
	cmd.Execute()
}
