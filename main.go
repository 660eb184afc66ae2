package main

import "github.com/brogergvhs/toond/cmd"

func main() {
	cmd.Execute()
}
