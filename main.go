package main

import "github.com/notargets/flatplate/cmd"

func main() {
	cmd.Execute()
}
