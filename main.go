package main

import "github.com/papapumpkin/horizon/cmd"

func main() {
	cmd.Execute()
}
