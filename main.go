package main

import "github.com/AnkushinDaniil/shgcavity/cmd"

func main() {
	cmd.Execute()
}
