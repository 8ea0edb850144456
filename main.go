package main

import "github.com/CosmoTheDev/prmedia/cmd"

func main() {
	cmd.Execute()
}
