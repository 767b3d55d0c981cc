package main

import "github.com/Tillerino/sovt/cmd/sovt/cmd"

func main() {
	cmd.Execute()
}
