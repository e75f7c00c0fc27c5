package main

import "github.com/alexiusacademia/gofemdesign/cmd"

func main() {
	cmd.Execute()
}
