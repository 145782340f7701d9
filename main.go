package main

import "github.com/alexiusacademia/gouhc/cmd"

func main() {
	cmd.Execute()
}
