package main

import (
	"peako/cmd"
)

func main() {
	cmd.Execute()
}
