package main

import "github.com/pxbridge/pxbridge/cmd"

func main() {
	cmd.Execute()
}
