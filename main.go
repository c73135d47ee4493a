package main

import "github.com/rskv-p/rtrie/cmd"

func main() {
	cmd.Execute()
}
