package main

import "receiving-manager/cmd"

func main() {
	cmd.Execute()
}
