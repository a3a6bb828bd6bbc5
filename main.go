package main

import "deskbooker/cmd"

func main() {
	cmd.Execute()
}
