package main

import "josephlewis.net/smallsh/cmd"

func main() {
	cmd.Execute()
}
