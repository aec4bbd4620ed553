package main

import "project-sync/cmd"

func main() {
	cmd.Execute()
}
