package main

import "tutorai-be/cmd/tutorchat/commands"

func main() {
	commands.Execute()
}
