package main

import "github.com/grindboard/practice-service/cmd"

func main() {
	cmd.Execute()
}
