package main

import "github.com/jsphweid/midiroll/cmd"

func main() {
	cmd.Execute()
}
