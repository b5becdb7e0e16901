package main

import (
	"meetingmind/cmd/meetingmind/cmd"
)

func main() {
	cmd.Execute()
}
