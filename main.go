package main

import (
	"github.com/prakoso/storely/cmd"
)

func main() {
	cmd.Start()
}
