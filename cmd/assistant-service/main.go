package main

import (
	"os"

	"github.com/agents052025/assistant-be-ios/assistantservice"
)

func main() {
	if err := assistantservice.Run(); err != nil {
		os.Exit(1)
	}
}
