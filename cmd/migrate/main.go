// Command migrate applies or rolls back the postgres schema. The single
// argument picks the action: up, down, drop or step-up.
package main

import (
	"log"
	"os"

	"nestling/config"
	"nestling/helper"
)

var actions = map[string]func(*config.Config) error{
	"up":      helper.Up,
	"down":    helper.Down,
	"drop":    helper.Drop,
	"step-up": helper.StepUp,
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Migration direction (up/down) is required")
	}

	action, ok := actions[os.Args[1]]
	if !ok {
		log.Fatal("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}

	if err := action(config.Get()); err != nil {
		log.Fatal(err)
	}
}
