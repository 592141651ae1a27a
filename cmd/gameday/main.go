package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/kitfox-games/gameday/cmd/gameday/env"
	"github.com/kitfox-games/gameday/cmd/gameday/run"
	"github.com/kitfox-games/gameday/cmd/gameday/serve"
	"github.com/kitfox-games/gameday/ui"
	"github.com/kitfox-games/gameday/version"
)

var dispatchMap = map[string]func(){
	"env":   env.Main,
	"run":   run.Main,
	"serve": serve.Main,
}

func main() {
	if len(os.Args) < 2 {
		usage(1)
	}
	switch os.Args[1] {
	case "-h", "-help", "--help":
		usage(0)
	case "-version", "--version":
		version.Print()
		os.Exit(0)
	}

	f, ok := dispatchMap[os.Args[1]]
	if !ok {
		ui.Fatalf("%s is not a gameday command", os.Args[1])
	}

	// Shift the subcommand out of the way so that each subcommand's flag
	// parsing sees only its own arguments.
	os.Args = append([]string{fmt.Sprintf("gameday-%s", os.Args[1])}, os.Args[2:]...)
	f()
}

func usage(status int) {
	ui.Print("gameday provisions throwaway cloud game environments")
	ui.Print("the following commands are available:")
	var commands []string
	for subcommand := range dispatchMap {
		commands = append(commands, subcommand)
	}
	sort.Strings(commands)
	for _, command := range commands {
		ui.Printf("\tgameday %s", command)
	}
	os.Exit(status)
}
