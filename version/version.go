package version

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

var (
	Commit  = "0000000" // replaced via -ldflags with the short Git commit
	Version = "1970.01" // replaced via -ldflags with the computed version
)

var versionFlag = pflag.Bool("version", false, "print gameday version information and exit")

func Flag() {
	if !pflag.Parsed() {
		panic("version.Flag must be called after pflag.Parse")
	}
	if *versionFlag {
		Print()
		os.Exit(0)
	}
}

func Print() {
	fmt.Fprintf( // ui.Printf would be a dependency cycle
		os.Stderr,
		"gameday version %s-%s\n",
		Version,
		Commit,
	)
}
