package cmdutil

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

type FormatFlagError string

func (err FormatFlagError) Error() string {
	return fmt.Sprintf("--format %q not supported", string(err))
}

// FormatFlag registers --format on the command line, constrained to
// validFormats.
func FormatFlag(defaultFormat string, validFormats []string) *formatFlag {
	f := &formatFlag{defaultFormat, validFormats}
	flag.Var(f, "format", f.Usage())
	return f
}

type formatFlag struct {
	format       string
	validFormats []string
}

func (f *formatFlag) Set(format string) error {
	for _, v := range f.validFormats {
		if format == v {
			f.format = format
			return nil
		}
	}
	return FormatFlagError(format)
}

func (f *formatFlag) String() string {
	return f.format
}

func (*formatFlag) Type() string {
	return "<format>"
}

func (f *formatFlag) Usage() string {
	var ss []string
	for _, v := range f.validFormats {
		switch v {
		case FormatJSON:
			ss = append(ss, "json")
		case FormatText:
			ss = append(ss, "text (for human-readable plaintext)")
		}
	}
	return fmt.Sprint("output format - ", strings.Join(ss, ", "))
}
