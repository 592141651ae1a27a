package env

import (
	"fmt"

	"github.com/kitfox-games/gameday/cmdutil"
	"github.com/kitfox-games/gameday/environ"
	"github.com/kitfox-games/gameday/jsonutil"
	"github.com/kitfox-games/gameday/ui"
	"github.com/kitfox-games/gameday/version"
	flag "github.com/spf13/pflag"
)

func Main() {
	format := cmdutil.FormatFlag(
		cmdutil.FormatText,
		[]string{cmdutil.FormatJSON, cmdutil.FormatText},
	)
	flag.Usage = func() {
		ui.Print("Usage: gameday env [-format <format>]")
		flag.PrintDefaults()
	}
	flag.Parse()
	version.Flag()

	statuses := environ.Statuses()
	switch format.String() {
	case cmdutil.FormatJSON:
		ui.Print(jsonutil.MustString(statuses))
	case cmdutil.FormatText:
		cells := ui.MakeTableCells(2, len(statuses)+1)
		cells[0][0], cells[0][1] = "Variable", "Set"
		for i, status := range statuses {
			cells[i+1][0] = status.Variable
			cells[i+1][1] = fmt.Sprintf("%t", status.IsSet)
		}
		ui.Table(cells)
	}
}
