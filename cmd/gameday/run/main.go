package run

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kitfox-games/gameday/azutil"
	"github.com/kitfox-games/gameday/environ"
	"github.com/kitfox-games/gameday/githubutil"
	"github.com/kitfox-games/gameday/naming"
	"github.com/kitfox-games/gameday/pipeline"
	"github.com/kitfox-games/gameday/terragrunt"
	"github.com/kitfox-games/gameday/ui"
	"github.com/kitfox-games/gameday/version"
	flag "github.com/spf13/pflag"
)

func Main() {
	autoApprove := flag.Bool("auto-approve", false, "provision without waiting for confirmation")
	dirname := flag.String("dir", terragrunt.ScaffoldDirname, "directory in which to render and apply the scaffold")
	noApply := flag.Bool("no-apply", false, "stop after the state bootstrap without applying the full stack")
	flag.CommandLine.AddFlagSet(ui.InteractivityFlagSet())
	flag.Usage = func() {
		ui.Print("Usage: gameday run [-auto-approve|-no-apply] [-dir <dir>] [<name-prefix>]")
		flag.PrintDefaults()
	}
	flag.Parse()
	version.Flag()

	// Fail before any other work if a required credential is absent.
	if err := environ.Check(); err != nil {
		ui.Fatal(err)
	}

	var name naming.Name
	if s := flag.Arg(0); s != "" {
		name = ui.Must2(naming.Parse(s))
	} else {
		name = naming.Generate(nil)
		ui.Printf("chose the name %s for this game environment", name)
	}

	ctx := context.Background()

	ui.Spin("verifying access to the Azure subscription")
	subscription, err := azutil.CheckSubscription(ctx, os.Getenv(environ.SubscriptionID))
	if err != nil {
		ui.Fatal(ui.StopErr(err))
	}
	ui.Stopf("subscription %s", subscription)

	ui.Spin("verifying the GitHub token")
	login, err := githubutil.CheckToken(
		ctx,
		os.Getenv(environ.GitHubOrg),
		os.Getenv(environ.GitHubToken),
	)
	if err != nil {
		ui.Fatal(ui.StopErr(err))
	}
	ui.Stopf("authenticated as %s", login)

	if !*autoApprove && os.Getenv(environ.AutoApprove) != "true" {
		ok, err := ui.Confirmf(
			"provision the game environment %s in subscription %s? (yes/no)",
			name,
			subscription,
		)
		if err != nil {
			ui.Fatal(err)
		}
		if !ok {
			ui.Fatal("not provisioning a game environment")
		}
	}

	scaffoldRef := environ.Ref(environ.ScaffoldRef, environ.DefaultScaffoldRef)
	document := ui.Must2(terragrunt.Orchestrator(terragrunt.Inputs{
		Name:           name,
		GitHubOrg:      os.Getenv(environ.GitHubOrg),
		GitHubToken:    os.Getenv(environ.GitHubToken),
		SubscriptionID: os.Getenv(environ.SubscriptionID),
		StackRef:       environ.Ref(environ.StackRef, environ.DefaultStackRef),
		ScaffoldRef:    scaffoldRef,
	}))
	ui.Must(terragrunt.WriteConfig(document, *dirname))
	ui.Printf("wrote %s", filepath.Join(*dirname, terragrunt.ConfigFilename))

	if _, err := pipeline.Run(
		ctx,
		os.Stdout,
		terragrunt.Steps(*dirname, scaffoldRef, !*noApply),
	); err != nil {
		ui.Fatal(err)
	}

	ui.Must(terragrunt.WriteDestroyScript(*dirname))
	ui.Printf("wrote %s; run it to tear this environment down", filepath.Join(*dirname, terragrunt.DestroyScriptFilename))

	ui.Printf("game environment %s is ready", name)
	ui.Printf("its companion repository is <https://github.com/%s/%s>", os.Getenv(environ.GitHubOrg), name.Repository())
}
