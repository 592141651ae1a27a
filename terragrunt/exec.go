package terragrunt

import (
	"fmt"
	"path/filepath"

	"github.com/kitfox-games/gameday/pipeline"
)

// Steps returns the fixed external-tool sequence for a run rooted at
// dirname: generate the scaffold from the rendered configuration, apply the
// bootstrap unit against local state, migrate that state into the backend
// the bootstrap just created, and (unless skipped) apply the full stack.
func Steps(dirname, scaffoldRef string, applyStack bool) []pipeline.Step {
	bootstrap := filepath.Join(dirname, BootstrapDirname)
	steps := []pipeline.Step{
		{
			Name:    "scaffold",
			Dir:     dirname,
			Command: "boilerplate",
			Args: []string{
				"--template-url", fmt.Sprintf("%s//scaffold?ref=%s", ModulesSource, scaffoldRef),
				"--output-folder", ".",
				"--var-file", ConfigFilename,
				"--non-interactive",
			},
		},
		{
			Name:    "bootstrap-apply",
			Dir:     bootstrap,
			Command: "terragrunt",
			Args:    []string{"apply", "-auto-approve", "--terragrunt-non-interactive"},
		},
		{
			Name:    "state-migrate",
			Dir:     bootstrap,
			Command: "terragrunt",
			Args:    []string{"init", "-migrate-state", "-force-copy", "--terragrunt-non-interactive"},
		},
	}
	if applyStack {
		steps = append(steps, pipeline.Step{
			Name:    "stack-apply",
			Dir:     filepath.Join(dirname, StackDirname),
			Command: "terragrunt",
			Args:    []string{"run-all", "apply", "--terragrunt-non-interactive"},
		})
	}
	return steps
}
