package terragrunt

import (
	"os"
	"path/filepath"

	"github.com/kitfox-games/gameday/fileutil"
)

const (
	ScaffoldDirname       = "scaffold"
	BootstrapDirname      = "bootstrap"
	StackDirname          = "stack"
	ConfigFilename        = "gameday.vars.json"
	RootFilename          = "terragrunt.hcl"
	DestroyScriptFilename = "destroy.sh"
)

// rootHCL is the only configuration written directly instead of generated;
// the scaffolding tool fills in everything beneath it.
const rootHCL = `# generated by gameday; the scaffolding tool owns everything below this directory
locals {
  vars = jsondecode(file("gameday.vars.json"))
}
`

// WriteConfig writes the rendered document and the root configuration stub
// into dirname, creating it as needed. The stub is never overwritten so a
// hand-edited root survives re-runs.
func WriteConfig(d *Document, dirname string) error {
	if err := os.MkdirAll(dirname, 0777); err != nil {
		return err
	}
	if err := d.Write(filepath.Join(dirname, ConfigFilename)); err != nil {
		return err
	}
	return fileutil.WriteFileIfNotExists(
		filepath.Join(dirname, RootFilename),
		[]byte(rootHCL),
	)
}

// destroyScript reverses the bootstrap: pull the state back out of the
// remote backend, then destroy the bootstrap resources. It's written for
// manual recovery and is never executed by gameday.
const destroyScript = `#!/bin/sh
set -e
cd "$(dirname "$0")"
terragrunt init -migrate-state -force-copy --terragrunt-non-interactive --terragrunt-working-dir ` + BootstrapDirname + `
terragrunt destroy -auto-approve --terragrunt-non-interactive --terragrunt-working-dir ` + BootstrapDirname + `
`

// WriteDestroyScript records the manual teardown path alongside the
// generated files.
func WriteDestroyScript(dirname string) error {
	return os.WriteFile(
		filepath.Join(dirname, DestroyScriptFilename),
		[]byte(destroyScript),
		0755,
	)
}
