package terragrunt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kitfox-games/gameday/fileutil"
)

func TestWriteConfig(t *testing.T) {
	dirname := filepath.Join(t.TempDir(), ScaffoldDirname)
	document, err := Orchestrator(testInputs())
	if err != nil {
		t.Fatal(err)
	}

	if err := WriteConfig(document, dirname); err != nil {
		t.Fatal(err)
	}
	if !fileutil.Exists(filepath.Join(dirname, ConfigFilename)) {
		t.Error("no rendered configuration")
	}
	if !fileutil.Exists(filepath.Join(dirname, RootFilename)) {
		t.Error("no root configuration stub")
	}

	// A hand-edited root must survive re-renders.
	edited := []byte("# hand-edited\n")
	if err := os.WriteFile(filepath.Join(dirname, RootFilename), edited, 0666); err != nil {
		t.Fatal(err)
	}
	if err := WriteConfig(document, dirname); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(dirname, RootFilename))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != string(edited) {
		t.Errorf("%#v", string(b))
	}
}

func TestWriteDestroyScript(t *testing.T) {
	dirname := t.TempDir()
	if err := WriteDestroyScript(dirname); err != nil {
		t.Fatal(err)
	}

	pathname := filepath.Join(dirname, DestroyScriptFilename)
	fi, err := os.Stat(pathname)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0755 {
		t.Errorf("mode %v", fi.Mode())
	}

	b, err := os.ReadFile(pathname)
	if err != nil {
		t.Fatal(err)
	}
	var commands []string
	for _, line := range fileutil.ToLines(b) {
		if strings.HasPrefix(line, "terragrunt ") {
			commands = append(commands, line)
		}
	}
	if len(commands) != 2 {
		t.Fatalf("%#v", commands)
	}
	if !strings.Contains(commands[0], "-migrate-state") {
		t.Errorf("first command doesn't pull state back out of the backend: %s", commands[0])
	}
	if !strings.Contains(commands[1], "destroy") {
		t.Errorf("second command doesn't destroy the bootstrap: %s", commands[1])
	}
}

func TestSteps(t *testing.T) {
	steps := Steps("scaffold", "v1.2.0", false)
	names := make([]string, len(steps))
	for i, step := range steps {
		names[i] = step.Name
	}
	if len(names) != 3 || names[0] != "scaffold" || names[1] != "bootstrap-apply" || names[2] != "state-migrate" {
		t.Fatalf("%#v", names)
	}

	steps = Steps("scaffold", "v1.2.0", true)
	if len(steps) != 4 || steps[3].Name != "stack-apply" {
		t.Fatalf("%#v", steps)
	}
	if !strings.Contains(strings.Join(steps[0].Args, " "), "ref=v1.2.0") {
		t.Errorf("%#v", steps[0].Args)
	}
}
