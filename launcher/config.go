package launcher

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/kitfox-games/gameday/fileutil"
)

const DefaultConfigFilename = "gameday.toml"

// Config is the launch service's own configuration. Credentials are never
// configured here; they come from the process environment only.
type Config struct {
	// Addr is the listen address. Defaults to ":" + $PORT, or ":8080".
	Addr string `toml:"addr"`

	// Command is the opaque launch command. A name prefix, when supplied by
	// the caller, is appended as the final argument. Defaults to this
	// executable running `run --non-interactive`.
	Command []string `toml:"command"`

	// Dir is the working directory for the launch command.
	Dir string `toml:"dir"`
}

// LoadConfig reads pathname, or DefaultConfigFilename if pathname is empty
// and the default exists, and fills in defaults for whatever isn't set.
func LoadConfig(pathname string) (Config, error) {
	var config Config
	if pathname == "" && fileutil.Exists(DefaultConfigFilename) {
		pathname = DefaultConfigFilename
	}
	if pathname != "" {
		if _, err := toml.DecodeFile(pathname, &config); err != nil {
			return config, err
		}
	}
	if config.Addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		config.Addr = ":" + port
	}
	if len(config.Command) == 0 {
		executable, err := os.Executable()
		if err != nil {
			return config, err
		}
		config.Command = []string{executable, "run", "--non-interactive"}
	}
	return config, nil
}
