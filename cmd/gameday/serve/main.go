package serve

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/kitfox-games/gameday/environ"
	"github.com/kitfox-games/gameday/launcher"
	"github.com/kitfox-games/gameday/ui"
	"github.com/kitfox-games/gameday/version"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

func Main() {
	addr := flag.String("addr", "", "listen address (overrides the config file)")
	configPath := flag.String("config", "", "path to the launch service config file (default gameday.toml if present)")
	envFile := flag.String("env-file", "", "load environment tokens from this .env file before starting")
	flag.Usage = func() {
		ui.Print("Usage: gameday serve [-addr <addr>] [-config <pathname>] [-env-file <pathname>]")
		flag.PrintDefaults()
	}
	flag.Parse()
	version.Flag()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			logger.Fatal().Err(err).Str("pathname", *envFile).Msg("failed to load env file")
		}
	}

	config, err := launcher.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if *addr != "" {
		config.Addr = *addr
	}

	// The server starts anyway so the status page can show what's missing,
	// but launches are refused until the tokens are set.
	if missing := environ.Missing(); len(missing) > 0 {
		logger.Warn().Strs("missing", missing).Msg("launches will fail until these environment variables are set")
	}

	server := launcher.NewServer(config, logger)
	logger.Info().Str("addr", config.Addr).Msg("listening")
	if err := http.ListenAndServe(config.Addr, server.Handler()); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
