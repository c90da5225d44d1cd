package config

import (
	"os"
	"time"
)

type envVar struct {
	name  string
	desc  string
	apply func(*Config, string)
}

var supportedEnvVars = []envVar{
	{
		// Only here for documentation purposes.  Does not override any values in the config as this environment variable
		// points to where the config should be loaded.  It is handled prior to loading the config.
		name:  "ANICARDS_CONFIG_PATH",
		desc:  "Sets the path to the config file.  Default: ./anicards.yaml",
		apply: func(c *Config, s string) {}, // Special case, no-op
	},
	{
		name:  "ANICARDS_CONFIG_SERVER_ADDR",
		desc:  "Sets the HTTP listen address.  Default: :8080",
		apply: func(c *Config, s string) { c.Server.Addr = s },
	},
	{
		name:  "ANICARDS_CONFIG_STORE_DIR",
		desc:  "Sets the card store directory.  Default: ./data",
		apply: func(c *Config, s string) { c.Store.Dir = s },
	},
	{
		name:  "ANICARDS_CONFIG_ANILIST_ENDPOINT",
		desc:  "Sets the AniList GraphQL endpoint.  Default: https://graphql.anilist.co",
		apply: func(c *Config, s string) { c.AniList.Endpoint = s },
	},
	{
		name:  "ANICARDS_CONFIG_JOBS_REFRESH_SCHEDULE",
		desc:  "Sets the cron schedule for the user refresh job.  Empty disables it.  Default: 0 3 * * *",
		apply: func(c *Config, s string) { c.Jobs.RefreshSchedule = s },
	},
	{
		name: "ANICARDS_CONFIG_SERVER_SHUTDOWN_TIMEOUT",
		desc: "Sets the graceful shutdown timeout as a Go duration.  Default: 15s",
		apply: func(c *Config, s string) {
			if d, err := time.ParseDuration(s); err == nil {
				c.Server.ShutdownTimeout = d
			}
		},
	},
	{
		name:  "ANICARDS_CONFIG_LOGGING_LEVEL",
		desc:  "Sets the logging level.  One of: debug, info, warn, error.  Default: info",
		apply: func(c *Config, s string) { c.Logging.Level = s },
	},
	{
		name:  "ANICARDS_CONFIG_LOGGING_FILE_PATH",
		desc:  "Sets the logging file path.  Default: stdout",
		apply: func(c *Config, s string) { c.Logging.FilePath = s },
	},
}

func applyEnvVarOverrides(c *Config) {
	for _, envVar := range supportedEnvVars {
		if value := os.Getenv(envVar.name); value != "" {
			envVar.apply(c, value)
		}
	}
}
