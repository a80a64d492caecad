package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/diceduel/diceduel/internal/factory"
)

type config struct {
	bind          string
	port          int
	storage       string
	dataDir       string
	redisURL      string
	signingKey    string
	tokenTTL      time.Duration
	sessionTTL    time.Duration
	sweepInterval time.Duration
	verbose       bool
}

func (c *config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	switch c.storage {
	case factory.StorageTypeJSONFile, factory.StorageTypeMemory, factory.StorageTypeRedis:
	default:
		return fmt.Errorf("invalid storage backend: %q", c.storage)
	}
	if c.storage == factory.StorageTypeRedis && c.redisURL == "" {
		return fmt.Errorf("--redis-url is required with --storage=redis")
	}
	return nil
}

func newCmd(cfg *config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("DICEDUEL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "diceduel",
		Short:         "A dice duel game server with live event broadcasting.",
		Args:          cobra.ExactArgs(0),
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "", "address to bind to (env: DICEDUEL_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 3001, "port to listen on (env: DICEDUEL_PORT)")
	fs.StringVar(&cfg.storage, "storage", factory.StorageTypeJSONFile, "storage backend: jsonfile, memory or redis (env: DICEDUEL_STORAGE)")
	fs.StringVar(&cfg.dataDir, "data-dir", "data", "directory for the jsonfile backend (env: DICEDUEL_DATA_DIR)")
	fs.StringVar(&cfg.redisURL, "redis-url", "", "redis connection URL for the redis backend (env: DICEDUEL_REDIS_URL)")
	fs.StringVar(&cfg.signingKey, "signing-key", "", "key for signing auth tokens (env: DICEDUEL_SIGNING_KEY)")
	fs.DurationVar(&cfg.tokenTTL, "token-ttl", 24*time.Hour, "lifetime of issued auth tokens (env: DICEDUEL_TOKEN_TTL)")
	fs.DurationVar(&cfg.sessionTTL, "session-ttl", time.Hour, "time before abandoned game sessions are evicted (env: DICEDUEL_SESSION_TTL)")
	fs.DurationVar(&cfg.sweepInterval, "sweep-interval", 5*time.Minute, "how often abandoned sessions are swept (env: DICEDUEL_SWEEP_INTERVAL)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log at debug level (env: DICEDUEL_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("diceduel v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
