package config

import (
	"errors"
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug                 = "debug"
	ConfigSearchPlies           = "search-plies"
	ConfigTranspositionTable    = "transposition-table"
	ConfigCacheTruncatedResults = "cache-truncated-results"
	ConfigSimRounds             = "sim-rounds"
	ConfigSimSeed               = "sim-seed"
	ConfigSimLogFile            = "sim-log-file"
	ConfigHistoryFile           = "history-file"
	ConfigCPUProfile            = "cpu-profile"
)

// Config holds every setting. Values come, in increasing precedence, from
// defaults, an optional config.yaml, TICTACTOE_* environment variables and
// command-line flags.
type Config struct {
	sync.Mutex
	*viper.Viper
	args []string
}

func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigSearchPlies, 9)
	c.SetDefault(ConfigTranspositionTable, true)
	c.SetDefault(ConfigCacheTruncatedResults, false)
	c.SetDefault(ConfigSimRounds, 1000)
	c.SetDefault(ConfigSimSeed, 0)
	c.SetDefault(ConfigSimLogFile, "")
	c.SetDefault(ConfigHistoryFile, "/tmp/tictactoe_readline.tmp")
	c.SetDefault(ConfigCPUProfile, "")
}

func (c *Config) Load(args []string) error {
	c.Lock()
	defer c.Unlock()
	if c.Viper == nil {
		c.Viper = viper.New()
		c.setDefaults()
	}

	fs := pflag.NewFlagSet("tictactoe", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigSearchPlies, 9, "how many plies the solver searches")
	fs.Bool(ConfigTranspositionTable, true, "remember solved positions")
	fs.Bool(ConfigCacheTruncatedResults, false, "also remember results from searches that ran out of depth")
	fs.Int(ConfigSimRounds, 1000, "number of games in a simulation")
	fs.Uint64(ConfigSimSeed, 0, "seed for the random player; 0 picks one")
	fs.String(ConfigSimLogFile, "", "write a YAML log of every simulated game here")
	fs.String(ConfigHistoryFile, "/tmp/tictactoe_readline.tmp", "shell history file")
	fs.String(ConfigCPUProfile, "", "write a CPU profile here")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetConfigName("config")
	c.SetConfigType("yaml")
	c.AddConfigPath(".")
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	c.SetEnvPrefix("TICTACTOE")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return nil
}

// Args returns what was left on the command line after the flags.
func (c *Config) Args() []string {
	return c.args
}

// SanitizedSettings is every setting, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	c.Lock()
	defer c.Unlock()
	return c.AllSettings()
}
