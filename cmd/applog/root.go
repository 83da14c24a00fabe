package main

import (
	"github.com/lixenwraith/applog"
	"github.com/spf13/cobra"
)

// options holds persistent flags shared by all commands
type options struct {
	configFile string
	directory  string
	fileName   string
	millis     bool
	console    bool
	truncate   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "applog",
		Short: "applog appends severity-tagged entries to an application log file",
		Long: `applog appends severity-tagged entries to an application log file.
Entries are synced to disk every few messages or after a time interval,
and the file is always flushed and closed on exit.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "TOML config file with an [applog] table")
	flags.StringVarP(&opts.directory, "directory", "d", "", "log directory (default: user data directory)")
	flags.StringVarP(&opts.fileName, "file", "f", "", "log file name")
	flags.BoolVar(&opts.millis, "ms", false, "include milliseconds in timestamps")
	flags.BoolVar(&opts.console, "console", false, "echo entries to stdout")
	flags.BoolVar(&opts.truncate, "truncate", false, "truncate the log file instead of appending")

	rootCmd.AddCommand(
		newWriteCmd(opts),
		newPipeCmd(opts),
		newConfigCmd(opts),
	)
	return rootCmd
}

// loadConfig merges the config file, if any, with flags set on the command line
func (o *options) loadConfig(cmd *cobra.Command) (*applog.Config, error) {
	cfg := applog.DefaultConfig()
	if o.configFile != "" {
		var err error
		cfg, err = applog.NewConfigFromFile(o.configFile)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("directory") {
		cfg.Directory = o.directory
	}
	if flags.Changed("file") {
		cfg.FileName = o.fileName
	}
	if flags.Changed("ms") {
		cfg.ShowMilliseconds = o.millis
	}
	if flags.Changed("truncate") {
		cfg.Truncate = o.truncate
	}
	// Console echo is opt-in for the CLI
	cfg.EnableConsole = o.console

	return cfg, cfg.Validate()
}

// openLogger builds a logger from the merged configuration
func (o *options) openLogger(cmd *cobra.Command) (*applog.Logger, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := applog.NewLogger()
	if err := logger.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	return logger, nil
}
