package main

import (
	"fmt"

	"github.com/lixenwraith/applog"
	"github.com/spf13/cobra"
)

func newWriteCmd(opts *options) *cobra.Command {
	var severityLabel string

	cmd := &cobra.Command{
		Use:   "write [flags] message...",
		Short: "Write one entry and close the log file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			severity, err := applog.ParseSeverity(severityLabel)
			if err != nil {
				return err
			}

			logger, err := opts.openLogger(cmd)
			if err != nil {
				return err
			}

			words := make([]any, len(args))
			for i, a := range args {
				words[i] = a
			}
			writeErr := logger.Log(severity, words...)
			path := logger.GetPath()

			if err := logger.Shutdown(); err != nil {
				return err
			}
			if writeErr != nil {
				return writeErr
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&severityLabel, "severity", "s", "notification", "notification, warning or error")
	return cmd
}
