package main

import (
	"fmt"
	"io"
	"reflect"

	"github.com/lixenwraith/applog"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			writeConfig(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

// writeConfig prints cfg under an [applog] table using its toml tags
func writeConfig(w io.Writer, cfg *applog.Config) {
	fmt.Fprintln(w, "[applog]")

	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("toml")
		if tag == "" {
			continue
		}
		switch f := v.Field(i); f.Kind() {
		case reflect.String:
			fmt.Fprintf(w, "  %s = %q\n", tag, f.String())
		default:
			fmt.Fprintf(w, "  %s = %v\n", tag, f.Interface())
		}
	}
}
