package main

import (
	"github.com/spf13/cobra"

	"prettycue/internal/cuesheet"
	"prettycue/internal/faults"
)

const version = "0.1.0"

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var opts formatOptions

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:   "prettycue INPUT",
		Short: "Normalize and pretty-print CD cue sheets",
		Long: "prettycue rewrites a cue sheet into a fixed layout: disc PERFORMER, TITLE,\n" +
			"REM DATE, GENRE and FILE lines followed by sequentially numbered tracks.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := requireInput(args); err != nil {
				return err
			}
			return opts.validate()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, ctx, args[0], opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level override (debug, info, warn, error)")

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "Write the normalized sheet to this path")
	flags.BoolVar(&opts.overwrite, "overwrite", false, "Replace INPUT with the normalized sheet")
	flags.StringVar(&opts.encoding, "encoding", "", "Input encoding: auto or a WHATWG label such as shift_jis")
	flags.BoolVar(&opts.backup, "backup", false, "Keep a copy of INPUT at INPUT.bak when overwriting")

	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func requireInput(args []string) error {
	switch len(args) {
	case 1:
		if args[0] == "" {
			return faults.Wrap(faults.KindConfiguration, "arguments", "INPUT path is empty", nil)
		}
		return nil
	case 0:
		return faults.Wrap(faults.KindConfiguration, "arguments", "an INPUT cue sheet path is required", nil)
	default:
		return faults.Wrap(faults.KindConfiguration, "arguments", "exactly one INPUT cue sheet path is accepted", nil)
	}
}

func validateEncodingLabel(label string) error {
	if _, err := cuesheet.LookupEncoding(label); err != nil {
		return faults.Wrap(faults.KindConfiguration, "--encoding", "", err)
	}
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
