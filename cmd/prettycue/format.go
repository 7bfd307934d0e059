package main

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"prettycue/internal/config"
	"prettycue/internal/cuesheet"
	"prettycue/internal/faults"
	"prettycue/internal/fileutil"
	"prettycue/internal/logging"
	"prettycue/internal/render"
)

type formatOptions struct {
	output    string
	overwrite bool
	encoding  string
	backup    bool
}

// validate checks flag combinations without touching the filesystem.
func (o formatOptions) validate() error {
	if o.overwrite && strings.TrimSpace(o.output) != "" {
		return faults.Wrap(faults.KindConfiguration, "flags", "--output and --overwrite cannot be used together", nil)
	}
	if o.backup && !o.overwrite {
		return faults.Wrap(faults.KindConfiguration, "flags", "--backup requires --overwrite", nil)
	}
	return validateEncodingLabel(o.encoding)
}

func (o formatOptions) mode() string {
	switch {
	case o.overwrite:
		return "overwrite"
	case o.output != "":
		return "output"
	default:
		return "stdout"
	}
}

func runFormat(cmd *cobra.Command, ctx *commandContext, input string, opts formatOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	base, closeLog, err := ctx.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	logger := logging.NewComponentLogger(base, "cli")

	sheet, err := loadSheet(input, inputEncoding(cfg, opts.encoding), logger)
	if err != nil {
		return err
	}
	data, err := render.Bytes(sheet, render.WithLogger(base))
	if err != nil {
		return err
	}

	switch opts.mode() {
	case "overwrite":
		writeOpts := fileutil.WriteOptions{Lock: cfg.Output.Lock}
		if opts.backup || cfg.Output.Backup {
			writeOpts.BackupPath = input + ".bak"
		}
		return commit(input, data, writeOpts, logger)
	case "output":
		return commit(opts.output, data, fileutil.WriteOptions{Lock: cfg.Output.Lock}, logger)
	default:
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return faults.Wrap(faults.KindOutputAccess, "write stdout", "", err)
		}
		return nil
	}
}

func inputEncoding(cfg *config.Config, flagValue string) string {
	if label := strings.TrimSpace(flagValue); label != "" {
		return label
	}
	return cfg.Input.Encoding
}

// loadSheet reads, decodes and parses the cue sheet at path.
func loadSheet(path, encodingLabel string, logger *slog.Logger) (*cuesheet.Sheet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, faults.Wrap(faults.KindInputAccess, "read "+path, "", err)
	}
	text, err := cuesheet.Decode(raw, encodingLabel)
	if err != nil {
		return nil, faults.Wrap(faults.KindInputAccess, "decode "+path, "", err)
	}
	logger.Debug("input decoded",
		logging.String(logging.FieldPath, path),
		logging.String(logging.FieldEncoding, encodingLabel),
		logging.Int("bytes", len(raw)),
	)
	return cuesheet.ParseString(text)
}

func commit(path string, data []byte, opts fileutil.WriteOptions, logger *slog.Logger) error {
	if err := fileutil.WriteAtomic(path, data, opts); err != nil {
		logger.Debug("commit failed", logging.String(logging.FieldPath, path), logging.Error(err))
		message := ""
		if errors.Is(err, fileutil.ErrLocked) {
			message = "another prettycue run is writing this file"
		}
		return faults.Wrap(faults.KindOutputAccess, "write "+path, message, err)
	}
	attrs := []logging.Attr{logging.String(logging.FieldPath, path)}
	if opts.BackupPath != "" {
		attrs = append(attrs, logging.String("backup", opts.BackupPath))
	}
	logger.Info("sheet written", logging.Args(attrs...)...)
	return nil
}
