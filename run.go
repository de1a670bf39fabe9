package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"github.com/cgsdk/cppsdkgen/config"
	"github.com/cgsdk/cppsdkgen/plugins"
	"github.com/cgsdk/cppsdkgen/writer"
)

var progressColor = color.New(color.FgGreen, color.Bold)

func run(ctx context.Context, configFile string, logger *slog.Logger, out io.Writer) error {
	if configFile == "" {
		found, err := config.FindConfigFile(".", config.DefaultConfigFiles)
		if err != nil {
			return fmt.Errorf("failed to find config file: %w", err)
		}
		configFile = found
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	sdk, err := cfg.LoadModel(ctx)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}

	emitter := writer.New(cfg.Output.Dir, writer.WithLogger(logger))
	progress := func(_ context.Context, done, remaining int) error {
		if _, err := progressColor.Fprintf(out, "\r[%d/%d] packages", done, done+remaining); err != nil {
			return err
		}
		if remaining == 0 {
			_, err := fmt.Fprintln(out)
			return err
		}
		return nil
	}

	if err := plugins.GenerateCode(ctx, cfg, sdk, emitter, plugins.WithLogger(logger), plugins.WithProgress(progress)); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}
