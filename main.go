package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
)

const version = "1.0.0-alpha1"

var (
	versionOption = flag.Bool("version", false, "cppsdkgen version")
	configOption  = flag.String("config", "", "config file path (searched in the current directory when empty)")
	verboseOption = flag.Bool("verbose", false, "enable debug logging")
)

func main() {
	flag.Parse()

	if *versionOption {
		fmt.Printf("cppsdkgen v%s", version)

		return
	}

	level := slog.LevelInfo
	if *verboseOption {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()
	if err := run(ctx, *configOption, logger, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
