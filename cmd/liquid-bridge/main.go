package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/liquid-bridge/cmd/liquid-bridge/classify"
	"github.com/walteh/liquid-bridge/cmd/liquid-bridge/config"
	"github.com/walteh/liquid-bridge/cmd/liquid-bridge/serve"
	server_command "github.com/walteh/liquid-bridge/cmd/liquid-bridge/server-command"
	logging "github.com/walteh/liquid-bridge/pkg/debug"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var debugLogs, jsonLogs bool

	rootCmd := &cobra.Command{
		Use:           "liquid-bridge",
		Short:         "Liquid classification and language server configuration for editors",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "write logs as json lines")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if debugLogs {
			level = zerolog.DebugLevel
		}
		logger := logging.NewLogger(os.Stderr, logging.Options{
			Level: level,
			Color: !color.NoColor,
			JSON:  jsonLogs,
		})
		cmd.SetContext(logger.WithContext(cmd.Context()))
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)

	fs := afero.NewOsFs()

	rootCmd.AddCommand(classify.NewClassifyCommand(fs))
	rootCmd.AddCommand(config.NewConfigCommand(fs))
	rootCmd.AddCommand(server_command.NewServerCommandCommand(fs))
	rootCmd.AddCommand(serve.NewServeCommand(fs))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
