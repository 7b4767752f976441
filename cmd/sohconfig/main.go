package main

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/fang"
	"github.com/michaelquigley/df/dl"
	"github.com/soar/sohconfig/internal/config"
	"github.com/spf13/cobra"
)

const trimPrefix = "github.com/soar/sohconfig/"

func init() {
	dl.Init(dl.DefaultOptions().SetLevel(slog.LevelInfo).SetTrimPrefix(trimPrefix))
	config.AddFlags(rootCmd.PersistentFlags())
}

var rootCmd = &cobra.Command{
	Use:   "sohconfig",
	Short: "Edit Ship of Harkinian controller bindings",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		cfg = c
		if cfg.Verbose {
			dl.Init(dl.DefaultOptions().SetLevel(slog.LevelDebug).SetTrimPrefix(trimPrefix))
		}
		return nil
	},
}

var cfg *config.Config

func main() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithoutManpage(), fang.WithoutCompletions(), fang.WithoutVersion()); err != nil {
		dl.Fatal(err)
	}
}
