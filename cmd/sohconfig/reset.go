package main

import (
	"github.com/michaelquigley/df/dl"
	"github.com/soar/sohconfig/internal/binding"
	"github.com/soar/sohconfig/internal/ini"
	"github.com/soar/sohconfig/internal/session"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newResetCommand().cmd)
}

type resetCommand struct {
	cmd *cobra.Command
}

func newResetCommand() *resetCommand {
	cmd := &cobra.Command{
		Use:   "reset <guid>",
		Short: "Reset a device's bindings to defaults and save",
		Args:  cobra.ExactArgs(1),
	}
	out := &resetCommand{cmd: cmd}
	cmd.RunE = out.run
	return out
}

func (cmd *resetCommand) run(_ *cobra.Command, args []string) error {
	doc, err := ini.OpenFile(cfg.INI)
	if err != nil {
		return err
	}
	if err := session.SaveBinding(doc, binding.Fresh(args[0])); err != nil {
		return err
	}
	dl.Infof("reset binding for '%s' in '%s'", args[0], doc.Path())
	return nil
}
