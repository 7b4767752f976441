package main

import (
	"strings"

	"github.com/michaelquigley/df/dl"
	"github.com/pkg/errors"
	"github.com/soar/sohconfig/internal/ini"
	"github.com/soar/sohconfig/internal/session"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSetCommand().cmd)
}

type setCommand struct {
	cmd *cobra.Command
}

func newSetCommand() *setCommand {
	cmd := &cobra.Command{
		Use:     "set <guid> <key>=<value>...",
		Short:   "Change bindings of a device and save",
		Example: "  sohconfig set 03000000de280000ff11000001000000 btn_a=1 btn_b=0",
		Args:    cobra.MinimumNArgs(2),
	}
	out := &setCommand{cmd: cmd}
	cmd.RunE = out.run
	return out
}

func (cmd *setCommand) run(_ *cobra.Command, args []string) error {
	doc, err := ini.OpenFile(cfg.INI)
	if err != nil {
		return err
	}
	rec, err := session.LoadBinding(doc, args[0])
	if err != nil {
		return err
	}

	for _, arg := range args[1:] {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return errors.Errorf("expected <key>=<value>, got '%s'", arg)
		}
		if err := rec.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return err
		}
		dl.Debugf("%s: %s=%s", rec.ID(), key, value)
	}

	if err := session.SaveBinding(doc, rec); err != nil {
		return err
	}
	dl.Infof("saved binding for '%s' to '%s'", rec.ID(), doc.Path())
	return nil
}
