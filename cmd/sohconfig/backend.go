package main

import (
	"fmt"

	"github.com/michaelquigley/df/dl"
	"github.com/pkg/errors"
	"github.com/soar/sohconfig/internal/ini"
	"github.com/soar/sohconfig/internal/session"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newBackendCommand().cmd)
}

type backendCommand struct {
	cmd  *cobra.Command
	list bool
}

func newBackendCommand() *backendCommand {
	cmd := &cobra.Command{
		Use:   "backend [name|value]",
		Short: "Print or change the graphics backend",
		Args:  cobra.MaximumNArgs(1),
	}
	out := &backendCommand{cmd: cmd}
	cmd.Flags().BoolVarP(&out.list, "list", "l", false, "list the available backends")
	cmd.RunE = out.run
	return out
}

func (cmd *backendCommand) run(c *cobra.Command, args []string) error {
	w := c.OutOrStdout()
	if cmd.list {
		for _, b := range session.Backends() {
			fmt.Fprintf(w, "%s\t'%s'\n", b.DisplayName, b.Value)
		}
		return nil
	}

	doc, err := ini.OpenFile(cfg.INI)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		value, err := session.CurrentBackend(doc)
		if err != nil {
			return err
		}
		if b, ok := session.BackendByValue(value); ok {
			fmt.Fprintln(w, b.DisplayName)
		} else {
			fmt.Fprintf(w, "unknown ('%s')\n", value)
		}
		return nil
	}

	b, ok := session.BackendByName(args[0])
	if !ok {
		return errors.Errorf("unknown backend '%s'", args[0])
	}
	if err := session.SaveBackend(doc, b.Value); err != nil {
		return err
	}
	dl.Infof("backend set to %s", b.DisplayName)
	return nil
}
