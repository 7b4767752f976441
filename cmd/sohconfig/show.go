package main

import (
	"fmt"

	"github.com/soar/sohconfig/internal/binding"
	"github.com/soar/sohconfig/internal/gamepad"
	"github.com/soar/sohconfig/internal/ini"
	"github.com/soar/sohconfig/internal/session"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newShowCommand().cmd)
}

type showCommand struct {
	cmd   *cobra.Command
	names bool
}

func newShowCommand() *showCommand {
	cmd := &cobra.Command{
		Use:   "show <guid>",
		Short: "Print a device's binding section",
		Long:  "Print a device's binding section as it would be saved. Devices without a section show the defaults.",
		Args:  cobra.ExactArgs(1),
	}
	out := &showCommand{cmd: cmd}
	cmd.Flags().BoolVarP(&out.names, "names", "n", false, "annotate button values with gamepad input names")
	cmd.RunE = out.run
	return out
}

func (cmd *showCommand) run(c *cobra.Command, args []string) error {
	doc, err := ini.OpenFile(cfg.INI)
	if err != nil {
		return err
	}
	rec, err := session.LoadBinding(doc, args[0])
	if err != nil {
		return err
	}

	w := c.OutOrStdout()
	fmt.Fprintln(w, ini.Header(binding.SectionPrefix, rec.ID()))
	if !cmd.names {
		for _, line := range rec.Serialize() {
			fmt.Fprintln(w, line)
		}
		return nil
	}
	for _, b := range binding.Buttons() {
		fmt.Fprintf(w, "%s=%d\t; %s\n", b.Key(), rec.Button(b), gamepad.DisplayName(rec.Button(b)))
	}
	for _, a := range binding.FloatAxes() {
		fmt.Fprintf(w, "%s=%s\n", a.Key(), binding.FormatFloat(rec.FloatAxis(a)))
	}
	for _, a := range binding.IntAxes() {
		fmt.Fprintf(w, "%s=%d\n", a.Key(), rec.IntAxis(a))
	}
	return nil
}
