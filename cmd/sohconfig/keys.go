package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/soar/sohconfig/internal/binding"
	"github.com/soar/sohconfig/internal/gamepad"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newKeysCommand().cmd)
}

type keysCommand struct {
	cmd *cobra.Command
}

func newKeysCommand() *keysCommand {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List binding keys and their defaults",
		Args:  cobra.NoArgs,
	}
	out := &keysCommand{cmd: cmd}
	cmd.RunE = out.run
	return out
}

func (cmd *keysCommand) run(c *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BUTTON\tKEY\tDEFAULT\tINPUT")
	for _, b := range binding.Buttons() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", b, b.Key(), b.Default(), gamepad.DisplayName(b.Default()))
	}
	for _, a := range binding.FloatAxes() {
		fmt.Fprintf(w, "\t%s\t%s\t\n", a.Key(), binding.FormatFloat(a.Default()))
	}
	for _, a := range binding.IntAxes() {
		fmt.Fprintf(w, "\t%s\t%d\t\n", a.Key(), a.Default())
	}
	return w.Flush()
}
