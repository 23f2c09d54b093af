// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/ik5/audtempo"
	"github.com/ik5/audtempo/engine"
	"github.com/spf13/cobra"
)

func newNameCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "name <in> <tempo>",
		Short: "Print the path apply would be given for <in> at <tempo>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), audtempo.OutputPath(dir, args[0], args[1]))
			return err
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory of the converted file (default: next to <in>)")

	return cmd
}

func newTemposCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tempos",
		Short: "List the tempo menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for i, t := range audtempo.TempoChoices() {
				if i == audtempo.DefaultTempoIndex {
					t += " (default)"
				}
				if _, err := fmt.Fprintln(w, t); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newEffectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "effects",
		Short: "List the available effects and formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			rt, err := engine.Init()
			if err != nil {
				return err
			}
			defer func() {
				if qerr := rt.Quit(); err == nil {
					err = qerr
				}
			}()

			w := cmd.OutOrStdout()
			for _, h := range rt.Handlers() {
				flags := h.Flags.String()
				if flags == "" {
					flags = "-"
				}
				if _, err := fmt.Fprintf(w, "%-10s %-14s %s\n", h.Name, flags, h.Usage); err != nil {
					return err
				}
			}

			reg := rt.Registry()
			for _, name := range reg.Formats() {
				mode := "read"
				if _, ok := reg.GetEncoder(name); ok {
					mode += "|write"
				}
				if _, err := fmt.Fprintf(w, "format %-6s %s\n", name, mode); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
