// SPDX-License-Identifier: EPL-2.0

// Command audtempo changes the tempo of audio files without changing their
// pitch.
//
// Usage:
//
//	audtempo apply [--profile music|speech|linear] [--quick] [--metrics-file path] <in> <out> <tempo>
//	audtempo name [--dir dir] <in> <tempo>
//	audtempo tempos
//	audtempo effects
//
// Settings are read from the environment:
//
//	AUDTEMPO_LOG_LEVEL    logrus level (default info)
//	AUDTEMPO_LOG_FORMAT   text or json (default text)
//	AUDTEMPO_BUFFER_SIZE  samples per flow block (default 8192)
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "audtempo",
		Short:        "Change the tempo of audio files without changing pitch",
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(
		newApplyCmd(),
		newNameCmd(),
		newTemposCmd(),
		newEffectsCmd(),
	)
	return root
}
