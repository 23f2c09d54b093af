// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/ik5/audtempo"
	"github.com/ik5/audtempo/config"
	"github.com/ik5/audtempo/engine"
	"github.com/ik5/audtempo/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var profiles = map[string]string{
	"music":  "-m",
	"speech": "-s",
	"linear": "-l",
}

type applyFlags struct {
	profile     string
	quick       bool
	metricsFile string
}

func newApplyCmd() *cobra.Command {
	var f applyFlags

	cmd := &cobra.Command{
		Use:   "apply <in> <out> <tempo>",
		Short: "Write a copy of <in> played at <tempo> to <out>",
		Long: `Reads <in> (wav, aiff, mp3 or ogg), changes its tempo by the factor <tempo>
and writes the result to <out> with the same sample rate and channels. The
output container follows the extension of <out> (.wav or .aiff).

A tempo of 1.5 plays 50% faster; the accepted range is 0.1 to 100.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], args[1], args[2], f)
		},
	}

	cmd.Flags().StringVar(&f.profile, "profile", "music", "window profile: music, speech or linear")
	cmd.Flags().BoolVarP(&f.quick, "quick", "q", false, "use a coarse search, faster but rougher")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "write run metrics in the prometheus text format to this file")

	return cmd
}

func runApply(cmd *cobra.Command, in, out, tempo string, f applyFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := log.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	profile, ok := profiles[f.profile]
	if !ok {
		return fmt.Errorf("unknown profile %q", f.profile)
	}
	flags := []string{profile}
	if f.quick {
		flags = append(flags, "-q")
	}

	reg := prometheus.NewRegistry()
	err = audtempo.Apply(in, out, tempo,
		audtempo.WithLogger(logger),
		audtempo.WithMetrics(audtempo.NewMetrics(reg)),
		audtempo.WithTempoFlags(flags...),
		audtempo.WithEngineOptions(engine.WithBufferSize(cfg.BufferSize)),
	)

	if f.metricsFile != "" {
		if werr := prometheus.WriteToTextfile(f.metricsFile, reg); werr != nil {
			err = multierr.Append(err, fmt.Errorf("write metrics: %w", werr))
		}
	}
	if err != nil {
		return err
	}

	logger.Infof("Tempo done: %s", tempo)
	return nil
}
