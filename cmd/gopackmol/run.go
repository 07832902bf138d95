/*
 * run.go, part of gopackmol.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	packmol "github.com/rmera/gopackmol"
	"github.com/rmera/gopackmol/run"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(a *app) *cobra.Command {
	var metricsFile string
	cmd := &cobra.Command{
		Use:   "run <job.yaml|input.inp>",
		Short: "Run Packmol on a job or an input file",
		Long: `Builds the input for a job file, or checks a hand-written input, and runs the solver on it,
streaming its output. The solver runs in the directory of the given file. Ctrl-C stops it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text, dir string
			var err error
			if isJob(args[0]) {
				text, dir, err = a.buildJob(args[0])
			} else {
				text, err = readInput(args[0])
				if err == nil {
					_, err = packmol.ParseInput(strings.NewReader(text))
				}
				dir = filepath.Dir(args[0])
			}
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runSolver(ctx, text, dir, metricsFile, cmd)
		},
	}
	cmd.Flags().StringVar(&metricsFile, "metrics", "", "write run metrics to this file, in the Prometheus text format")
	return cmd
}

// runSolver runs the solver on text, copying its output to the command output
// until it ends or ctx is done.
func (a *app) runSolver(ctx context.Context, text, dir, metricsFile string, cmd *cobra.Command) error {
	reg := prometheus.NewRegistry()
	cfg := a.cfg.Run()
	cfg.WorkDir = dir
	orch := run.New(cfg, run.WithLogger(a.log), run.WithMetrics(run.NewMetrics(reg)))
	out := cmd.OutOrStdout()
	var last run.Completion
	orch.Subscribe(run.SubscriberFuncs{
		OnChunk:      func(c []byte) { out.Write(c) },
		OnCompletion: func(c run.Completion) { last = c },
	})
	h, err := orch.Launch(context.Background(), text)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "gopackmol: run %s, pid %d\n", h.RunID, h.PID)
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			orch.Cancel()
		case <-done:
		}
	}()
	state, err := orch.Wait(context.Background())
	close(done)
	if err != nil {
		return err
	}
	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
			a.log.Warn("could not write metrics", zap.String("file", metricsFile), zap.Error(err))
		}
	}
	switch {
	case state == run.Aborted:
		return fmt.Errorf("run %s aborted", last.RunID)
	case last.Err != nil:
		return last.Err
	}
	return nil
}

func zapConfig(conf *packmol.SolverConfig) []zap.Field {
	f := []zap.Field{zap.Float64("tolerance", conf.Tolerance), zap.String("output", conf.Output)}
	s := conf.Solvent()
	f = append(f, zap.String("solvent", s.File), zap.Int("number", s.Number))
	if s.Shape != nil {
		f = append(f, zap.String("region", packmol.ShapeLine(s.Shape)), zap.Float64("volume", s.Shape.Volume()))
	}
	return f
}
