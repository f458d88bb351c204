// SPDX-License-Identifier: MIT

// Command linkern reads a TSPLIB instance, improves a tour with the
// Lin-Kernighan heuristic and writes the best tour as a TSPLIB file whose
// name carries the cost.
//
//	linkern -f berlin52.tsp -runs 20 -workers 4 -progress
//
// Every flag has a LINKERN_* environment counterpart, also read from .env.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/katalvlaran/linkern/core"
	"github.com/katalvlaran/linkern/internal/config"
	"github.com/katalvlaran/linkern/internal/logger"
	"github.com/katalvlaran/linkern/internal/metrics"
	"github.com/katalvlaran/linkern/lk"
	"github.com/katalvlaran/linkern/tsp"
	"github.com/katalvlaran/linkern/tsplib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := logger.Setup()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, l); err != nil {
		l.Error("linkern_failed", "err", err)
		os.Exit(1)
	}
}

// run parses args, solves, prints a summary to stdout and writes the
// solution file. Progress goes to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, l *slog.Logger) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	set := flag.NewFlagSet("linkern", flag.ContinueOnError)
	set.SetOutput(stderr)
	cfg.BindFlags(set)
	if err = set.Parse(args); err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	tourType, err := tsplib.ParseTourType(cfg.TourType)
	if err != nil {
		return err
	}

	file, err := tsplib.ReadFile(cfg.File)
	if err != nil {
		return err
	}
	inst := file.Instance
	if inst.Name == "" {
		inst.Name = strings.TrimSuffix(filepath.Base(cfg.File), filepath.Ext(cfg.File))
	}
	l.Info("instance_loaded", "name", inst.Name, "nodes", inst.Len(), "dim", inst.Dim)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, reg); err != nil {
				l.Error("metrics_serve_error", "addr", cfg.MetricsAddr, "err", err)
			}
		}()
		l.Info("metrics_listening", "addr", cfg.MetricsAddr)
	}

	observe := m.Observe
	if cfg.Progress && (cfg.Algo == tsp.LinKernighan.String() || cfg.Algo == tsp.SimplifiedLK.String()) {
		bar := progressbar.NewOptions(cfg.Runs,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("runs"),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
		defer bar.Finish()
		observe = func(r lk.RunReport) {
			m.Observe(r)
			_ = bar.Add(1)
		}
	}

	opts, err := cfg.SolveOptions(l, observe)
	if err != nil {
		return err
	}
	res, err := tsp.Solve(ctx, inst, opts)
	if err != nil {
		return err
	}

	printSummary(stdout, inst, cfg.Algo, res)
	if cfg.OutDir == "" {
		return nil
	}

	out := filepath.Join(cfg.OutDir, tsplib.SolutionName(inst.Name, res.Cost))
	if err = tsplib.WriteFile(out, file.Header, inst.Dim, visitOrder(inst, res.Tour), tourType); err != nil {
		return err
	}
	l.Info("solution_written", "path", out, "cost", res.Cost)

	return nil
}

// visitOrder maps a closed index tour to nodes, dropping the repeated start.
func visitOrder(inst *core.Instance, closed []int) []core.Node {
	nodes := make([]core.Node, 0, len(closed))
	for _, v := range closed[:len(closed)-1] {
		nodes = append(nodes, inst.Nodes[v])
	}

	return nodes
}

func printSummary(w io.Writer, inst *core.Instance, algo string, res tsp.TSResult) {
	fmt.Fprintf(w, "instance: %s (%d nodes)\n", inst.Name, inst.Len())
	fmt.Fprintf(w, "algorithm: %s\n", algo)
	if rep := res.Report; rep != nil {
		fmt.Fprintf(w, "runs: %d  best run: %d  mean: %.3f  std: %.3f\n",
			len(rep.Runs), rep.BestRun, rep.Mean, rep.StdDev)
	}
	fmt.Fprintf(w, "cost: %.3f\n", res.Cost)
	if res.LowerBound > 0 {
		fmt.Fprintf(w, "lower bound: %.3f  gap: %.2f%%\n", res.LowerBound, 100*res.Gap())
	}
}
