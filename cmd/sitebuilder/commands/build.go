package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitebuilder/internal/build"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	OutDir      string `short:"o" name:"out-dir" help:"Output directory (defaults to <site-dir>/build)" type:"path"`
	MetricsFile string `name:"metrics-file" help:"Write load metrics in Prometheus text format to this file" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := root.loadOptions(g, b.OutDir)
	var reg *prom.Registry
	if b.MetricsFile != "" {
		reg = prom.NewRegistry()
		opts.Recorder = metrics.NewPrometheusRecorder(reg)
	}

	props, loadErr := build.Load(ctx, root.SiteDir, opts)

	// Metrics are written for failed loads too.
	if reg != nil {
		if err := metrics.WriteTextfile(b.MetricsFile, reg); err != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(b.MetricsFile), logfields.Error(err))
		}
	}
	if loadErr != nil {
		return loadErr
	}

	printSummary(os.Stdout, props)
	fmt.Println("Output directory:", props.OutDir)
	return nil
}
