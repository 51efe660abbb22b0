// Command newslake runs the news data pipeline: normalize raw inbox batches
// into bronze, enrich them into silver, and rebuild the gold views. By
// default it executes one pass and exits; with -serve it keeps running on
// the configured cron schedule.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"newslake/internal/config"
	"newslake/internal/logging"
	"newslake/internal/pipeline"
	"newslake/internal/scheduler"
	"newslake/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "newslake.toml", "path to TOML config file")
		serve      = flag.Bool("serve", false, "keep running on the configured cron schedule")
	)
	flag.Parse()

	if err := run(*configPath, *serve); err != nil {
		fmt.Fprintln(os.Stderr, "newslake:", err)
		os.Exit(1)
	}
}

func run(configPath string, serve bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logging.New(cfg.Logging.Level)

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	p := pipeline.New(st, cfg.Pipeline.InboxDir, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !serve {
		_, err := p.Run(ctx)
		return err
	}

	sched, err := scheduler.New(cfg.Pipeline.Timezone, log)
	if err != nil {
		return err
	}
	err = sched.AddJob("pipeline", cfg.Pipeline.Schedule, func(ctx context.Context) error {
		_, err := p.Run(ctx)
		return err
	})
	if err != nil {
		return err
	}

	sched.Start()
	log.Info("newslake serving", "schedule", cfg.Pipeline.Schedule, "timezone", cfg.Pipeline.Timezone)

	<-ctx.Done()
	log.Info("shutting down, waiting for in-flight run")
	<-sched.Stop().Done()
	return nil
}
