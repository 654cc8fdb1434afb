package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"voirank/internal/config"
	"voirank/internal/logging"
	"voirank/internal/pipeline"
	"voirank/internal/services"
	"voirank/internal/services/nickname"
	"voirank/internal/services/nicochart"
	"voirank/internal/services/snapshot"
	"voirank/internal/store"
)

type commandContext struct {
	configFlag  *string
	jsonFlag    *bool
	noCacheFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, jsonFlag, noCacheFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		jsonFlag:    jsonFlag,
		noCacheFlag: noCacheFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) noCache() bool {
	return c.noCacheFlag != nil && *c.noCacheFlag
}

// runFunc does the work of one command and reports how many artifacts it
// wrote.
type runFunc func(ctx context.Context, r *pipeline.Runner) (int, error)

// withRunner builds a runner wired to the external services, holds the cache
// lock for the duration of fn, and records the invocation in the run ledger.
func (c *commandContext) withRunner(cmd *cobra.Command, fn runFunc) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithNicknames(newNicknameClient(cfg, st, logger)),
		pipeline.WithPlatform(newNicochartClient(cfg, logger)),
		pipeline.WithSearcher(newSnapshotClient(cfg, logger)),
	}
	if c.noCache() {
		opts = append(opts, pipeline.WithoutCache())
	}
	runner, err := pipeline.New(cfg, opts...)
	if err != nil {
		return err
	}

	lock, err := runner.Lock()
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			logger.Warn("cache lock release failed", logging.Error(releaseErr))
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	run, err := st.BeginRun(ctx, cmd.Name(), cmd.Flags().Args())
	if err != nil {
		return err
	}
	ctx = services.WithRunID(ctx, run.ID)
	ctx = services.WithCommand(ctx, cmd.Name())

	artifacts, runErr := fn(ctx, runner)
	if finishErr := st.FinishRun(context.WithoutCancel(ctx), run.ID, artifacts, runErr); finishErr != nil {
		logging.WarnWithContext(logging.WithContext(ctx, logger), "run ledger update failed", "run_finish_failed",
			logging.Error(finishErr),
			logging.String(logging.FieldImpact, "run stays marked as running"),
		)
	}
	return runErr
}

func newSnapshotClient(cfg *config.Config, logger *slog.Logger) *snapshot.Client {
	return snapshot.NewClient(snapshot.Config{
		BaseURL:   cfg.Fetch.SnapshotURL,
		UserAgent: cfg.Fetch.UserAgent,
		PageSize:  cfg.Fetch.PageSize,
		Timeout:   cfg.RequestTimeout(),
		Delay:     cfg.SnapshotDelay(),
	}, snapshot.WithLogger(logger))
}

func newNicknameClient(cfg *config.Config, st *store.Store, logger *slog.Logger) *nickname.Client {
	return nickname.NewClient(nickname.Config{
		BaseURL:   cfg.Fetch.NicknameURL,
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.RequestTimeout(),
		Delay:     cfg.NicknameDelay(),
	}, nickname.WithCache(st), nickname.WithLogger(logger))
}

func newNicochartClient(cfg *config.Config, logger *slog.Logger) *nicochart.Client {
	return nicochart.NewClient(nicochart.Config{
		BaseURL:   cfg.Fetch.NicochartURL,
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.RequestTimeout(),
		Delay:     cfg.NicochartDelay(),
	}, nicochart.WithLogger(logger))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func categoryArg(args []string, fallback string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0])
	}
	return fallback
}

func skipped(cmd *cobra.Command, what, category string) {
	fmt.Fprintf(cmd.OutOrStdout(), "No %s data for %s; skipped\n", what, category)
}
