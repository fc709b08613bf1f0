package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"pipet/internal/config"
	"pipet/internal/logging"
	"pipet/internal/orchestrator"
)

type commandContext struct {
	configFlag  *string
	datasetFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, datasetFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		datasetFlag: datasetFlag,
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

func (c *commandContext) datasetPath() (string, error) {
	if c.datasetFlag != nil && strings.TrimSpace(*c.datasetFlag) != "" {
		return config.ExpandPath(strings.TrimSpace(*c.datasetFlag))
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.Paths.DatasetDir == "" {
		return "", errors.New("no dataset given; pass --dataset or set paths.dataset_dir in the configuration")
	}
	return cfg.Paths.DatasetDir, nil
}

// withOrchestrator opens the dataset named by flags or configuration, runs
// fn against it, and releases the dataset lock when fn returns.
func (c *commandContext) withOrchestrator(cmd *cobra.Command, fn func(*orchestrator.Orchestrator) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	path, err := c.datasetPath()
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	o, err := orchestrator.Open(cmd.Context(), path, cfg,
		orchestrator.WithLogger(logger),
		orchestrator.WithEcho(cmd.OutOrStdout()),
	)
	if err != nil {
		return err
	}
	defer o.Close()
	return fn(o)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
