package main

import (
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/pageza/receitas/backend/config"
	"github.com/pageza/receitas/backend/internal/bootstrap"
	"github.com/pageza/receitas/backend/internal/logging"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool
	verbose    *bool

	appOnce sync.Once
	app     *bootstrap.App
	appErr  error
}

func newCommandContext(configFlag *string, jsonFlag, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
		verbose:    verbose,
	}
}

// ensureApp loads configuration and opens storage once per invocation.
func (c *commandContext) ensureApp(cmd *cobra.Command) (*bootstrap.App, error) {
	c.appOnce.Do(func() {
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			if err := os.Setenv("CONFIG_FILE", path); err != nil {
				c.appErr = err
				return
			}
		}
		cfg, err := config.LoadConfig()
		if err != nil {
			c.appErr = err
			return
		}
		// The CLI never rate limits itself.
		cfg.RateLimitPerMinute = 0

		level := "warn"
		if *c.verbose {
			level = "debug"
		}
		log, err := logging.New(logging.Options{Level: level, Format: cfg.LogFormat, Output: cmd.ErrOrStderr()})
		if err != nil {
			c.appErr = err
			return
		}
		c.app, c.appErr = bootstrap.New(cmd.Context(), cfg, log)
	})
	return c.app, c.appErr
}

func (c *commandContext) close() error {
	if c.app == nil {
		return nil
	}
	return c.app.Close()
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}
