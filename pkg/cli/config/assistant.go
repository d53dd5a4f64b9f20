package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Assistant holds CLI flags for assistant behavior configuration
type Assistant struct {
	configPath string
	timezone   string
}

// AssistantConfig is the resolved assistant behavior: the behavioral
// directive, the time zone for situational metadata, and the user-facing
// fallback messages. Zero values mean "use the built-in default".
type AssistantConfig struct {
	Directive         string `toml:"directive"`
	ApologyMessage    string `toml:"apology_message"`
	ValidationMessage string `toml:"validation_message"`

	Location *time.Location `toml:"-"`
}

// Flags returns CLI flags for assistant configuration
func (a *Assistant) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "assistant-config",
			Usage:       "Path to assistant behavior TOML file",
			Sources:     cli.EnvVars("MNEMON_ASSISTANT_CONFIG"),
			Destination: &a.configPath,
		},
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "IANA time zone for situational metadata in prompts",
			Value:       "Asia/Kolkata",
			Sources:     cli.EnvVars("MNEMON_TIMEZONE"),
			Destination: &a.timezone,
		},
	}
}

// Configure loads the assistant behavior from the TOML file (if given)
// and resolves the time zone.
func (a *Assistant) Configure() (*AssistantConfig, error) {
	var cfg AssistantConfig

	if a.configPath != "" {
		// #nosec G304 - path is expected to be provided by CLI argument
		data, err := os.ReadFile(a.configPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read assistant config file", goerr.V("path", a.configPath))
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", a.configPath))
		}
	}

	loc, err := time.LoadLocation(a.timezone)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid timezone", goerr.V("timezone", a.timezone))
	}
	cfg.Location = loc

	return &cfg, nil
}
