package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mnemon-dev/mnemon/pkg/cli/config"
)

func TestAssistant_Configure(t *testing.T) {
	t.Run("defaults without config file", func(t *testing.T) {
		cfg := config.NewAssistantForTest("", "Asia/Kolkata")
		assistant, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, assistant.Directive).Equal("")
		gt.Value(t, assistant.ApologyMessage).Equal("")
		gt.String(t, assistant.Location.String()).Equal("Asia/Kolkata")
	})

	t.Run("loads TOML config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "assistant.toml")
		content := `
directive = "You are a terse assistant."
apology_message = "Something broke."
validation_message = "Say something first."
`
		gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()

		cfg := config.NewAssistantForTest(path, "UTC")
		assistant, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, assistant.Directive).Equal("You are a terse assistant.")
		gt.Value(t, assistant.ApologyMessage).Equal("Something broke.")
		gt.Value(t, assistant.ValidationMessage).Equal("Say something first.")
		gt.String(t, assistant.Location.String()).Equal("UTC")
	})

	t.Run("rejects missing config file", func(t *testing.T) {
		cfg := config.NewAssistantForTest("/no/such/file.toml", "UTC")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("rejects invalid timezone", func(t *testing.T) {
		cfg := config.NewAssistantForTest("", "Not/AZone")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("returns flags", func(t *testing.T) {
		cfg := config.NewAssistantForTest("", "")
		flags := cfg.Flags()
		gt.Value(t, len(flags)).Equal(2)
	})
}
