package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "google", cfg.Input)
		assert.Equal(t, "BOTH", cfg.Output)
		assert.Equal(t, "Asia/Tokyo", cfg.Timezone)
		assert.Equal(t, "JP", cfg.HolidayZone)
		assert.Equal(t, "ticket", cfg.Jira.Strategy)
		assert.Equal(t, "daily", cfg.Jobcan.Strategy)
		assert.Equal(t, "primary", cfg.Google.CalendarID)
	})

	t.Run("yaml file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "application.yaml")
		content := "input: ics\nics:\n  url: https://example.com/feed.ics\njira:\n  domainurl: https://example.atlassian.net\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "ics", cfg.Input)
		assert.Equal(t, "https://example.com/feed.ics", cfg.ICS.URL)
		assert.Equal(t, "https://example.atlassian.net", cfg.Jira.DomainURL)
		assert.Equal(t, "BOTH", cfg.Output, "untouched keys keep their defaults")
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "application.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output: JIRA\n"), 0o644))
		t.Setenv("TIMEBRIDGE_OUTPUT", "JOBCAN")
		t.Setenv("TIMEBRIDGE_JIRA_TOKEN", "secret")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "JOBCAN", cfg.Output)
		assert.Equal(t, "secret", cfg.Jira.Token)
	})
}
