package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"8080\"\n"), 0644))
	t.Setenv("HOMEDRIVE_CONFIG", path)

	reloaded := make(chan *Config, 1)
	watcher, err := NewWatcher(path, func(config *Config) {
		reloaded <- config
	})
	require.NoError(t, err)
	watcher.SetDebounceTime(50 * time.Millisecond)
	watcher.Start()
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9191\"\n"), 0644))

	select {
	case config := <-reloaded:
		require.Equal(t, "9191", config.Server.Port)
	case <-time.After(5 * time.Second):
		t.Fatal("config reload was not observed")
	}
}
