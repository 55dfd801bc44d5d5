package cli

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDirHonorsXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir error: %v", err)
	}
	if dir != filepath.Join(base, "greenzone") {
		t.Errorf("cacheDir = %q", dir)
	}
}

func TestRootCommandWiring(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := map[string]bool{"render": false, "serve": false, "browse": false, "cache": false, "completion": false}
	for _, sub := range root.Commands() {
		name := strings.SplitN(sub.Use, " ", 2)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("root command missing subcommand %q", name)
		}
	}

	if root.PersistentFlags().Lookup("verbose") == nil {
		t.Error("verbose flag not registered")
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v", c.Logger.GetLevel())
	}
}
