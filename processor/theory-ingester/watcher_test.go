package theoryingester

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testWatchConfig() WatchConfig {
	return WatchConfig{
		Enabled:       true,
		DebounceDelay: "50ms",
		ExcludeDirs:   []string{".git"},
	}
}

func testWatchLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestNewCorpusWatcher(t *testing.T) {
	tmpDir := t.TempDir()
	corpus := NewCorpus(tmpDir, []string{"**/*.yaml"}, nil)

	watcher, err := NewCorpusWatcher(testWatchConfig(), corpus, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	// Verify excludes are properly set
	if !watcher.excludes[".git"] {
		t.Error("expected .git to be excluded")
	}
}

func TestWatchConfig_GetDebounceDelay(t *testing.T) {
	tests := []struct {
		name   string
		delay  string
		expect time.Duration
	}{
		{
			name:   "valid duration",
			delay:  "100ms",
			expect: 100 * time.Millisecond,
		},
		{
			name:   "empty string uses default",
			delay:  "",
			expect: 500 * time.Millisecond,
		},
		{
			name:   "invalid duration uses default",
			delay:  "invalid",
			expect: 500 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := WatchConfig{DebounceDelay: tt.delay}
			got := config.GetDebounceDelay()
			if got != tt.expect {
				t.Errorf("GetDebounceDelay() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestDefaultWatchConfig(t *testing.T) {
	config := DefaultWatchConfig()

	if config.Enabled {
		t.Error("default config should have watching disabled")
	}

	if config.DebounceDelay != "500ms" {
		t.Errorf("unexpected default debounce delay: %s", config.DebounceDelay)
	}

	if len(config.ExcludeDirs) != 3 {
		t.Errorf("expected 3 default excludes, got %d", len(config.ExcludeDirs))
	}
}

func TestCorpusWatcher_FileCreation(t *testing.T) {
	tmpDir := t.TempDir()
	corpus := NewCorpus(tmpDir, []string{"**/*.yaml"}, nil)

	watcher, err := NewCorpusWatcher(testWatchConfig(), corpus, testWatchLogger())
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := watcher.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	defer watcher.Stop()

	// Give watcher time to set up
	time.Sleep(100 * time.Millisecond)

	// Create a bundle file
	testFile := filepath.Join(tmpDir, "test.yaml")
	if err := os.WriteFile(testFile, []byte("theory_id: test"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	// Wait for event
	select {
	case event := <-watcher.Events():
		if event.Operation != WatchOpCreate {
			t.Errorf("expected create operation, got %s", event.Operation)
		}
		if event.Path != "test.yaml" {
			t.Errorf("expected path test.yaml, got %s", event.Path)
		}
		if event.AbsPath != testFile {
			t.Errorf("expected abs path %s, got %s", testFile, event.AbsPath)
		}
	case <-time.After(1 * time.Second):
		t.Error("timeout waiting for create event")
	}
}

func TestCorpusWatcher_FileModification(t *testing.T) {
	tmpDir := t.TempDir()
	corpus := NewCorpus(tmpDir, []string{"**/*.yaml"}, nil)

	// Pre-create the file
	testFile := filepath.Join(tmpDir, "test.yaml")
	if err := os.WriteFile(testFile, []byte("theory_id: initial"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	watcher, err := NewCorpusWatcher(testWatchConfig(), corpus, testWatchLogger())
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := watcher.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	defer watcher.Stop()

	// Set the hash for the initial content
	watcher.SetHash("test.yaml", "initial-hash")

	// Give watcher time to set up
	time.Sleep(100 * time.Millisecond)

	// Modify the file
	if err := os.WriteFile(testFile, []byte("theory_id: modified"), 0644); err != nil {
		t.Fatalf("failed to modify test file: %v", err)
	}

	// Wait for event
	select {
	case event := <-watcher.Events():
		if event.Operation != WatchOpModify {
			t.Errorf("expected modify operation, got %s", event.Operation)
		}
		if event.Path != "test.yaml" {
			t.Errorf("expected path test.yaml, got %s", event.Path)
		}
	case <-time.After(1 * time.Second):
		t.Error("timeout waiting for modify event")
	}
}

func TestCorpusWatcher_FileDeletion(t *testing.T) {
	tmpDir := t.TempDir()
	corpus := NewCorpus(tmpDir, []string{"**/*.yaml"}, nil)

	// Pre-create the file
	testFile := filepath.Join(tmpDir, "test.yaml")
	if err := os.WriteFile(testFile, []byte("theory_id: doomed"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	watcher, err := NewCorpusWatcher(testWatchConfig(), corpus, testWatchLogger())
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := watcher.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	defer watcher.Stop()

	// Set the hash so we track the file
	watcher.SetHash("test.yaml", "some-hash")

	// Give watcher time to set up
	time.Sleep(100 * time.Millisecond)

	// Delete the file
	if err := os.Remove(testFile); err != nil {
		t.Fatalf("failed to remove test file: %v", err)
	}

	// Wait for event
	select {
	case event := <-watcher.Events():
		if event.Operation != WatchOpDelete {
			t.Errorf("expected delete operation, got %s", event.Operation)
		}
		if event.Path != "test.yaml" {
			t.Errorf("expected path test.yaml, got %s", event.Path)
		}
	case <-time.After(1 * time.Second):
		t.Error("timeout waiting for delete event")
	}
}

func TestCorpusWatcher_IgnoresNonMatchingFiles(t *testing.T) {
	tmpDir := t.TempDir()
	corpus := NewCorpus(tmpDir, []string{"**/*.yaml"}, nil)

	watcher, err := NewCorpusWatcher(testWatchConfig(), corpus, testWatchLogger())
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := watcher.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	defer watcher.Stop()

	// Give watcher time to set up
	time.Sleep(100 * time.Millisecond)

	// Create a file outside the corpus globs
	testFile := filepath.Join(tmpDir, "notes.md")
	if err := os.WriteFile(testFile, []byte("# notes"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	// Wait briefly - should not receive event
	select {
	case event := <-watcher.Events():
		t.Errorf("unexpected event for non-matching file: %+v", event)
	case <-time.After(300 * time.Millisecond):
		// Expected - no event for non-matching file
	}
}

func TestCorpusWatcher_IgnoresExcludedPatterns(t *testing.T) {
	tmpDir := t.TempDir()
	corpus := NewCorpus(tmpDir, []string{"**/*.yaml"}, []string{"draft/**"})

	// Create the draft directory before the watcher starts
	draftDir := filepath.Join(tmpDir, "draft")
	if err := os.MkdirAll(draftDir, 0755); err != nil {
		t.Fatalf("failed to create draft dir: %v", err)
	}

	watcher, err := NewCorpusWatcher(testWatchConfig(), corpus, testWatchLogger())
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := watcher.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	defer watcher.Stop()

	// Give watcher time to set up
	time.Sleep(100 * time.Millisecond)

	// Create a bundle in the excluded subtree
	testFile := filepath.Join(draftDir, "wip.yaml")
	if err := os.WriteFile(testFile, []byte("theory_id: wip"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	// Wait briefly - should not receive event
	select {
	case event := <-watcher.Events():
		t.Errorf("unexpected event for excluded file: %+v", event)
	case <-time.After(300 * time.Millisecond):
		// Expected - no event for excluded file
	}
}

func TestCorpusWatcher_UnchangedContentSuppressed(t *testing.T) {
	tmpDir := t.TempDir()
	corpus := NewCorpus(tmpDir, []string{"**/*.yaml"}, nil)

	// Pre-create the file
	testFile := filepath.Join(tmpDir, "test.yaml")
	content := []byte("theory_id: same")
	if err := os.WriteFile(testFile, content, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	watcher, err := NewCorpusWatcher(testWatchConfig(), corpus, testWatchLogger())
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := watcher.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	defer watcher.Stop()

	// Prime the hash cache the way the startup scan does
	watcher.SetHash("test.yaml", contentHash(content))

	// Give watcher time to set up
	time.Sleep(100 * time.Millisecond)

	// Touch the file with identical content
	if err := os.WriteFile(testFile, content, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	// No event: the content did not change
	select {
	case event := <-watcher.Events():
		t.Errorf("unexpected event when content unchanged: %+v", event)
	case <-time.After(300 * time.Millisecond):
		// Expected
	}
}

func TestCorpusWatcher_SetGetHash(t *testing.T) {
	tmpDir := t.TempDir()
	corpus := NewCorpus(tmpDir, []string{"**/*.yaml"}, nil)

	watcher, err := NewCorpusWatcher(DefaultWatchConfig(), corpus, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	watcher.SetHash("theories/a.yaml", "abc123")

	hash, ok := watcher.GetHash("theories/a.yaml")
	if !ok {
		t.Error("expected hash to exist")
	}
	if hash != "abc123" {
		t.Errorf("expected hash abc123, got %s", hash)
	}

	_, ok = watcher.GetHash("theories/missing.yaml")
	if ok {
		t.Error("expected hash to not exist for unknown file")
	}
}

func TestCorpusWatcher_DroppedEvents(t *testing.T) {
	tmpDir := t.TempDir()
	corpus := NewCorpus(tmpDir, []string{"**/*.yaml"}, nil)

	watcher, err := NewCorpusWatcher(DefaultWatchConfig(), corpus, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	if watcher.DroppedEvents() != 0 {
		t.Errorf("expected 0 dropped events, got %d", watcher.DroppedEvents())
	}
}
