package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsDefaults(t *testing.T) {
	settings, err := loadSettings("")
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}

	if settings.MinContentLength != 20 {
		t.Errorf("min_content_length = %d, want 20", settings.MinContentLength)
	}
	if settings.InputDirectory != "output" {
		t.Errorf("input_directory = %q, want output", settings.InputDirectory)
	}
	if settings.Orale.OutputFile != "organized_topics.json" {
		t.Errorf("orale output_file = %q", settings.Orale.OutputFile)
	}
	if settings.Ecrite.OutputFile != "organized_ee_topics.json" {
		t.Errorf("ecrite output_file = %q", settings.Ecrite.OutputFile)
	}
	if !settings.Orale.StripPartPrefix {
		t.Error("oral pipeline should strip part prefixes by default")
	}
	if settings.Ecrite.StripPartPrefix {
		t.Error("written pipeline should not strip part prefixes")
	}
	if len(settings.Orale.RejectPrefixes) == 0 || len(settings.Orale.RejectFragments) == 0 {
		t.Error("default oral reject lists should not be empty")
	}
	if len(settings.Ecrite.RejectPrefixes) == 0 || len(settings.Ecrite.RepeatedFragments) == 0 {
		t.Error("default written reject lists should not be empty")
	}
}

func TestLoadSettingsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `min_content_length: 30
orale:
  output_file: custom.json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := loadSettings(path)
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}

	if settings.MinContentLength != 30 {
		t.Errorf("min_content_length = %d, want 30", settings.MinContentLength)
	}
	if settings.Orale.OutputFile != "custom.json" {
		t.Errorf("orale output_file = %q, want custom.json", settings.Orale.OutputFile)
	}
	// Values the file does not name keep their defaults.
	if settings.InputDirectory != "output" {
		t.Errorf("input_directory = %q, want default", settings.InputDirectory)
	}
	if len(settings.Orale.RejectPrefixes) == 0 {
		t.Error("reject lists should survive a partial overlay")
	}
	if settings.Ecrite.OutputFile != "organized_ee_topics.json" {
		t.Errorf("ecrite output_file = %q, want default", settings.Ecrite.OutputFile)
	}
}

func TestLoadSettingsInvalid(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := loadSettings(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("expected error for missing settings file")
		}
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		os.WriteFile(path, []byte("orale: [unclosed"), 0644)
		if _, err := loadSettings(path); err == nil {
			t.Error("expected error for unparseable settings file")
		}
	})

	t.Run("non-positive length falls back", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		os.WriteFile(path, []byte("min_content_length: -1\n"), 0644)
		settings, err := loadSettings(path)
		if err != nil {
			t.Fatalf("loadSettings() error = %v", err)
		}
		if settings.MinContentLength != 20 {
			t.Errorf("min_content_length = %d, want fallback 20", settings.MinContentLength)
		}
	})
}
