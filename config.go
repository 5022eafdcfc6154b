package main

import (
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const defaultMinContentLength = 20

//go:embed .tcf-topics/settings.yaml
var defaultSettings string

// PipelineSettings holds one pipeline's output path and cleaning rules. The
// reject lists are heuristic by nature: they cover the boilerplate observed
// on the source sites so far and are meant to be extended in the settings
// file, not in code.
type PipelineSettings struct {
	OutputFile        string   `yaml:"output_file"`
	StripPartPrefix   bool     `yaml:"strip_part_prefix"`
	RejectPrefixes    []string `yaml:"reject_prefixes"`
	RejectFragments   []string `yaml:"reject_fragments"`
	RepeatedFragments []string `yaml:"repeated_fragments"`
}

// Settings represents the YAML configuration structure
type Settings struct {
	InputDirectory   string           `yaml:"input_directory"`
	MinContentLength int              `yaml:"min_content_length"`
	Orale            PipelineSettings `yaml:"orale"`
	Ecrite           PipelineSettings `yaml:"ecrite"`
}

// RulesFor returns the settings block for the named pipeline.
func (s *Settings) RulesFor(name string) PipelineSettings {
	if name == PipelineEcrite.Name {
		return s.Ecrite
	}
	return s.Orale
}

// loadSettings reads a settings file layered over the embedded defaults, so
// a partial file only overrides what it names. An empty path keeps the
// defaults alone.
func loadSettings(path string) (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal([]byte(defaultSettings), &settings); err != nil {
		return nil, fmt.Errorf("parsing embedded default settings: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading settings file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("parsing settings YAML %s: %w", path, err)
		}
	}

	if settings.MinContentLength <= 0 {
		zap.S().Warnf("min_content_length is %d, defaulting to %d", settings.MinContentLength, defaultMinContentLength)
		settings.MinContentLength = defaultMinContentLength
	}
	if settings.InputDirectory == "" {
		settings.InputDirectory = "output"
	}

	return &settings, nil
}
