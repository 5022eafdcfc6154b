package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// TopicOrganizer drives one pipeline end to end: it discovers the scraped
// JSON files carrying its suffix, orders them newest first, extracts and
// deduplicates every topic, and holds the aggregate in memory for querying
// and export. There is no state between runs other than the exported file;
// LoadAllTopics always rebuilds from the source files.
type TopicOrganizer struct {
	pipeline  Pipeline
	settings  *Settings
	extractor *Extractor
	log       *zap.SugaredLogger

	byTask         map[Task][]Topic
	filesProcessed []string
	fileResults    []FileResult
	totalTopics    int
	skippedEntries int
}

// Statistics summarizes the outcome of one load.
type Statistics struct {
	TotalFiles          int
	FailedFiles         int
	TotalTopics         int
	SkippedEntries      int
	TaskCounts          map[Task]int
	TopicsWithDocuments int
}

// NewTopicOrganizer creates an organizer for one pipeline, with the cleaner
// configured from that pipeline's settings block.
func NewTopicOrganizer(pipeline Pipeline, settings *Settings, log *zap.SugaredLogger) *TopicOrganizer {
	cleaner := NewCleaner(settings.MinContentLength, settings.RulesFor(pipeline.Name))
	return &TopicOrganizer{
		pipeline:  pipeline,
		settings:  settings,
		extractor: NewExtractor(pipeline, cleaner, log),
		log:       log,
		byTask:    make(map[Task][]Topic),
	}
}

// LoadAllTopics scans the input directory for this pipeline's files and
// rebuilds the aggregate from scratch, newest file first. A missing or
// unreadable directory is the only fatal condition; a file that fails to
// parse is recorded and skipped.
func (o *TopicOrganizer) LoadAllTopics() (map[Task][]Topic, error) {
	entries, err := os.ReadDir(o.settings.InputDirectory)
	if err != nil {
		return nil, fmt.Errorf("scanning input directory %s: %w", o.settings.InputDirectory, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), o.pipeline.FileSuffix) {
			files = append(files, entry.Name())
		}
	}
	if len(files) == 0 {
		o.log.Warnw("no source files found",
			"dir", o.settings.InputDirectory, "suffix", o.pipeline.FileSuffix)
	}
	files = sortFilesByDate(files)

	o.byTask = make(map[Task][]Topic, len(o.pipeline.Tasks))
	o.filesProcessed = []string{}
	o.fileResults = nil
	o.totalTopics = 0
	o.skippedEntries = 0

	for _, name := range files {
		o.processFile(name)
	}

	o.log.Infow("load complete",
		"pipeline", o.pipeline.Name,
		"files", len(o.filesProcessed),
		"topics", o.totalTopics,
		"skipped_entries", o.skippedEntries)
	return o.byTask, nil
}

// processFile extracts one source file into the aggregate. Failures are
// recorded as FileResults, never raised.
func (o *TopicOrganizer) processFile(name string) {
	path := filepath.Join(o.settings.InputDirectory, name)
	data, err := os.ReadFile(path)
	if err != nil {
		o.recordFailure(name, fmt.Errorf("reading %s: %w", name, err))
		return
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		o.recordFailure(name, fmt.Errorf("parsing %s: %w", name, err))
		return
	}

	extracted, skipped, err := o.extractor.ExtractFile(doc, name)
	if err != nil {
		o.recordFailure(name, err)
		return
	}
	count := 0
	for _, def := range o.pipeline.Tasks {
		topics := extracted[def.Task]
		o.byTask[def.Task] = append(o.byTask[def.Task], topics...)
		count += len(topics)
	}

	o.totalTopics += count
	o.skippedEntries += skipped
	o.filesProcessed = append(o.filesProcessed, name)
	o.fileResults = append(o.fileResults, FileResult{
		Filename: name,
		Status:   StatusSuccess,
		Topics:   count,
		Skipped:  skipped,
	})
	o.log.Infow("processed", "file", name, "topics", count, "skipped_entries", skipped)
}

func (o *TopicOrganizer) recordFailure(name string, err error) {
	o.fileResults = append(o.fileResults, FileResult{
		Filename: name,
		Status:   StatusError,
		Err:      err,
	})
	o.log.Warnw("skipping file", "file", name, "error", err)
}

// GetTopicsByTask returns the aggregated topics for one task, in file order
// then extraction order.
func (o *TopicOrganizer) GetTopicsByTask(task Task) []Topic {
	return o.byTask[task]
}

// GetTopicsBySource returns the per-task topics attributed to one source
// file. Unknown filenames come back empty.
func (o *TopicOrganizer) GetTopicsBySource(sourceFile string) map[Task][]Topic {
	byTask := make(map[Task][]Topic, len(o.pipeline.Tasks))
	for _, def := range o.pipeline.Tasks {
		var matched []Topic
		for _, t := range o.byTask[def.Task] {
			if t.SourceFile == sourceFile {
				matched = append(matched, t)
			}
		}
		byTask[def.Task] = matched
	}
	return byTask
}

// GetTopicsByPart filters one task's topics by part number. Only the oral
// pipeline attaches parts, so other pipelines always come back empty.
func (o *TopicOrganizer) GetTopicsByPart(task Task, number int) []Topic {
	var matched []Topic
	for _, t := range o.byTask[task] {
		if t.Part != "" && t.PartNumber == number {
			matched = append(matched, t)
		}
	}
	return matched
}

// FileResults reports the per-file outcome of the last load, including the
// files skipped for unreadable or unparseable content.
func (o *TopicOrganizer) FileResults() []FileResult {
	return o.fileResults
}

// GetStatistics returns detailed counters for the last load.
func (o *TopicOrganizer) GetStatistics() Statistics {
	stats := Statistics{
		TotalFiles:     len(o.filesProcessed),
		TotalTopics:    o.totalTopics,
		SkippedEntries: o.skippedEntries,
		TaskCounts:     make(map[Task]int, len(o.pipeline.Tasks)),
	}
	for _, result := range o.fileResults {
		if result.Status == StatusError {
			stats.FailedFiles++
		}
	}
	for _, def := range o.pipeline.Tasks {
		stats.TaskCounts[def.Task] = len(o.byTask[def.Task])
		for _, t := range o.byTask[def.Task] {
			if len(t.Documents) > 0 {
				stats.TopicsWithDocuments++
			}
		}
	}
	return stats
}

// ExportOrganizedTopics writes the summary plus the per-task aggregates as
// one JSON document. The document is staged in a temp file and renamed into
// place, so a failure partway through leaves the previous export untouched
// rather than a truncated file.
func (o *TopicOrganizer) ExportOrganizedTopics(path string) error {
	summary := map[string]any{
		"total_files_processed": len(o.filesProcessed),
		"total_topics":          o.totalTopics,
		"files_processed":       append([]string{}, o.filesProcessed...),
	}
	doc := map[string]any{"summary": summary}
	for _, def := range o.pipeline.Tasks {
		topics := o.byTask[def.Task]
		if topics == nil {
			topics = []Topic{}
		}
		key := fmt.Sprintf("task%d_topics", def.Task.Number())
		summary[key+"_count"] = len(topics)
		doc[key] = topics
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("staging export: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing export: %w", err)
	}

	o.log.Infow("exported", "path", path, "topics", o.totalTopics)
	return nil
}

// DisplaySampleTopics prints the first sampleSize topics of every task with
// truncated previews. Read-only; handy for eyeballing a fresh load.
func (o *TopicOrganizer) DisplaySampleTopics(sampleSize int) {
	for _, def := range o.pipeline.Tasks {
		topics := o.byTask[def.Task]
		fmt.Printf("\nTask %d sample (%d total):\n", def.Task.Number(), len(topics))
		for i, t := range topics {
			if i >= sampleSize {
				break
			}
			preview := t.Content
			if utf8.RuneCountInString(preview) > 200 {
				preview = string([]rune(preview)[:200]) + "..."
			}
			if t.Part != "" {
				fmt.Printf("%d. [%s - %s]\n   %s\n", i+1, t.SourceFile, t.Part, preview)
			} else {
				fmt.Printf("%d. [%s - %s mots]\n   %s\n", i+1, t.SourceFile, t.WordCount, preview)
			}
		}
	}
}
