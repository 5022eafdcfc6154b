package main

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// taskShape describes how a task lays out its topics in the scraped JSON.
type taskShape int

const (
	// shapeParts is a mapping from part label to a list of raw strings.
	shapeParts taskShape = iota
	// shapeEntries is a list of entry objects (or bare strings).
	shapeEntries
)

// TaskDef declares one task of a pipeline: its key in the document's topics
// mapping, its layout, and the defaults the source site leaves implicit.
type TaskDef struct {
	Task      Task
	Shape     taskShape
	WordCount string // default target range for entry tasks
	TypeLabel string
	Documents bool // task carries supporting documents
}

// Pipeline describes one topic family: the filename suffix its scraped files
// carry and the tasks those files contain.
type Pipeline struct {
	Name       string
	FileSuffix string
	Tasks      []TaskDef
}

// PipelineOrale covers the Expression Orale files: two tasks, each divided
// into numbered parts.
var PipelineOrale = Pipeline{
	Name:       "expression-orale",
	FileSuffix: "expression-orale.json",
	Tasks: []TaskDef{
		{Task: TaskTwo, Shape: shapeParts},
		{Task: TaskThree, Shape: shapeParts},
	},
}

// PipelineEcrite covers the Expression Écrite files: three tasks given as
// entry lists, with per-task word-count targets and type labels. Only task 3
// prompts carry supporting documents.
var PipelineEcrite = Pipeline{
	Name:       "expression-ecrite",
	FileSuffix: "expression-ecrite.json",
	Tasks: []TaskDef{
		{Task: TaskOne, Shape: shapeEntries, WordCount: "60-120", TypeLabel: "message_personnel"},
		{Task: TaskTwo, Shape: shapeEntries, WordCount: "120-150", TypeLabel: "article_blog"},
		{Task: TaskThree, Shape: shapeEntries, WordCount: "120-180", TypeLabel: "texte_argumentatif", Documents: true},
	},
}

var trailingDigitsRe = regexp.MustCompile(`(\d+)$`)

// partNumber parses the numeric suffix of a part label ("partie_3" -> 3).
// Labels without one come back as 0.
func partNumber(label string) int {
	match := trailingDigitsRe.FindStringSubmatch(strings.TrimSpace(label))
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}

// Extractor turns one decoded source document into normalized topics,
// following its pipeline's task table.
type Extractor struct {
	pipeline Pipeline
	cleaner  *Cleaner
	log      *zap.SugaredLogger
}

// NewExtractor creates an extractor for one pipeline.
func NewExtractor(pipeline Pipeline, cleaner *Cleaner, log *zap.SugaredLogger) *Extractor {
	return &Extractor{pipeline: pipeline, cleaner: cleaner, log: log}
}

// ExtractFile produces the deduplicated topics of every task present in doc,
// plus the number of entries skipped as malformed or boilerplate. Absent
// task keys contribute nothing and a malformed entry never aborts the file,
// but a topics container that is not a mapping fails the whole file: the
// document has the wrong top-level shape and the caller must record it.
func (e *Extractor) ExtractFile(doc map[string]any, sourceFile string) (map[Task][]Topic, int, error) {
	sourceURL := cast.ToString(doc["source_url"])
	rawTopics, present := doc["topics"]
	topics, ok := rawTopics.(map[string]any)
	if present && !ok {
		return nil, 0, fmt.Errorf("topics container in %s is not a mapping", sourceFile)
	}

	byTask := make(map[Task][]Topic, len(e.pipeline.Tasks))
	skipped := 0
	for _, def := range e.pipeline.Tasks {
		raw, ok := topics[string(def.Task)]
		if !ok {
			continue
		}

		var extracted []Topic
		var bad int
		switch def.Shape {
		case shapeParts:
			extracted, bad = e.extractParts(raw, def, sourceURL, sourceFile)
		case shapeEntries:
			extracted, bad = e.extractEntries(raw, def, sourceURL, sourceFile)
		}
		skipped += bad
		byTask[def.Task] = dedupeTopics(extracted, func(t Topic) string { return t.Part })
	}
	return byTask, skipped, nil
}

// extractParts handles the parts-map layout of the oral tasks. Parts are
// visited in part-number order so the output is deterministic regardless of
// JSON decoding order.
func (e *Extractor) extractParts(raw any, def TaskDef, sourceURL, sourceFile string) ([]Topic, int) {
	parts, err := cast.ToStringMapE(raw)
	if err != nil {
		e.log.Warnw("unexpected task layout, skipping task", "file", sourceFile, "task", def.Task)
		return nil, 1
	}

	labels := make([]string, 0, len(parts))
	for label := range parts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		ni, nj := partNumber(labels[i]), partNumber(labels[j])
		if ni != nj {
			return ni < nj
		}
		return labels[i] < labels[j]
	})

	var topics []Topic
	skipped := 0
	for _, label := range labels {
		entries, err := cast.ToStringSliceE(parts[label])
		if err != nil {
			e.log.Warnw("unexpected part layout, skipping part",
				"file", sourceFile, "task", def.Task, "part", label)
			skipped++
			continue
		}

		number := partNumber(label)
		for _, entry := range entries {
			content, ok := e.cleaner.Clean(entry)
			if !ok {
				skipped++
				continue
			}
			topics = append(topics, Topic{
				Content:    content,
				SourceURL:  sourceURL,
				SourceFile: sourceFile,
				Task:       def.Task,
				Part:       label,
				PartNumber: number,
			})
		}
	}
	return topics, skipped
}

// extractEntries handles the entry-list layout of the written tasks. Entries
// may be objects or bare strings; bare strings take the task's defaults.
// Supporting documents pass through verbatim: they are reference material,
// not prompts, and legitimately contain structural text.
func (e *Extractor) extractEntries(raw any, def TaskDef, sourceURL, sourceFile string) ([]Topic, int) {
	entries, ok := raw.([]any)
	if !ok {
		e.log.Warnw("unexpected task layout, skipping task", "file", sourceFile, "task", def.Task)
		return nil, 1
	}

	var topics []Topic
	skipped := 0
	for _, entry := range entries {
		var content, combination, wordCount string
		var documents []string

		switch v := entry.(type) {
		case string:
			content = v
		case map[string]any:
			content = cast.ToString(v["content"])
			combination = cast.ToString(v["combination"])
			wordCount = cast.ToString(v["word_count"])
			if def.Documents {
				if docs, err := cast.ToStringSliceE(v["documents"]); err == nil && len(docs) > 0 {
					documents = docs
				}
			}
		default:
			e.log.Warnw("unexpected entry type, skipping entry", "file", sourceFile, "task", def.Task)
			skipped++
			continue
		}
		if wordCount == "" {
			wordCount = def.WordCount
		}

		cleaned, ok := e.cleaner.Clean(content)
		if !ok {
			skipped++
			continue
		}
		topics = append(topics, Topic{
			Content:     cleaned,
			SourceURL:   sourceURL,
			SourceFile:  sourceFile,
			Task:        def.Task,
			WordCount:   wordCount,
			TypeLabel:   def.TypeLabel,
			Documents:   documents,
			Combination: combination,
		})
	}
	return topics, skipped
}
