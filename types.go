package main

// Task identifies one exam-question category. The values mirror the task
// keys used in the scraped JSON documents.
type Task string

const (
	TaskOne   Task = "tache_1"
	TaskTwo   Task = "tache_2"
	TaskThree Task = "tache_3"
)

// Number is the task's position within its pipeline ("tache_3" -> 3). It
// builds the task{N}_topics keys of the exported document.
func (t Task) Number() int {
	return partNumber(string(t))
}

// Topic is one cleaned exam topic with its provenance. Both pipelines share
// the shape: Part and PartNumber are set by the oral pipeline, WordCount,
// TypeLabel, Documents and Combination by the written one. Fields a pipeline
// does not use stay absent from the export. That also omits part_number for
// an oral part whose label has no trailing number: the field reads back as 0
// either way, so the round trip is lossless.
type Topic struct {
	Content     string   `json:"content"`
	SourceURL   string   `json:"source_url"`
	SourceFile  string   `json:"source_file"`
	Task        Task     `json:"task"`
	Part        string   `json:"part,omitempty"`
	PartNumber  int      `json:"part_number,omitempty"`
	WordCount   string   `json:"word_count,omitempty"`
	TypeLabel   string   `json:"type_label,omitempty"`
	Documents   []string `json:"documents,omitempty"`
	Combination string   `json:"combination,omitempty"`
}

// ProcessingStatus represents the outcome status of processing a source file
type ProcessingStatus string

const (
	StatusSuccess ProcessingStatus = "success"
	StatusError   ProcessingStatus = "error"
)

// FileResult tracks the outcome of processing each source file
type FileResult struct {
	Filename string
	Status   ProcessingStatus
	Topics   int
	Skipped  int
	Err      error
}
