package main

import (
	"sort"
	"strconv"
	"strings"
)

// frenchMonths maps lowercase French month names to their 1-based calendar
// position. Filenames normally use the unaccented spellings, but the scraped
// sources are inconsistent, so both forms resolve.
var frenchMonths = map[string]int{
	"janvier":   1,
	"fevrier":   2,
	"février":   2,
	"mars":      3,
	"avril":     4,
	"mai":       5,
	"juin":      6,
	"juillet":   7,
	"aout":      8,
	"août":      8,
	"septembre": 9,
	"octobre":   10,
	"novembre":  11,
	"decembre":  12,
	"décembre":  12,
}

// FileDate is the (year, month) ordering key derived from a source filename.
// The zero value sorts oldest and doubles as the fallback for filenames the
// resolver cannot understand.
type FileDate struct {
	Year  int
	Month int
}

// After reports whether d is more recent than other.
func (d FileDate) After(other FileDate) bool {
	if d.Year != other.Year {
		return d.Year > other.Year
	}
	return d.Month > other.Month
}

// parseFileDate extracts the ordering key from a filename shaped like
// {month}-{year}-<suffix>.json. Two-digit years are read as 2000+. Malformed
// names return the zero FileDate rather than an error, so a stray file in
// the input directory never aborts a run.
func parseFileDate(filename string) FileDate {
	base := strings.TrimSuffix(filename, ".json")
	parts := strings.Split(base, "-")
	if len(parts) < 2 {
		return FileDate{}
	}

	month, ok := frenchMonths[strings.ToLower(parts[0])]
	if !ok {
		return FileDate{}
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 0 {
		return FileDate{}
	}
	switch len(parts[1]) {
	case 4:
	case 2:
		year += 2000
	default:
		return FileDate{}
	}

	return FileDate{Year: year, Month: month}
}

// sortFilesByDate orders filenames newest first. Files sharing a date, and
// files without a recognizable one, keep their discovery order.
func sortFilesByDate(files []string) []string {
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return parseFileDate(sorted[i]).After(parseFileDate(sorted[j]))
	})
	return sorted
}
