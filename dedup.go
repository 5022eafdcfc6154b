package main

// dedupeTopics removes topics whose content repeats an earlier topic with
// the same grouping key, keeping the first occurrence and preserving order.
// The scope is one file's extraction of one task: the same scenario
// recurring across monthly editions, or in two parts of the same task, is
// meaningful and survives.
func dedupeTopics(topics []Topic, key func(Topic) string) []Topic {
	if len(topics) < 2 {
		return topics
	}

	seen := make(map[string]struct{}, len(topics))
	kept := make([]Topic, 0, len(topics))
	for _, t := range topics {
		k := key(t) + "\x00" + t.Content
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, t)
	}
	return kept
}
