package main

import "testing"

func TestDedupeTopics(t *testing.T) {
	byPart := func(t Topic) string { return t.Part }

	tests := []struct {
		name     string
		topics   []Topic
		expected int
	}{
		{
			"identical content same part",
			[]Topic{
				{Content: "Un sujet", Part: "partie_1"},
				{Content: "Un sujet", Part: "partie_1"},
			},
			1,
		},
		{
			"identical content different parts",
			[]Topic{
				{Content: "Un sujet", Part: "partie_1"},
				{Content: "Un sujet", Part: "partie_2"},
			},
			2,
		},
		{
			"distinct content",
			[]Topic{
				{Content: "Un sujet", Part: "partie_1"},
				{Content: "Un autre sujet", Part: "partie_1"},
			},
			2,
		},
		{"empty", nil, 0},
		{"single", []Topic{{Content: "Un sujet"}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dedupeTopics(tt.topics, byPart); len(got) != tt.expected {
				t.Errorf("got %d topics, want %d", len(got), tt.expected)
			}
		})
	}
}

func TestDedupeTopicsKeepsFirstInOrder(t *testing.T) {
	topics := []Topic{
		{Content: "Premier", Part: "partie_1", SourceURL: "first"},
		{Content: "Deuxième", Part: "partie_1"},
		{Content: "Premier", Part: "partie_1", SourceURL: "second"},
		{Content: "Troisième", Part: "partie_1"},
	}

	got := dedupeTopics(topics, func(t Topic) string { return t.Part })
	if len(got) != 3 {
		t.Fatalf("got %d topics, want 3", len(got))
	}
	if got[0].SourceURL != "first" {
		t.Error("first occurrence should be kept")
	}
	if got[0].Content != "Premier" || got[1].Content != "Deuxième" || got[2].Content != "Troisième" {
		t.Errorf("relative order not preserved: %v", got)
	}
}
