package corpus

import (
	"encoding/json"
	"fmt"
	"os"
)

// Entry is one document of the merged marine dataset.
type Entry struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// Load reads a JSON array of corpus entries and returns the non-empty
// content strings in file order.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse corpus %s: %w", path, err)
	}
	var contents []string
	for _, e := range entries {
		if e.Content != "" {
			contents = append(contents, e.Content)
		}
	}
	return contents, nil
}
