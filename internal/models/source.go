package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// Author identifies who publishes the index. On the wire it is either a
// bare string ("Alice") or an object ({"name": ..., "url": ...}); the
// string form is kept on output whenever no URL is set.
type Author struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// MarshalJSON emits the string form when only a name is present
func (a Author) MarshalJSON() ([]byte, error) {
	if a.URL == "" {
		return json.Marshal(a.Name)
	}
	type author Author
	return json.Marshal(author(a))
}

// UnmarshalJSON accepts both the string and the object form
func (a *Author) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*a = Author{Name: name}
		return nil
	}
	type author Author
	var obj author
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*a = Author(obj)
	return nil
}

// Source describes the index identity and the repositories to scan.
// Immutable once loaded.
type Source struct {
	Name        string   `json:"name"`
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Author      Author   `json:"author"`
	GithubRepos []string `json:"githubRepos"`
}

// LoadSource reads and parses the source configuration file. A missing
// or unparsable file is fatal to the run.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IndexError{
			Type:    ErrConfig,
			Subject: path,
			Err:     fmt.Errorf("failed to read source file: %w", err),
		}
	}

	var src Source
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, &IndexError{
			Type:    ErrConfig,
			Subject: path,
			Err:     fmt.Errorf("failed to parse source file: %w", err),
		}
	}

	return &src, nil
}
