// Package index groups resolved package descriptors into the final
// version-ordered index document and writes the output files.
package index

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/ralt/vpmgen/internal/models"
	"github.com/ralt/vpmgen/internal/semver"
)

// Index is the output aggregate consumed by package-manager clients
type Index struct {
	Name     string            `json:"name"`
	Author   models.Author     `json:"author"`
	URL      string            `json:"url"`
	ID       string            `json:"id"`
	Packages map[string]*Entry `json:"packages"`
}

// Entry holds every published version of one package
type Entry struct {
	Versions VersionMap `json:"versions"`
}

// VersionMap serializes descriptors as a JSON object keyed by version
// string, preserving descending semantic-version order. encoding/json
// always sorts map keys alphabetically, so the ordered object has to be
// written by hand.
type VersionMap []*models.PackageDescriptor

// MarshalJSON implements json.Marshaler
func (m VersionMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, descriptor := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(descriptor.Version)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(descriptor)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Assemble groups descriptors by exact package name, orders each
// group's versions in descending semantic-version order and stamps the
// source author onto every descriptor. The descriptor's own author, if
// any, is discarded so the index presents a single consistent author.
func Assemble(src *models.Source, descriptors []*models.PackageDescriptor) *Index {
	packages := make(map[string]*Entry)

	for _, descriptor := range descriptors {
		author := src.Author
		descriptor.Author = &author

		entry, ok := packages[descriptor.Name]
		if !ok {
			entry = &Entry{}
			packages[descriptor.Name] = entry
		}
		entry.Versions = append(entry.Versions, descriptor)
	}

	for name, entry := range packages {
		sort.SliceStable(entry.Versions, func(i, j int) bool {
			a := semver.Parse(entry.Versions[i].Version)
			b := semver.Parse(entry.Versions[j].Version)
			return semver.Compare(a, b) > 0
		})
		entry.Versions = dedupeVersions(name, entry.Versions)
	}

	return &Index{
		Name:     src.Name,
		Author:   src.Author,
		URL:      src.URL,
		ID:       src.ID,
		Packages: packages,
	}
}

// dedupeVersions keeps the first descriptor per version string so the
// emitted object never carries duplicate keys
func dedupeVersions(name string, versions VersionMap) VersionMap {
	seen := make(map[string]bool, len(versions))
	out := versions[:0]
	for _, descriptor := range versions {
		if seen[descriptor.Version] {
			logrus.Warnf("Package %s publishes version %s more than once, keeping the first", name, descriptor.Version)
			continue
		}
		seen[descriptor.Version] = true
		out = append(out, descriptor)
	}
	return out
}

// Serialize renders the index to its canonical byte form. Package names
// come out in alphabetical order (encoding/json map behavior), version
// keys in descending semantic-version order.
func (idx *Index) Serialize(pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(idx, "", "  ")
	}
	return json.Marshal(idx)
}
