package models

// PackageDescriptor is the package metadata extracted from a release's
// package.json asset. URL and Author are back-filled after extraction;
// ZipSHA256 is back-filled after cache lookup or computation. Fields
// without a value are omitted from the serialized index entirely.
type PackageDescriptor struct {
	// Core metadata
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName,omitempty"`
	Version     string  `json:"version"`
	Author      *Author `json:"author,omitempty"`
	Description string  `json:"description,omitempty"`
	Unity       string  `json:"unity,omitempty"`

	// Archive information
	URL       string `json:"url,omitempty"`
	ZipSHA256 string `json:"zipSHA256,omitempty"`

	// Dependency maps
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	VPMDependencies map[string]string `json:"vpmDependencies,omitempty"`

	// Legacy migration metadata
	LegacyFolders  map[string]string `json:"legacyFolders,omitempty"`
	LegacyFiles    map[string]string `json:"legacyFiles,omitempty"`
	LegacyPackages []string          `json:"legacyPackages,omitempty"`

	ChangelogURL string `json:"changelogUrl,omitempty"`
}
