package models

// Release is one tagged release of a scanned repository
type Release struct {
	Name   string  `json:"name"`
	Assets []Asset `json:"assets"`
}

// Asset is one file attached to a release
type Asset struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size,omitempty"`
}
