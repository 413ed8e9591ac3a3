package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListReleases(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/widget/releases" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer secret")
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.github+json" {
			t.Errorf("Accept = %q", got)
		}

		w.Write([]byte(`[
			{"name":"v1.0.0","assets":[
				{"name":"package.json","content_type":"application/json","browser_download_url":"https://example.com/package.json","size":120},
				{"name":"widget.zip","content_type":"application/zip","browser_download_url":"https://example.com/widget.zip","size":2048}
			]},
			{"name":"v0.9.0","assets":[]}
		]`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithToken("secret"))
	releases, err := client.ListReleases(context.Background(), "acme/widget")
	if err != nil {
		t.Fatalf("ListReleases failed: %v", err)
	}

	if len(releases) != 2 {
		t.Fatalf("expected 2 releases, got %d", len(releases))
	}
	if releases[0].Name != "v1.0.0" {
		t.Errorf("release name = %q", releases[0].Name)
	}
	if len(releases[0].Assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(releases[0].Assets))
	}

	asset := releases[0].Assets[1]
	if asset.ContentType != "application/zip" {
		t.Errorf("ContentType = %q", asset.ContentType)
	}
	if asset.DownloadURL != "https://example.com/widget.zip" {
		t.Errorf("DownloadURL = %q", asset.DownloadURL)
	}
	if asset.Size != 2048 {
		t.Errorf("Size = %d", asset.Size)
	}
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("unexpected Authorization header: %q", got)
		}
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	if _, err := client.ListReleases(context.Background(), "acme/widget"); err != nil {
		t.Fatalf("ListReleases failed: %v", err)
	}
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusForbidden, ErrRateLimited},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, ErrUpstreamDown},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
		}))

		client := NewClient(WithBaseURL(server.URL))
		_, err := client.Download(context.Background(), server.URL+"/asset.zip")
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: err = %v, want %v", tt.status, err, tt.want)
		}
		server.Close()
	}
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("archive bytes"))
	}))
	defer server.Close()

	client := NewClient()
	data, err := client.Download(context.Background(), server.URL+"/widget.zip")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if string(data) != "archive bytes" {
		t.Errorf("Download = %q", data)
	}
}
