// Package pipeline fans out across the source's repositories and
// releases, pairs package descriptors with their archive assets and
// resolves content hashes through the cache.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/ralt/vpmgen/internal/github"
	"github.com/ralt/vpmgen/internal/hashcache"
	"github.com/ralt/vpmgen/internal/models"
	"github.com/ralt/vpmgen/internal/utils"
)

// DescriptorAssetName is the asset holding the package metadata
const DescriptorAssetName = "package.json"

// zipContentTypes are the declared content types accepted as an archive
var zipContentTypes = map[string]bool{
	"application/zip":              true,
	"application/x-zip-compressed": true,
}

// Pipeline resolves the package descriptors published by a source
type Pipeline struct {
	client      *github.Client
	cache       *hashcache.Cache
	concurrency int64
	hashing     singleflight.Group
}

// New creates a pipeline. concurrency caps the number of in-flight
// release tasks across all repositories.
func New(client *github.Client, cache *hashcache.Cache, concurrency int) *Pipeline {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pipeline{
		client:      client,
		cache:       cache,
		concurrency: int64(concurrency),
	}
}

// Run fans out one task per repository and, within it, one bounded task
// per release. Per-release failures are logged and absorbed; the run
// only fails on cancellation. Collection order is unspecified, the
// assembler re-orders everything downstream.
func (p *Pipeline) Run(ctx context.Context, src *models.Source) ([]*models.PackageDescriptor, error) {
	results := make(chan *models.PackageDescriptor)
	sem := semaphore.NewWeighted(p.concurrency)
	g, ctx := errgroup.WithContext(ctx)

	for _, repo := range src.GithubRepos {
		repo := repo
		g.Go(func() error {
			releases, err := p.client.ListReleases(ctx, repo)
			if err != nil {
				logrus.Warnf("Failed to list releases for %s: %v", repo, err)
				return nil
			}
			logrus.Debugf("Repository %s: %d releases", repo, len(releases))

			for _, release := range releases {
				release := release
				if err := sem.Acquire(ctx, 1); err != nil {
					return err
				}
				g.Go(func() error {
					defer sem.Release(1)

					descriptor, err := p.processRelease(ctx, repo, release)
					if err != nil {
						logrus.Warnf("Skipping release %s/%s: %v", repo, release.Name, err)
						return nil
					}
					if descriptor == nil {
						return nil
					}

					select {
					case results <- descriptor:
						return nil
					case <-ctx.Done():
						return ctx.Err()
					}
				})
			}
			return nil
		})
	}

	var collected []*models.PackageDescriptor
	done := make(chan struct{})
	go func() {
		for descriptor := range results {
			collected = append(collected, descriptor)
		}
		close(done)
	}()

	err := g.Wait()
	close(results)
	<-done

	if err != nil {
		return nil, err
	}
	return collected, nil
}

// processRelease scans a release's assets for the descriptor file and a
// zip archive. First match wins for each kind. A release yielding only
// one of the two contributes nothing.
func (p *Pipeline) processRelease(ctx context.Context, repo string, release models.Release) (*models.PackageDescriptor, error) {
	var descriptorURL, archiveURL string
	for _, asset := range release.Assets {
		if descriptorURL == "" && asset.Name == DescriptorAssetName {
			descriptorURL = asset.DownloadURL
		}
		if archiveURL == "" && zipContentTypes[asset.ContentType] {
			archiveURL = asset.DownloadURL
		}
		if descriptorURL != "" && archiveURL != "" {
			break
		}
	}

	switch {
	case descriptorURL == "" && archiveURL == "":
		logrus.Debugf("Release %s/%s has no descriptor and no archive, skipping", repo, release.Name)
		return nil, nil
	case descriptorURL == "":
		logrus.Debugf("Release %s/%s has an archive but no descriptor, skipping", repo, release.Name)
		return nil, nil
	case archiveURL == "":
		logrus.Debugf("Release %s/%s has a descriptor but no archive, skipping", repo, release.Name)
		return nil, nil
	}

	data, err := p.client.Download(ctx, descriptorURL)
	if err != nil {
		return nil, &models.IndexError{
			Type:    models.ErrFetch,
			Subject: descriptorURL,
			Err:     err,
		}
	}

	var descriptor models.PackageDescriptor
	if err := json.Unmarshal(data, &descriptor); err != nil {
		return nil, &models.IndexError{
			Type:    models.ErrParse,
			Subject: descriptorURL,
			Err:     err,
		}
	}
	if descriptor.Name == "" || descriptor.Version == "" {
		return nil, &models.IndexError{
			Type:    models.ErrParse,
			Subject: descriptorURL,
			Err:     fmt.Errorf("descriptor is missing name or version"),
		}
	}

	descriptor.URL = archiveURL

	// A descriptor may ship a trusted hash already; only compute one
	// when it doesn't.
	if descriptor.ZipSHA256 == "" {
		digest, err := p.resolveHash(ctx, archiveURL)
		if err != nil {
			return nil, err
		}
		descriptor.ZipSHA256 = digest
	}

	return &descriptor, nil
}

// resolveHash returns the content hash for an archive URL, from the
// cache when possible. Concurrent misses on the same URL collapse into
// a single download and digest.
func (p *Pipeline) resolveHash(ctx context.Context, url string) (string, error) {
	if digest, ok := p.cache.Get(url); ok {
		return digest, nil
	}

	v, err, _ := p.hashing.Do(url, func() (interface{}, error) {
		if digest, ok := p.cache.Get(url); ok {
			return digest, nil
		}

		data, err := p.client.Download(ctx, url)
		if err != nil {
			return nil, &models.IndexError{
				Type:    models.ErrFetch,
				Subject: url,
				Err:     err,
			}
		}

		if err := utils.VerifyZip(data); err != nil {
			logrus.Warnf("Archive %s is not a readable zip: %v", url, err)
		}

		digest := utils.SHA256Hex(data)
		p.cache.Put(url, digest)
		return digest, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
