package index

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ralt/vpmgen/internal/hashcache"
	"github.com/ralt/vpmgen/internal/models"
	"github.com/ralt/vpmgen/internal/signer"
	"github.com/ralt/vpmgen/internal/utils"
)

// WriteOptions controls output emission
type WriteOptions struct {
	OutputPath string
	CachePath  string
	Pretty     bool

	// Signer, when non-nil, produces a detached armored signature of
	// the index at OutputPath + ".asc".
	Signer signer.Signer
}

// Write serializes the index and the updated hash cache and replaces
// both files atomically. Either file write failing is fatal; the prior
// file is left untouched by a partial write.
func Write(idx *Index, cache *hashcache.Cache, opts WriteOptions) error {
	data, err := idx.Serialize(opts.Pretty)
	if err != nil {
		return &models.IndexError{
			Type:    models.ErrWrite,
			Subject: opts.OutputPath,
			Err:     fmt.Errorf("failed to serialize index: %w", err),
		}
	}

	if err := utils.WriteFileAtomic(opts.OutputPath, data, 0644); err != nil {
		return &models.IndexError{
			Type:    models.ErrWrite,
			Subject: opts.OutputPath,
			Err:     err,
		}
	}
	logrus.Debugf("Wrote index (%d bytes) to %s", len(data), opts.OutputPath)

	if opts.Signer != nil {
		signature, err := opts.Signer.SignDetached(data)
		if err != nil {
			return &models.IndexError{
				Type:    models.ErrSigning,
				Subject: opts.OutputPath,
				Err:     err,
			}
		}
		sigPath := opts.OutputPath + ".asc"
		if err := utils.WriteFileAtomic(sigPath, signature, 0644); err != nil {
			return &models.IndexError{
				Type:    models.ErrWrite,
				Subject: sigPath,
				Err:     err,
			}
		}
		logrus.Debugf("Wrote index signature to %s", sigPath)
	}

	cacheData, err := cache.Serialize()
	if err != nil {
		return &models.IndexError{
			Type:    models.ErrWrite,
			Subject: opts.CachePath,
			Err:     fmt.Errorf("failed to serialize hash cache: %w", err),
		}
	}
	if err := utils.WriteFileAtomic(opts.CachePath, cacheData, 0644); err != nil {
		return &models.IndexError{
			Type:    models.ErrWrite,
			Subject: opts.CachePath,
			Err:     err,
		}
	}
	logrus.Debugf("Wrote hash cache (%d entries) to %s", cache.Len(), opts.CachePath)

	return nil
}
