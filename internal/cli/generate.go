package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ralt/vpmgen/internal/config"
	"github.com/ralt/vpmgen/internal/github"
	"github.com/ralt/vpmgen/internal/hashcache"
	"github.com/ralt/vpmgen/internal/index"
	"github.com/ralt/vpmgen/internal/models"
	"github.com/ralt/vpmgen/internal/pipeline"
	"github.com/ralt/vpmgen/internal/signer"
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	var (
		sourcePath  string
		outputPath  string
		cachePath   string
		pretty      bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch releases and regenerate the index",
		Long: `Reads the source configuration, fetches every repository's releases,
resolves package descriptors and archive hashes, and rewrites the index
and hash cache files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Flags override the environment when set.
			if cmd.Flags().Changed("source") {
				cfg.SourcePath = sourcePath
			}
			if cmd.Flags().Changed("output") {
				cfg.OutputPath = outputPath
			}
			if cmd.Flags().Changed("cache") {
				cfg.CachePath = cachePath
			}
			if cmd.Flags().Changed("pretty") {
				cfg.Pretty = pretty
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.Concurrency = concurrency
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logrus.Info("Starting index generation...")
			logrus.Debugf("Configuration: %+v", cfg)

			// An interrupt cancels every in-flight request; nothing is
			// written after a cancelled run.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runGeneration(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&sourcePath, "source", "s", "source.json", "Source configuration file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "index.json", "Index output file")
	cmd.Flags().StringVarP(&cachePath, "cache", "c", "cache.json", "Hash cache file")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the index output")
	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "Maximum in-flight release fetches")

	return cmd
}

func runGeneration(ctx context.Context, cfg *config.Config) error {
	// Step 1: Read the source configuration. This is the only fatal
	// read; everything network-side degrades per release.
	readStart := time.Now()
	src, err := models.LoadSource(cfg.SourcePath)
	if err != nil {
		return err
	}
	logrus.Infof("Read source %q (%d repositories) in %s", src.Name, len(src.GithubRepos), time.Since(readStart).Round(time.Millisecond))

	cache := hashcache.LoadFile(cfg.CachePath)
	logrus.Infof("Hash cache: %d entries", cache.Len())

	// Step 2: Initialize the optional index signer
	var gpgSigner signer.Signer
	if cfg.GPGKeyPath != "" {
		gpgSigner, err = signer.NewGPGSigner(cfg.GPGKeyPath, cfg.GPGPassphrase)
		if err != nil {
			return &models.IndexError{
				Type: models.ErrSigning,
				Err:  err,
			}
		}
		logrus.Info("GPG signer initialized")
	}

	// Step 3: Fetch releases and resolve descriptors
	fetchStart := time.Now()
	client := github.NewClient(github.WithToken(cfg.GithubToken))
	pipe := pipeline.New(client, cache, cfg.Concurrency)

	descriptors, err := pipe.Run(ctx, src)
	if err != nil {
		return err
	}
	logrus.Infof("Fetched %d package versions in %s", len(descriptors), time.Since(fetchStart).Round(time.Millisecond))

	if len(descriptors) == 0 {
		logrus.Warn("No releases yielded a descriptor and archive pair")
	}

	// Step 4: Assemble and write the index plus the updated cache
	writeStart := time.Now()
	idx := index.Assemble(src, descriptors)

	err = index.Write(idx, cache, index.WriteOptions{
		OutputPath: cfg.OutputPath,
		CachePath:  cfg.CachePath,
		Pretty:     cfg.Pretty,
		Signer:     gpgSigner,
	})
	if err != nil {
		return err
	}
	logrus.Infof("Wrote %s (%d packages) and %s in %s", cfg.OutputPath, len(idx.Packages), cfg.CachePath, time.Since(writeStart).Round(time.Millisecond))

	logrus.Info("Index generation completed successfully!")
	return nil
}
