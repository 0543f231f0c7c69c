package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/facetrace/internal/config"
	"github.com/kozaktomas/facetrace/internal/recognizer"
	"github.com/kozaktomas/facetrace/internal/track"
)

var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "Recognize faces in a directory of images",
	Long: `Run the recognition pipeline over every image in a directory and
report how many faces were recognized, unknown, or missing.

Each image is treated as an independent frame; no identities are
enrolled during a scan.

Examples:
  # Scan a directory (5 concurrent workers)
  facetrace scan ./photos

  # Use different concurrency
  facetrace scan ./photos --concurrency 3

  # Limit number of images to process
  facetrace scan ./photos --limit 100`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().Int("concurrency", 5, "Number of parallel workers")
	scanCmd.Flags().Int("limit", 0, "Limit number of images to process (0 = no limit)")
}

// imageExtensions are the file extensions scanned as camera frames.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

func listImages(dir string, limit int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			images = append(images, filepath.Join(dir, entry.Name()))
		}
		if limit > 0 && len(images) >= limit {
			break
		}
	}
	return images, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	concurrency := mustGetInt(cmd, "concurrency")
	limit := mustGetInt(cmd, "limit")

	images, err := listImages(args[0], limit)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		fmt.Println("No images found")
		return nil
	}

	ctx := context.Background()
	cfg := config.Load()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	pipeline, err := buildPipeline(cfg, store)
	if err != nil {
		return err
	}

	fmt.Printf("Images to process: %d\n\n", len(images))

	bar := progressbar.NewOptions(len(images),
		progressbar.OptionSetDescription("Recognizing faces"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	var recognized, unknown, noFace, errored int
	var mu sync.Mutex

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, path := range images {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			data, err := os.ReadFile(path)
			if err != nil {
				mu.Lock()
				errored++
				mu.Unlock()
				bar.Add(1)
				return
			}

			// Each image is its own frame sequence.
			result := pipeline.Recognize(ctx, track.New(cfg.Face.MaxTracked), recognizer.Input{
				ImageData: base64.StdEncoding.EncodeToString(data),
			})

			mu.Lock()
			switch {
			case result.Error != "":
				errored++
			case result.Success:
				recognized++
			case result.Confidence > 0:
				unknown++
			default:
				noFace++
			}
			mu.Unlock()
			bar.Add(1)
		}(path)
	}

	wg.Wait()
	fmt.Println()

	fmt.Printf("\nCompleted: %d recognized, %d unknown, %d without faces, %d errors\n",
		recognized, unknown, noFace, errored)
	return nil
}
