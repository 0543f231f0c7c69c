package cmd

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/facetrace/internal/config"
	"github.com/kozaktomas/facetrace/internal/recognizer"
	"github.com/kozaktomas/facetrace/internal/track"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <image-file>",
	Short: "Recognize the face in a single image",
	Long: `Run the recognition pipeline on one image file and print the
result as JSON. A single image has no frame history, so the face only
needs to be detected once.

Provide --name and --relationship to enroll the face when it matches
nobody in the registry.

Examples:
  # Identify a face
  facetrace recognize photo.jpg

  # Enroll an unknown face
  facetrace recognize photo.jpg --name "Marie" --relationship "daughter"`,
	Args: cobra.ExactArgs(1),
	RunE: runRecognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)

	recognizeCmd.Flags().String("name", "", "Name to enroll if the face is unknown")
	recognizeCmd.Flags().String("relationship", "", "Relationship to enroll if the face is unknown")
}

func runRecognize(cmd *cobra.Command, args []string) error {
	name := mustGetString(cmd, "name")
	relationship := mustGetString(cmd, "relationship")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
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

	// A one-shot tracker accepts the first detection of a face.
	result := pipeline.Recognize(ctx, track.New(cfg.Face.MaxTracked), recognizer.Input{
		ImageData:          base64.StdEncoding.EncodeToString(data),
		PersonName:         name,
		PersonRelationship: relationship,
	})

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
