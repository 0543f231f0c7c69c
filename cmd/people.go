package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/facetrace/internal/config"
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "List enrolled people",
	Long:  `List every person enrolled in the identity registry.`,
	RunE:  runPeople,
}

func init() {
	rootCmd.AddCommand(peopleCmd)
}

func runPeople(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Load()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	people, err := store.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list people: %w", err)
	}

	if len(people) == 0 {
		fmt.Println("No people enrolled yet")
		return nil
	}

	fmt.Printf("Enrolled people: %d\n\n", len(people))
	for _, p := range people {
		fmt.Printf("  #%d %s (%s) color=%s enrolled=%s\n",
			p.ID, p.Name, p.Relationship, p.Color, p.CreatedAt.Format("2006-01-02"))
	}
	return nil
}
