package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reunite-ai/reunite/internal/api"
	"github.com/reunite-ai/reunite/internal/auth"
	"github.com/reunite-ai/reunite/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check backend connectivity and local setup",
	Long: `Check backend connectivity and local setup.

Verifies the config file, backend reachability, the stored credential,
and whether the map tile service is configured.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ok := func(label string) { fmt.Printf("  ✓ %s\n", label) }
	bad := func(label string) { fmt.Printf("  ✗ %s\n", label) }

	fmt.Println("reunite doctor")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		bad(fmt.Sprintf("config: %v", err))
		return fmt.Errorf("config is unusable, run 'reunite setup'")
	}
	if config.Exists() {
		ok("config file found")
	} else {
		bad("no config file (defaults in effect, run 'reunite setup' to create one)")
	}

	store := auth.NewFileStore()
	client := api.New(cfg.APIBaseURL, time.Duration(cfg.RequestTimeout)*time.Second, store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stats, err := client.Stats(ctx)
	if err != nil {
		bad(fmt.Sprintf("backend unreachable at %s: %v", cfg.APIBaseURL, err))
	} else {
		ok(fmt.Sprintf("backend reachable at %s (%d items, %d reunions)",
			cfg.APIBaseURL, stats.TotalItems, stats.SuccessfulReunions))
	}

	if tok, err := store.Token(); err == nil && tok != "" {
		if _, err := client.Me(ctx); err != nil {
			bad(fmt.Sprintf("stored credential rejected: %v (run 'reunite login')", err))
		} else {
			ok("stored credential accepted")
		}
	} else {
		bad("no stored credential (run 'reunite login')")
	}

	if cfg.TileAPIKey != "" {
		ok("map tile service configured")
	} else {
		bad("tile_api_key not set, the map falls back to a text placeholder")
	}

	return nil
}
