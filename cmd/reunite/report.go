package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reunite-ai/reunite/internal/api"
	"github.com/reunite-ai/reunite/internal/auth"
	"github.com/reunite-ai/reunite/internal/config"
	"github.com/reunite-ai/reunite/internal/tui/wizard"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "File a lost or found item",
	Long: `File a lost or found item through the five-step wizard.

The wizard collects the item type, title and description, category and
tags, up to five photos, and where and when the item was lost or found,
including an optional map pin. Submission requires a stored credential;
run 'reunite login' first.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store := auth.NewFileStore()
	client := api.New(cfg.APIBaseURL, time.Duration(cfg.RequestTimeout)*time.Second, store)

	id, err := wizard.Run(cfg, client, store)
	if err != nil {
		return err
	}

	fmt.Printf("Report submitted: %s\n", id)
	fmt.Printf("View it with: reunite (then open the item) or %s/api/items/%s\n", cfg.APIBaseURL, id)
	return nil
}
