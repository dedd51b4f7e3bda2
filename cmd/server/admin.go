package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/apiforge/apiforge/pkg/models"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative commands",
	Long:  "Administrative commands for inspecting generated schemas and platform accounts",
}

var listSchemasCmd = &cobra.Command{
	Use:   "show-schema",
	Short: "Show one generated schema config by id",
	Run:   runShowSchemaCommand,
}

var listPlatformUsersCmd = &cobra.Command{
	Use:   "list-platform-users",
	Short: "List all platform accounts",
	Run:   runListPlatformUsersCommand,
}

func init() {
	listSchemasCmd.Flags().String("id", "", "Schema id (required)")
	listSchemasCmd.MarkFlagRequired("id")

	adminCmd.AddCommand(
		listSchemasCmd,
		listPlatformUsersCmd,
	)
}

func runShowSchemaCommand(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	store, cleanup, err := openStore()
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer cleanup()

	ctx := context.Background()

	cfg, err := store.Schemas.GetByID(ctx, id)
	if err != nil {
		log.Fatalf("Failed to load schema: %v", err)
	}
	if cfg == nil {
		log.Fatalf("Schema not found: %s", id)
	}

	fmt.Printf("Schema %s\n", cfg.ID)
	fmt.Printf("  Owner:   %s\n", cfg.Owner)
	fmt.Printf("  Created: %s\n", cfg.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Fields:\n")
	for i, name := range cfg.FieldNames {
		fmt.Printf("    %-20s %s\n", name, cfg.FieldTypes[i])
	}
	fmt.Printf("  Records: %d\n", len(cfg.Records))
}

func runListPlatformUsersCommand(cmd *cobra.Command, args []string) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	store, cleanup, err := openStore()
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer cleanup()

	ctx := context.Background()

	accounts, err := store.PlatformUsers.ListAll(ctx)
	if err != nil {
		log.Fatalf("Failed to list platform users: %v", err)
	}

	if len(accounts) == 0 {
		fmt.Println("No platform accounts found")
		return
	}

	fmt.Printf("%-38s %-20s %-30s %s\n", "ID", "USERNAME", "EMAIL", "CREATED")
	fmt.Println(strings.Repeat("-", 110))
	for _, a := range accounts {
		printPlatformAccount(a)
	}
	fmt.Printf("\nTotal: %d account(s)\n", len(accounts))
}

func printPlatformAccount(a models.PlatformAccount) {
	fmt.Printf("%-38s %-20s %-30s %s\n",
		a.ID, a.Username, a.Email, a.CreatedAt.Format("2006-01-02 15:04"))
}
