package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcrack/pdfcrack/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/pdfcrack.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new pdfcrack configuration file",
		Long: `Initialize creates a new .pdfcrack configuration file in the current directory.

The generated file includes:
- Commented examples for per-document search parameters
- Documentation for all available options

Examples:
  # Create .pdfcrack in current directory
  pdfcrack init

  # Create config file at a specific path
  pdfcrack init -o myconfig.yaml

  # Force overwrite existing file
  pdfcrack init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/pdfcrack.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write configuration file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("Created configuration file: %s\n", outputPath)
	fmt.Println("\nEdit this file to configure per-document settings such as:")
	fmt.Println("  - Known password length ranges")
	fmt.Println("  - Extra character-set characters")
	fmt.Println("  - Worker count and batch size overrides")

	return nil
}
