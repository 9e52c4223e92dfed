package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/deckmd/deckmd/internal/adapters/secondary/parser"
	"github.com/deckmd/deckmd/internal/domain/services"
)

var (
	buildOutput string
	buildPretty bool
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a markdown file into deck JSON",
	Long: `Compile a markdown file into the structured deck representation
and write it as JSON.

Example:
  deckmd build slides.md
  deckmd build slides.md -o deck.json --pretty`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output file (default: stdout)")
	buildCmd.Flags().BoolVar(&buildPretty, "pretty", false, "Indent the JSON output")
}

func runBuild(cmd *cobra.Command, args []string) error {
	deckPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := loadConfig(cmd, filepath.Dir(deckPath))
	if err != nil {
		return err
	}

	p := parser.New(parser.Options{
		BasePath:          assetsBase(cfg, deckPath),
		MaxImageBytes:     cfg.Parser.MaxImageBytes,
		AllowedFigmaHosts: cfg.Parser.FigmaHosts,
	})
	compiler := services.NewDeckService(p)

	deck, err := compiler.Compile(cmd.Context(), deckPath)
	if err != nil {
		return err
	}

	var data []byte
	if buildPretty {
		data, err = json.MarshalIndent(deck, "", "  ")
	} else {
		data, err = json.Marshal(deck)
	}
	if err != nil {
		return fmt.Errorf("encoding deck: %w", err)
	}

	if buildOutput == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(buildOutput, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", buildOutput, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d slides to %s\n", len(deck.Slides), buildOutput)
	return nil
}
