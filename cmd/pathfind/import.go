package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/udisondev/tilepath/internal/geo"
)

var (
	flagOrigin      string
	flagImportLevel int
)

var importCmd = &cobra.Command{
	Use:   "import <dump.json>",
	Short: "Import a 64x64 collision dump",
	Long: `Import replaces the flags of one 64x64 area with a JSON collision dump
and saves the changed zones of that level.

Examples:
  pathfind import lumbridge.json --origin 3200,3200
  pathfind import cellar.json --origin 3200,9600 --level 0`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&flagOrigin, "origin", "3200,3200", "South-west tile x,z of the area")
	importCmd.Flags().IntVar(&flagImportLevel, "level", 0, "Level the area belongs to")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := setup()
	if err != nil {
		return err
	}

	origin, err := parsePoint(flagOrigin)
	if err != nil {
		return fmt.Errorf("--origin: %w", err)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()

	dump, err := readDump(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	database, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()
	repo := database.Collisions()

	// Start from what is stored so saving only rewrites the imported area.
	m := geo.NewMap()
	if _, err := repo.LoadLevel(ctx, m, flagImportLevel); err != nil {
		return err
	}

	var blocked int
	err = m.Update(func(w *geo.Writer) error {
		n, err := applyDump(w, dump, origin.X, origin.Z, flagImportLevel)
		blocked = n
		return err
	})
	if err != nil {
		return fmt.Errorf("applying dump: %w", err)
	}
	slog.Info("collision dump applied",
		"file", args[0],
		"origin", fmt.Sprintf("%d,%d", origin.X, origin.Z),
		"level", flagImportLevel,
		"blocked_tiles", blocked)

	saved, err := repo.SaveZones(ctx, m.Snapshot(), flagImportLevel)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %s: %d blocked tiles, %d zones written\n", args[0], blocked, saved)
	return nil
}
