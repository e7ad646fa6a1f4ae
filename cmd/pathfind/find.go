package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/udisondev/tilepath/internal/config"
	"github.com/udisondev/tilepath/internal/geo"
	"github.com/udisondev/tilepath/internal/pathfinding"
)

var (
	flagFrom        string
	flagTo          []string
	flagLevel       int
	flagSize        string
	flagPolicy      string
	flagMode        string
	flagMoveNear    bool
	flagMaxDistance int
	flagWaypoints   int
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find a route on a stored level",
	Long: `Find loads one level from the database and searches a route from
--from to every --to destination. Several destinations run as a batch.

Examples:
  pathfind find --from 3232,3205 --to 3232,3215
  pathfind find --from 3232,3205 --to 3300,3300 --move-near=false
  pathfind find --from 3232,3205 --to 3240,3210 --size 2x3 --mode overlap`,
	Args: cobra.NoArgs,
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVar(&flagFrom, "from", "", "Source tile x,z")
	findCmd.Flags().StringArrayVar(&flagTo, "to", nil, "Destination tile x,z (repeatable)")
	findCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to search on")
	findCmd.Flags().StringVar(&flagSize, "size", "1", "Agent footprint: N or WxD")
	findCmd.Flags().StringVar(&flagPolicy, "policy", "", "Movement policy (default from config)")
	findCmd.Flags().StringVar(&flagMode, "mode", "exact", "Arrival mode: exact or overlap")
	findCmd.Flags().BoolVar(&flagMoveNear, "move-near", true, "Fall back to the closest reachable tile")
	findCmd.Flags().IntVar(&flagMaxDistance, "max-distance", 0, "Route length limit (default from config)")
	findCmd.Flags().IntVar(&flagWaypoints, "waypoints", 0, "Print at most N waypoints, 0 = all")
	_ = findCmd.MarkFlagRequired("from")
	_ = findCmd.MarkFlagRequired("to")
}

func runFind(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := setup()
	if err != nil {
		return err
	}

	queries, err := buildQueries(cfg, cmd.Flags().Changed("move-near"))
	if err != nil {
		return err
	}

	database, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	m := geo.NewMap()
	zones, err := database.Collisions().LoadLevel(ctx, m, flagLevel)
	if err != nil {
		return err
	}
	if zones == 0 {
		slog.Warn("no collision data stored for level, every tile is open", "level", flagLevel)
	}

	pool, err := pathfinding.NewPool(cfg.Window, cfg.NodeBudget)
	if err != nil {
		return err
	}
	results, err := pathfinding.FindAll(ctx, m.Snapshot(), pool, queries, cfg.Workers)
	if err != nil {
		return err
	}

	failed := 0
	for i, res := range results {
		q := queries[i]
		if res.Err != nil {
			failed++
			slog.Warn("no route",
				"to", fmt.Sprintf("%d,%d", q.Destination.X, q.Destination.Z),
				"err", res.Err)
			continue
		}
		printRoute(q, res.Route)
	}
	if failed == len(results) {
		return errors.New("no destination reachable")
	}
	return nil
}

// buildQueries turns the command line into one query per destination.
func buildQueries(cfg config.Pathfinder, moveNearSet bool) ([]pathfinding.Query, error) {
	src, err := parsePoint(flagFrom)
	if err != nil {
		return nil, fmt.Errorf("--from: %w", err)
	}
	fp, err := parseFootprint(flagSize)
	if err != nil {
		return nil, fmt.Errorf("--size: %w", err)
	}
	mode, err := parseMode(flagMode)
	if err != nil {
		return nil, fmt.Errorf("--mode: %w", err)
	}

	policyName := cfg.Policy
	if flagPolicy != "" {
		policyName = flagPolicy
	}
	policy, err := pathfinding.PolicyByName(policyName)
	if err != nil {
		return nil, fmt.Errorf("--policy: %w", err)
	}

	maxDistance := cfg.MaxDistance
	if flagMaxDistance > 0 {
		maxDistance = flagMaxDistance
	}
	moveNear := cfg.MoveNear
	if moveNearSet {
		moveNear = flagMoveNear
	}

	queries := make([]pathfinding.Query, 0, len(flagTo))
	for _, to := range flagTo {
		dst, err := parsePoint(to)
		if err != nil {
			return nil, fmt.Errorf("--to: %w", err)
		}
		queries = append(queries, pathfinding.Query{
			Level:       flagLevel,
			Source:      src,
			Destination: dst,
			Footprint:   fp,
			Policy:      policy,
			MoveNear:    moveNear,
			Mode:        mode,
			MaxDistance: maxDistance,
		})
	}
	return queries, nil
}

func printRoute(q pathfinding.Query, route pathfinding.Route) {
	slog.Info("route found",
		"from", fmt.Sprintf("%d,%d", q.Source.X, q.Source.Z),
		"to", fmt.Sprintf("%d,%d", q.Destination.X, q.Destination.Z),
		"steps", route.Len(),
		"alternative", route.Alternative,
		"visited", route.Visited)

	fmt.Printf("%d,%d -> %d,%d: %d steps", q.Source.X, q.Source.Z, q.Destination.X, q.Destination.Z, route.Len())
	if route.Alternative {
		fmt.Print(" (closest reachable)")
	}
	fmt.Println()
	for _, wp := range route.Waypoints(flagWaypoints) {
		fmt.Printf("  %s\n", wp)
	}
}

// parsePoint reads "x,z".
func parsePoint(s string) (pathfinding.Point, error) {
	xs, zs, ok := strings.Cut(s, ",")
	if !ok {
		return pathfinding.Point{}, fmt.Errorf("want x,z, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return pathfinding.Point{}, fmt.Errorf("x in %q: %w", s, err)
	}
	z, err := strconv.Atoi(strings.TrimSpace(zs))
	if err != nil {
		return pathfinding.Point{}, fmt.Errorf("z in %q: %w", s, err)
	}
	return pathfinding.Point{X: x, Z: z}, nil
}

// parseFootprint reads "N" for a square or "WxD".
func parseFootprint(s string) (pathfinding.Footprint, error) {
	ws, ds, rect := strings.Cut(strings.ToLower(s), "x")
	w, err := strconv.Atoi(ws)
	if err != nil {
		return pathfinding.Footprint{}, fmt.Errorf("width in %q: %w", s, err)
	}
	fp := pathfinding.Square(w)
	if rect {
		d, err := strconv.Atoi(ds)
		if err != nil {
			return pathfinding.Footprint{}, fmt.Errorf("depth in %q: %w", s, err)
		}
		fp.Depth = d
	}
	return fp, fp.Validate()
}

func parseMode(s string) (pathfinding.Mode, error) {
	switch strings.ToLower(s) {
	case "exact":
		return pathfinding.ModeExact, nil
	case "overlap":
		return pathfinding.ModeOverlap, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}
