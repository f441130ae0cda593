package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ashfall/worldcore/internal/boundary"
	"github.com/ashfall/worldcore/pkg/config"
	"github.com/ashfall/worldcore/pkg/logging"
	"github.com/ashfall/worldcore/pkg/metrics"
)

var warmupCmd = &cobra.Command{
	Use:   "warmup",
	Args:  cobra.NoArgs,
	Short: "Pre-generate a run of floors into the cache",
	RunE:  runWarmup,
}

func init() {
	warmupCmd.Flags().Uint64("seed", 0, "tower seed (base seed for warmup)")
	warmupCmd.Flags().Int("count", 10, "number of floors to warm starting at floor 1")
}

func runWarmup(cmd *cobra.Command, args []string) error {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	logging.Init(logging.Options{Level: level, Format: logging.FormatConsole})

	if cfgFile == "" {
		return fmt.Errorf("--config is required")
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	towerSeed, _ := cmd.Flags().GetUint64("seed")
	count, _ := cmd.Flags().GetInt("count")

	reg := metrics.New()
	svc := boundary.New(cfg, towerSeed, reg)
	defer svc.Shutdown()

	svc.Warmup(context.Background(), towerSeed, count)

	stats := svc.CacheStats()
	fmt.Printf("warmed floors 1..%d (count=%d)\n", count, count)
	fmt.Printf("tier1_hits=%d tier2_hits=%d tier3_generations=%d\n",
		stats.Tier1Hits, stats.Tier2Hits, stats.Tier3Generations)
	return nil
}
