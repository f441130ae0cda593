package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ashfall/worldcore/pkg/balance"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Args:  cobra.NoArgs,
	Short: "Run the Monte-Carlo build balance simulation",
	RunE:  runBalance,
}

func init() {
	cfg := balance.DefaultConfig()
	balanceCmd.Flags().Uint64("builds", cfg.BuildCount, "number of random builds to simulate")
	balanceCmd.Flags().Uint32("floor-level", cfg.FloorLevel, "floor level to evaluate difficulty against")
	balanceCmd.Flags().Uint64("base-seed", cfg.BaseSeed, "base seed for build hash derivation")
	balanceCmd.Flags().Float32("stat-points", cfg.StatPoints, "total stat points allocated per build")
}

func runBalance(cmd *cobra.Command, args []string) error {
	buildCount, _ := cmd.Flags().GetUint64("builds")
	floorLevel, _ := cmd.Flags().GetUint32("floor-level")
	baseSeed, _ := cmd.Flags().GetUint64("base-seed")
	statPoints, _ := cmd.Flags().GetFloat32("stat-points")

	report := balance.Run(balance.Config{
		BuildCount: buildCount,
		FloorLevel: floorLevel,
		BaseSeed:   baseSeed,
		StatPoints: statPoints,
	})

	fmt.Printf("builds=%d grade=%s avg_score=%.2f stddev=%.2f range_ratio=%.2f\n",
		report.TotalBuilds, report.Grade, report.AvgScore, report.StdDeviation, report.ScoreRangeRatio)
	fmt.Println("weapon scores:")
	for _, s := range report.WeaponScores {
		fmt.Printf("  %-14s avg=%.2f stddev=%.2f\n", s.Name, s.Avg, s.StdDev)
	}
	fmt.Println("playstyle scores:")
	for _, s := range report.PlaystyleScores {
		fmt.Printf("  %-14s avg=%.2f stddev=%.2f\n", s.Name, s.Avg, s.StdDev)
	}
	return nil
}
