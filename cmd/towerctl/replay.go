package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashfall/worldcore/pkg/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Args:  cobra.ExactArgs(1),
	Short: "Inspect and verify a recorded replay file",
	RunE:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	var rec replay.Recording
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decode recording: %w", err)
	}

	fmt.Printf("replay_id=%s floor=%d seed=%#x player=%s outcome=%d frames=%d duration_ticks=%d\n",
		rec.Header.ReplayID, rec.Header.FloorID, rec.Header.Seed, rec.Header.PlayerName,
		rec.Header.Outcome, rec.Header.TotalFrames, rec.Header.DurationTicks)

	if !rec.Verify() {
		return fmt.Errorf("recording hash mismatch: file has been tampered with or corrupted")
	}
	fmt.Println("hash verified ok")
	return nil
}
