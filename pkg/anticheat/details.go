package anticheat

import "fmt"

func formatTeleport(distance float32, dtMs uint64) string {
	return fmt.Sprintf("Teleport: %.1f units in %dms", distance, dtMs)
}

func formatSpeed(speed, max float32) string {
	return fmt.Sprintf("Speed: %.1f (max: %.1f)", speed, max)
}

func formatElevatedSpeed(speed float32) string {
	return fmt.Sprintf("Elevated speed: %.1f", speed)
}

func formatDamage(value, max float32) string {
	return fmt.Sprintf("Damage: %.1f (max: %.1f)", value, max)
}

func formatInterval(interval, min uint64) string {
	return fmt.Sprintf("Action interval: %dms (min: %dms)", interval, min)
}

func formatCV(cv, threshold float64, label string) string {
	return fmt.Sprintf("Input regularity CV: %.4f (%s: %.2f)", cv, label, threshold)
}

func formatSuspiciousCV(cv float64) string {
	return fmt.Sprintf("Suspiciously regular input CV: %.4f", cv)
}
