// Package anticheat analyzes per-player action windows to detect
// speed hacks, damage hacks, teleport suspicion, bot-like input
// regularity, and timing anomalies, maintaining a running trust score
// and a recommended penalty.
package anticheat

import "math"

// ViolationType enumerates the kinds of suspicious behavior detected.
type ViolationType int

const (
	SpeedHack ViolationType = iota
	DamageHack
	TeleportSuspicion
	BotPattern
	ExploitAbuse
	ResourceHack
	TimingAnomaly
)

func (t ViolationType) String() string {
	switch t {
	case SpeedHack:
		return "speed_hack"
	case DamageHack:
		return "damage_hack"
	case TeleportSuspicion:
		return "teleport_suspicion"
	case BotPattern:
		return "bot_pattern"
	case ExploitAbuse:
		return "exploit_abuse"
	case ResourceHack:
		return "resource_hack"
	case TimingAnomaly:
		return "timing_anomaly"
	default:
		return "unknown"
	}
}

// Severity is how confident a violation is cheating versus noise.
type Severity int

const (
	Low Severity = iota
	Medium
	High
	Critical
)

// Violation is one detected suspicious event.
type Violation struct {
	Type      ViolationType
	Severity  Severity
	Timestamp uint64
	Details   string
	Value     float32
	Threshold float32
}

// ActionType enumerates the player actions the analyzer inspects.
type ActionType int

const (
	ActionMove ActionType = iota
	ActionAttack
	ActionDodge
	ActionInteract
	ActionPickupLoot
	ActionCraftItem
	ActionUseAbility
)

// Action is one player action submitted for analysis.
type Action struct {
	TimestampMs uint64
	Type        ActionType
	Position    [3]float32
	Value       float32
}

// Penalty is the recommended enforcement action for a player's current
// trust score and violation history.
type Penalty int

const (
	PenaltyNone Penalty = iota
	PenaltyWarning
	PenaltySoftThrottle
	PenaltyShadowPenalty
	PenaltyTempBan
	PenaltyFlagForReview
)

// Analyzer is a per-player behavior analyzer holding a sliding window
// of recent actions, accumulated violations, and a running trust score.
type Analyzer struct {
	PlayerID      string
	ActionHistory []Action
	Violations    []Violation
	TrustScore    float32
	WindowSize    int

	MaxSpeed            float32
	MaxDamagePerHit     float32
	MinActionIntervalMs uint64
	TeleportThreshold   float32
}

// NewAnalyzer returns an analyzer with game-tuned default thresholds.
func NewAnalyzer(playerID string) *Analyzer {
	return &Analyzer{
		PlayerID:            playerID,
		TrustScore:          1.0,
		WindowSize:          100,
		MaxSpeed:            20.0,
		MaxDamagePerHit:     200.0,
		MinActionIntervalMs: 50,
		TeleportThreshold:   500.0,
	}
}

// RecordAction analyzes action against recent history, returning any
// newly detected violations and updating trust score and history.
func (a *Analyzer) RecordAction(action Action) []Violation {
	var newViolations []Violation

	if len(a.ActionHistory) > 0 {
		prev := a.ActionHistory[len(a.ActionHistory)-1]

		if action.Type == ActionMove {
			dx := action.Position[0] - prev.Position[0]
			dy := action.Position[1] - prev.Position[1]
			dz := action.Position[2] - prev.Position[2]
			distance := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))

			var dtMs uint64
			if action.TimestampMs > prev.TimestampMs {
				dtMs = action.TimestampMs - prev.TimestampMs
			}

			if dtMs > 0 {
				speed := distance / (float32(dtMs) / 1000.0)

				switch {
				case distance > a.TeleportThreshold:
					newViolations = append(newViolations, Violation{
						Type:      TeleportSuspicion,
						Severity:  Medium,
						Timestamp: action.TimestampMs,
						Details:   formatTeleport(distance, dtMs),
						Value:     distance,
						Threshold: a.TeleportThreshold,
					})
				case speed > a.MaxSpeed*3.0:
					newViolations = append(newViolations, Violation{
						Type:      SpeedHack,
						Severity:  High,
						Timestamp: action.TimestampMs,
						Details:   formatSpeed(speed, a.MaxSpeed),
						Value:     speed,
						Threshold: a.MaxSpeed,
					})
				case speed > a.MaxSpeed*1.5:
					newViolations = append(newViolations, Violation{
						Type:      SpeedHack,
						Severity:  Low,
						Timestamp: action.TimestampMs,
						Details:   formatElevatedSpeed(speed),
						Value:     speed,
						Threshold: a.MaxSpeed,
					})
				}
			}
		}

		if action.Type == ActionAttack && action.Value > a.MaxDamagePerHit {
			severity := High
			if action.Value > a.MaxDamagePerHit*2.0 {
				severity = Critical
			}
			newViolations = append(newViolations, Violation{
				Type:      DamageHack,
				Severity:  severity,
				Timestamp: action.TimestampMs,
				Details:   formatDamage(action.Value, a.MaxDamagePerHit),
				Value:     action.Value,
				Threshold: a.MaxDamagePerHit,
			})
		}

		var interval uint64
		if action.TimestampMs > prev.TimestampMs {
			interval = action.TimestampMs - prev.TimestampMs
		}
		if interval > 0 && interval < a.MinActionIntervalMs && action.Type == prev.Type {
			newViolations = append(newViolations, Violation{
				Type:      TimingAnomaly,
				Severity:  Medium,
				Timestamp: action.TimestampMs,
				Details:   formatInterval(interval, a.MinActionIntervalMs),
				Value:     float32(interval),
				Threshold: float32(a.MinActionIntervalMs),
			})
		}
	}

	if len(a.ActionHistory) >= 10 {
		if v := a.checkBotPattern(); v != nil {
			newViolations = append(newViolations, *v)
		}
	}

	for _, v := range newViolations {
		var penalty float32
		switch v.Severity {
		case Low:
			penalty = 0.02
		case Medium:
			penalty = 0.05
		case High:
			penalty = 0.15
		case Critical:
			penalty = 0.30
		}
		a.TrustScore -= penalty
		if a.TrustScore < 0 {
			a.TrustScore = 0
		}
	}

	a.Violations = append(a.Violations, newViolations...)
	a.ActionHistory = append(a.ActionHistory, action)
	if len(a.ActionHistory) > a.WindowSize {
		a.ActionHistory = a.ActionHistory[len(a.ActionHistory)-a.WindowSize:]
	}

	return newViolations
}

// checkBotPattern inspects inter-action timing variance over the
// window; perfectly regular input (low coefficient of variation) is
// characteristic of scripted/bot play rather than human input jitter.
func (a *Analyzer) checkBotPattern() *Violation {
	if len(a.ActionHistory) < 10 {
		return nil
	}

	intervals := make([]float64, 0, len(a.ActionHistory)-1)
	for i := 1; i < len(a.ActionHistory); i++ {
		intervals = append(intervals, float64(a.ActionHistory[i].TimestampMs-a.ActionHistory[i-1].TimestampMs))
	}
	if len(intervals) == 0 {
		return nil
	}

	var sum float64
	for _, v := range intervals {
		sum += v
	}
	avg := sum / float64(len(intervals))
	if avg < 1.0 {
		return nil
	}

	var variance float64
	for _, v := range intervals {
		d := v - avg
		variance += d * d
	}
	variance /= float64(len(intervals))
	cv := math.Sqrt(variance) / avg

	last := a.ActionHistory[len(a.ActionHistory)-1].TimestampMs

	switch {
	case cv < 0.03:
		return &Violation{
			Type:      BotPattern,
			Severity:  High,
			Timestamp: last,
			Details:   formatCV(cv, 0.03, "bot threshold"),
			Value:     float32(cv),
			Threshold: 0.03,
		}
	case cv < 0.08:
		return &Violation{
			Type:      BotPattern,
			Severity:  Low,
			Timestamp: last,
			Details:   formatSuspiciousCV(cv),
			Value:     float32(cv),
			Threshold: 0.08,
		}
	default:
		return nil
	}
}

// RecommendedPenalty maps trust score and violation history to an
// enforcement action.
func (a *Analyzer) RecommendedPenalty() Penalty {
	switch {
	case a.TrustScore <= 0.0:
		return PenaltyTempBan
	case a.TrustScore < 0.3:
		return PenaltyShadowPenalty
	case a.TrustScore < 0.5:
		return PenaltySoftThrottle
	case a.TrustScore < 0.7:
		return PenaltyWarning
	}
	for _, v := range a.Violations {
		if v.Severity == Critical {
			return PenaltyFlagForReview
		}
	}
	return PenaltyNone
}

// RecoverTrust raises trust score by amount, capped at 1.0. Called
// periodically to let good behavior offset past violations.
func (a *Analyzer) RecoverTrust(amount float32) {
	a.TrustScore += amount
	if a.TrustScore > 1.0 {
		a.TrustScore = 1.0
	}
}

// ViolationCount counts recorded violations of the given type.
func (a *Analyzer) ViolationCount(vtype ViolationType) int {
	count := 0
	for _, v := range a.Violations {
		if v.Type == vtype {
			count++
		}
	}
	return count
}

// RecentViolations returns the last count violations (or fewer if not
// that many have been recorded).
func (a *Analyzer) RecentViolations(count int) []Violation {
	start := len(a.Violations) - count
	if start < 0 {
		start = 0
	}
	return a.Violations[start:]
}
