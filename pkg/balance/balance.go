// Package balance runs Monte-Carlo simulations over randomly generated
// player builds to detect dominant strategies and grade overall weapon/
// playstyle balance. Builds are generated deterministically from a base
// seed and simulated across a bounded goroutine pool, mirroring the
// data-parallel sweep the original balance tooling ran per-build.
package balance

import (
	"encoding/binary"
	"math"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/crypto/sha3"
)

// Weapon enumerates the simulated weapon archetypes.
type Weapon int

const (
	WeaponSword Weapon = iota
	WeaponGreatsword
	WeaponDualDaggers
	WeaponSpear
	WeaponGauntlets
	WeaponStaff
)

var weaponNames = [...]string{"sword", "greatsword", "dual_daggers", "spear", "gauntlets", "staff"}

func (w Weapon) String() string { return weaponNames[w] }

// Playstyle is a player behavior archetype affecting DPS/EHP tradeoffs.
type Playstyle int

const (
	PlaystyleAggressive Playstyle = iota
	PlaystyleDefensive
	PlaystyleBalanced
	PlaystyleHitAndRun
	PlaystyleSemantic
)

var playstyleNames = [...]string{"aggressive", "defensive", "balanced", "hit_and_run", "semantic"}

func (p Playstyle) String() string { return playstyleNames[p] }

func playstyleFromHash(hash uint64) Playstyle {
	return Playstyle(hash % 5)
}

// StatAllocation is a build's point spread across five stats.
type StatAllocation struct {
	Strength  float32
	Agility   float32
	Vitality  float32
	Intellect float32
	Endurance float32
}

func statAllocationFromHash(hash uint64, totalPoints float32) StatAllocation {
	bits := [5]float32{
		float32(hash & 0xFF),
		float32((hash >> 8) & 0xFF),
		float32((hash >> 16) & 0xFF),
		float32((hash >> 24) & 0xFF),
		float32((hash >> 32) & 0xFF),
	}
	var sum float32
	for _, b := range bits {
		sum += b
	}
	if sum < 1.0 {
		sum = 1.0
	}
	norm := totalPoints / sum

	return StatAllocation{
		Strength:  bits[0] * norm,
		Agility:   bits[1] * norm,
		Vitality:  bits[2] * norm,
		Intellect: bits[3] * norm,
		Endurance: bits[4] * norm,
	}
}

func (s StatAllocation) Total() float32 {
	return s.Strength + s.Agility + s.Vitality + s.Intellect + s.Endurance
}

// Build is a fully specified simulated player loadout.
type Build struct {
	Weapon           Weapon
	Level            uint32
	Stats            StatAllocation
	Playstyle        Playstyle
	ElementAffinity  string
}

func generateBuild(hash uint64, level uint32, statPoints float32) Build {
	weapon := Weapon(hash % 6)

	elements := [...]string{"fire", "water", "earth", "wind", "void", "neutral"}
	element := elements[(hash>>40)%6]

	return Build{
		Weapon:          weapon,
		Level:           level,
		Stats:           statAllocationFromHash(hash>>8, statPoints),
		Playstyle:       playstyleFromHash(hash >> 48),
		ElementAffinity: element,
	}
}

// Performance is one build's simulated combat metrics.
type Performance struct {
	Build               Build
	DPS                 float32
	EffectiveHP         float32
	ClearSpeed          float32
	Survivability       float32
	ResourceEfficiency  float32
	CompositeScore      float32
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func simulateBuild(build Build, floorLevel uint32) Performance {
	stats := build.Stats

	var weaponBaseDPS, attackSpeed float32
	switch build.Weapon {
	case WeaponSword:
		weaponBaseDPS, attackSpeed = 30.0, 1.0
	case WeaponGreatsword:
		weaponBaseDPS, attackSpeed = 45.0, 0.6
	case WeaponDualDaggers:
		weaponBaseDPS, attackSpeed = 25.0, 1.6
	case WeaponSpear:
		weaponBaseDPS, attackSpeed = 35.0, 0.8
	case WeaponGauntlets:
		weaponBaseDPS, attackSpeed = 28.0, 1.4
	case WeaponStaff:
		weaponBaseDPS, attackSpeed = 20.0, 0.7
	}

	strBonus := 1.0 + stats.Strength*0.02
	agiBonus := 1.0 + stats.Agility*0.005
	intBonus := float32(1.0)
	if build.Weapon == WeaponStaff {
		intBonus = 1.0 + stats.Intellect*0.025
	}
	dps := weaponBaseDPS * attackSpeed * strBonus * agiBonus * intBonus

	baseHP := 100.0 + stats.Vitality*10.0
	armor := stats.Vitality*0.5 + stats.Endurance*0.3
	dodgeChance := minF32(stats.Agility*0.005, 0.4)
	mitigation := 1.0 / (1.0 - dodgeChance) * (1.0 + armor*0.01)
	effectiveHP := baseHP * mitigation

	var dpsMod, ehpMod float32
	switch build.Playstyle {
	case PlaystyleAggressive:
		dpsMod, ehpMod = 1.15, 0.85
	case PlaystyleDefensive:
		dpsMod, ehpMod = 0.85, 1.2
	case PlaystyleBalanced:
		dpsMod, ehpMod = 1.0, 1.0
	case PlaystyleHitAndRun:
		dpsMod, ehpMod = 1.1, 0.95
	case PlaystyleSemantic:
		dpsMod, ehpMod = 0.9, 1.05
	}

	finalDPS := dps * dpsMod
	finalEHP := effectiveHP * ehpMod

	floorDifficulty := 1.0 + float32(floorLevel)*0.05
	monsterDPS := 15.0 * floorDifficulty
	monsterHP := 200.0 * floorDifficulty

	timeToKill := monsterHP / maxF32(finalDPS, 1.0)
	clearSpeed := 60.0 / maxF32(timeToKill, 1.0)

	survivalTime := finalEHP / maxF32(monsterDPS, 1.0)
	survivability := minF32(survivalTime/60.0, 1.0)

	resourcePool := stats.Endurance*5.0 + 50.0
	resourceEfficiency := finalDPS / (maxF32(resourcePool, 1.0) * 0.1)

	composite := finalDPS*0.3 +
		finalEHP*0.01*0.25 +
		clearSpeed*0.25 +
		survivability*100.0*0.1 +
		resourceEfficiency*0.1

	return Performance{
		Build:              build,
		DPS:                finalDPS,
		EffectiveHP:        finalEHP,
		ClearSpeed:         clearSpeed,
		Survivability:      survivability,
		ResourceEfficiency: resourceEfficiency,
		CompositeScore:     composite,
	}
}

// Grade is the overall balance assessment derived from score spread.
type Grade int

const (
	GradeExcellent Grade = iota
	GradeGood
	GradeFair
	GradePoor
	GradeCritical
)

func (g Grade) String() string {
	return [...]string{"excellent", "good", "fair", "poor", "critical"}[g]
}

// NamedStat is a (label, mean, stddev) triple used for per-weapon and
// per-playstyle breakdowns.
type NamedStat struct {
	Name   string
	Avg    float32
	StdDev float32
}

// Report summarizes one simulation run.
type Report struct {
	TotalBuilds      uint64
	AvgScore         float32
	StdDeviation     float32
	MinScore         float32
	MaxScore         float32
	ScoreRangeRatio  float32
	WeaponScores     []NamedStat
	PlaystyleScores  []NamedStat
	DominantBuilds   []Performance
	WeakestBuilds    []Performance
	Grade            Grade
}

// Config configures a simulation run.
type Config struct {
	BuildCount uint64
	FloorLevel uint32
	BaseSeed   uint64
	StatPoints float32
}

// DefaultConfig matches the original tooling's 10k-build sweep.
func DefaultConfig() Config {
	return Config{BuildCount: 10_000, FloorLevel: 10, BaseSeed: 42, StatPoints: 50.0}
}

func buildHash(baseSeed, i uint64) uint64 {
	h := sha3.New256()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], baseSeed)
	binary.LittleEndian.PutUint64(buf[8:16], i)
	h.Write(buf[:])
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

// Run executes a full Monte-Carlo sweep: builds are generated
// deterministically then simulated across a bounded pool of goroutines
// sized to GOMAXPROCS, since each build's simulation is independent and
// CPU-bound.
func Run(config Config) Report {
	results := make([]Performance, config.BuildCount)

	workers := runtime.GOMAXPROCS(0)
	if uint64(workers) > config.BuildCount {
		workers = int(config.BuildCount)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan uint64, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				hash := buildHash(config.BaseSeed, i)
				build := generateBuild(hash, config.FloorLevel, config.StatPoints)
				results[i] = simulateBuild(build, config.FloorLevel)
			}
		}()
	}
	for i := uint64(0); i < config.BuildCount; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return analyzeResults(results, config.BuildCount)
}

func analyzeResults(results []Performance, total uint64) Report {
	if len(results) == 0 {
		return Report{ScoreRangeRatio: 1.0, Grade: GradeGood}
	}

	scores := make([]float32, len(results))
	var sum float32
	for i, r := range results {
		scores[i] = r.CompositeScore
		sum += r.CompositeScore
	}
	avg := sum / float32(len(scores))

	var variance float32
	minScore, maxScore := scores[0], scores[0]
	for _, s := range scores {
		d := s - avg
		variance += d * d
		minScore = minF32(minScore, s)
		maxScore = maxF32(maxScore, s)
	}
	variance /= float32(len(scores))
	stdDev := float32(math.Sqrt(float64(variance)))

	rangeRatio := float32(999.0)
	if minScore > 0.001 {
		rangeRatio = maxScore / minScore
	}

	weapons := []Weapon{WeaponSword, WeaponGreatsword, WeaponDualDaggers, WeaponSpear, WeaponGauntlets, WeaponStaff}
	weaponScores := make([]NamedStat, 0, len(weapons))
	for _, w := range weapons {
		weaponScores = append(weaponScores, statFor(results, w.String(), func(r Performance) bool { return r.Build.Weapon == w }))
	}

	styles := []Playstyle{PlaystyleAggressive, PlaystyleDefensive, PlaystyleBalanced, PlaystyleHitAndRun, PlaystyleSemantic}
	playstyleScores := make([]NamedStat, 0, len(styles))
	for _, s := range styles {
		playstyleScores = append(playstyleScores, statFor(results, s.String(), func(r Performance) bool { return r.Build.Playstyle == s }))
	}

	sorted := make([]Performance, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CompositeScore > sorted[j].CompositeScore })

	top := 5
	if top > len(sorted) {
		top = len(sorted)
	}
	dominant := append([]Performance(nil), sorted[:top]...)
	weakest := make([]Performance, top)
	for i := 0; i < top; i++ {
		weakest[i] = sorted[len(sorted)-1-i]
	}

	var grade Grade
	switch {
	case rangeRatio < 1.5:
		grade = GradeExcellent
	case rangeRatio < 2.0:
		grade = GradeGood
	case rangeRatio < 3.0:
		grade = GradeFair
	case rangeRatio < 5.0:
		grade = GradePoor
	default:
		grade = GradeCritical
	}

	return Report{
		TotalBuilds:     total,
		AvgScore:        avg,
		StdDeviation:    stdDev,
		MinScore:        minScore,
		MaxScore:        maxScore,
		ScoreRangeRatio: rangeRatio,
		WeaponScores:    weaponScores,
		PlaystyleScores: playstyleScores,
		DominantBuilds:  dominant,
		WeakestBuilds:   weakest,
		Grade:           grade,
	}
}

func statFor(results []Performance, name string, match func(Performance) bool) NamedStat {
	var subset []float32
	for _, r := range results {
		if match(r) {
			subset = append(subset, r.CompositeScore)
		}
	}
	if len(subset) == 0 {
		return NamedStat{Name: name}
	}
	var sum float32
	for _, s := range subset {
		sum += s
	}
	avg := sum / float32(len(subset))
	var variance float32
	for _, s := range subset {
		d := s - avg
		variance += d * d
	}
	variance /= float32(len(subset))
	return NamedStat{Name: name, Avg: avg, StdDev: float32(math.Sqrt(float64(variance)))}
}
