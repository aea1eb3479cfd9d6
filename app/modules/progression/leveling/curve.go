// Package leveling builds dense level curves from sparse admin checkpoints
// and derives levels from cumulative XP. Everything here is pure; the curve
// is rebuilt on every read so admin edits take effect immediately.
package leveling

import (
	"math"
	"sort"
)

const (
	// MaxLevel caps every curve; levels past the highest checkpoint are
	// extrapolated up to here.
	MaxLevel = 999

	// DefaultBaseGap is the per-level XP gap used when fewer than two
	// checkpoints are configured.
	DefaultBaseGap = 100

	// gapGrowthRate raises the extrapolated gap by 20% every block.
	gapGrowthRate = 0.2

	// blockSize groups extrapolated levels; every block compounds the gap.
	blockSize = 5
)

// Checkpoint is one admin-configured (level, minimum cumulative XP) anchor.
type Checkpoint struct {
	Level     int
	Threshold int64
}

// Curve is the dense level→threshold table. Curve[level-1] is the minimum
// cumulative XP required to hold that level. Thresholds never decrease.
type Curve []int64

// BuildCurve expands sparse checkpoints into a dense curve of maxLevel
// entries. Checkpoints are authoritative at their exact level; unconfigured
// levels extrapolate from the smallest positive configured gap, compounding
// +20% every five levels. Deterministic for identical input.
func BuildCurve(checkpoints []Checkpoint, maxLevel int) Curve {
	if maxLevel < 1 {
		return Curve{}
	}

	configured := make(map[int]int64, len(checkpoints))
	for _, cp := range checkpoints {
		if cp.Level < 1 {
			continue
		}
		configured[cp.Level] = cp.Threshold
	}

	levels := make([]int, 0, len(configured))
	for level := range configured {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	baseThreshold := int64(0)
	if v, ok := configured[1]; ok {
		baseThreshold = v
	}

	baseGap := int64(DefaultBaseGap)
	if gap, ok := smallestPositiveGap(levels, configured); ok {
		baseGap = gap
	}

	curve := make(Curve, maxLevel)
	curve[0] = baseThreshold

	running := baseThreshold
	for level := 2; level <= maxLevel; level++ {
		if v, ok := configured[level]; ok {
			// Authoritative, but the curve must never decrease.
			if v > running {
				running = v
			}
		} else {
			blockIndex := (level - 2) / blockSize
			gap := int64(math.Round(float64(baseGap) * (1 + gapGrowthRate*float64(blockIndex))))
			if gap < 1 {
				gap = 1
			}
			running += gap
		}
		curve[level-1] = running
	}

	return curve
}

// smallestPositiveGap returns the smallest positive difference between two
// consecutive configured thresholds. ok is false when fewer than two
// checkpoints exist or no positive gap is found.
func smallestPositiveGap(levels []int, configured map[int]int64) (int64, bool) {
	if len(levels) < 2 {
		return 0, false
	}
	var best int64
	found := false
	for i := 1; i < len(levels); i++ {
		diff := configured[levels[i]] - configured[levels[i-1]]
		if diff > 0 && (!found || diff < best) {
			best = diff
			found = true
		}
	}
	return best, found
}

// LevelForXP returns the highest level whose threshold the given XP meets.
// Never below 1.
func (c Curve) LevelForXP(xp int64) int {
	level := 1
	for i, threshold := range c {
		if xp >= threshold {
			level = i + 1
		} else {
			break
		}
	}
	return level
}

// Threshold returns the minimum cumulative XP for a level, or 0 when the
// level is out of range.
func (c Curve) Threshold(level int) int64 {
	if level < 1 || level > len(c) {
		return 0
	}
	return c[level-1]
}

// HasNext reports whether a level above the given one exists on the curve.
func (c Curve) HasNext(level int) bool {
	return level >= 1 && level < len(c)
}

// ProgressThrough returns the fraction of the way the XP sits through the
// given level's span, clamped to [0,1]. A level with no successor is always
// complete.
func (c Curve) ProgressThrough(level int, xp int64) float64 {
	if !c.HasNext(level) {
		return 1
	}
	current := c.Threshold(level)
	next := c.Threshold(level + 1)
	span := next - current
	if span < 1 {
		span = 1
	}
	progress := float64(xp-current) / float64(span)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
