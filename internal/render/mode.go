// Package render turns an activity summary into a Slack Block Kit
// notification, switching between a detailed and a condensed layout based on
// how many display groups the summary holds.
package render

import "github.com/htan-dcc/synapse-monitor/internal/activity"

// Mode selects the notification layout.
type Mode int

const (
	// ModeStandard renders every (user, project) pair in full detail.
	ModeStandard Mode = iota
	// ModeCondensed rolls up beyond the pair and folder display caps.
	ModeCondensed
)

func (m Mode) String() string {
	if m == ModeCondensed {
		return "condensed"
	}
	return "standard"
}

// Display caps carried over from the original notification job. Consumers
// depend on the exact values, so they are overridable but never re-derived.
const (
	DefaultCondensedThreshold = 20
	DefaultMaxPairs           = 15
	DefaultMaxFolders         = 5
)

// Limits holds the three display thresholds.
type Limits struct {
	// CondensedThreshold is the group count at which rendering switches to
	// ModeCondensed.
	CondensedThreshold int
	// MaxPairs caps individually rendered (user, project) pairs in
	// condensed mode.
	MaxPairs int
	// MaxFolders caps individually rendered folders per pair in condensed
	// mode.
	MaxFolders int
}

// DefaultLimits returns the stock 20/15/5 thresholds.
func DefaultLimits() Limits {
	return Limits{
		CondensedThreshold: DefaultCondensedThreshold,
		MaxPairs:           DefaultMaxPairs,
		MaxFolders:         DefaultMaxFolders,
	}
}

func (l Limits) withDefaults() Limits {
	if l.CondensedThreshold <= 0 {
		l.CondensedThreshold = DefaultCondensedThreshold
	}
	if l.MaxPairs <= 0 {
		l.MaxPairs = DefaultMaxPairs
	}
	if l.MaxFolders <= 0 {
		l.MaxFolders = DefaultMaxFolders
	}
	return l
}

// Classify selects the rendering mode for a summary: ModeCondensed when the
// distinct group count reaches threshold, ModeStandard otherwise. Pure; the
// one decision point between the two renderer paths.
func Classify(s activity.Summary, threshold int) Mode {
	if threshold <= 0 {
		threshold = DefaultCondensedThreshold
	}
	if len(s.Groups) >= threshold {
		return ModeCondensed
	}
	return ModeStandard
}
