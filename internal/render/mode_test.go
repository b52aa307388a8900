package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/htan-dcc/synapse-monitor/internal/activity"
)

func summaryWithGroups(n int) activity.Summary {
	var records []activity.Record
	for i := 0; i < n; i++ {
		records = append(records, activity.Record{
			FileID:      fmt.Sprint("file", i),
			FileName:    fmt.Sprint("file", i, ".csv"),
			Change:      activity.ChangeCreate,
			UserID:      fmt.Sprint("u", i),
			UserName:    fmt.Sprint("user", i),
			ProjectID:   "p1",
			ProjectName: "Atlas",
			FolderID:    fmt.Sprint("f", i),
			FolderName:  fmt.Sprint("folder", i),
		})
	}
	return activity.Summarize(records)
}

func TestClassify_Boundary(t *testing.T) {
	assert.Equal(t, ModeStandard, Classify(summaryWithGroups(19), DefaultCondensedThreshold))
	assert.Equal(t, ModeCondensed, Classify(summaryWithGroups(20), DefaultCondensedThreshold))
	assert.Equal(t, ModeCondensed, Classify(summaryWithGroups(25), DefaultCondensedThreshold))
}

func TestClassify_Empty(t *testing.T) {
	assert.Equal(t, ModeStandard, Classify(activity.Summary{}, DefaultCondensedThreshold))
}

func TestClassify_CustomThreshold(t *testing.T) {
	assert.Equal(t, ModeCondensed, Classify(summaryWithGroups(3), 3))
	assert.Equal(t, ModeStandard, Classify(summaryWithGroups(2), 3))
	// Zero falls back to the default rather than condensing everything.
	assert.Equal(t, ModeStandard, Classify(summaryWithGroups(5), 0))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "standard", ModeStandard.String())
	assert.Equal(t, "condensed", ModeCondensed.String())
}
