// Package activity defines the normalized file-change event model and the
// aggregation that folds a flat event list into per-(user, project, folder,
// change type) groups for rendering.
package activity

import "fmt"

// ChangeType is the kind of change a warehouse row describes.
type ChangeType string

const (
	ChangeCreate ChangeType = "CREATE"
	ChangeModify ChangeType = "MODIFY"
)

// ParseChangeType validates a raw change type value. Anything other than the
// two recognized values is rejected rather than coerced.
func ParseChangeType(s string) (ChangeType, error) {
	switch ChangeType(s) {
	case ChangeCreate, ChangeModify:
		return ChangeType(s), nil
	}
	return "", &ValidationError{Field: "change_type", Reason: fmt.Sprintf("unrecognized value %q", s)}
}

// Row is one raw warehouse row, keyed by column name. The key set is the
// contract with the query layer; see queries/activity.sql.
type Row map[string]any

// Record is one normalized file creation/modification event.
type Record struct {
	FileID   string
	FileName string
	Change   ChangeType

	UserID   string
	UserName string

	ProjectID   string
	ProjectName string

	// FolderID/FolderName are empty for files sitting at the project root.
	FolderID   string
	FolderName string

	AnnotationCount int
}

// Key identifies one display group.
type Key struct {
	UserID    string
	ProjectID string
	FolderID  string
	Change    ChangeType
}

// FileRef is a (file ID, display name) pair kept as a group sample.
type FileRef struct {
	ID   string
	Name string
}

// FolderNone is the display name used for groups whose files have no parent
// folder.
const FolderNone = "—"

// Group is the accumulated activity for one Key.
type Group struct {
	Key Key

	UserName    string
	ProjectName string
	// FolderName is FolderNone when Key.FolderID is empty.
	FolderName string

	// FileCount is the number of records in the group, never truncated.
	FileCount int

	// SampleFiles holds up to MaxSampleFiles files in first-seen order.
	SampleFiles []FileRef
}

// Summary is the aggregate over one invocation's record list.
type Summary struct {
	// TotalFiles counts distinct file IDs across all records.
	TotalFiles int

	DistinctUsers    int
	DistinctProjects int

	// ChangeCounts maps change type to the number of records of that type.
	ChangeCounts map[ChangeType]int

	// Groups is in first-seen order; callers sort for display.
	Groups []Group
}

// ValidationError reports a raw row that failed normalization.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid activity row: field %s: %s", e.Field, e.Reason)
}
