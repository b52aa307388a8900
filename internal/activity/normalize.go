package activity

import (
	"fmt"
	"strconv"
	"strings"
)

// Normalize maps one raw warehouse row to a Record. It fails with a
// *ValidationError when a required field is missing or the change type is not
// recognized; it never drops or defaults a bad row.
func Normalize(row Row) (Record, error) {
	var rec Record
	var err error

	if rec.FileID, err = requiredString(row, "file_id"); err != nil {
		return Record{}, err
	}
	if rec.FileName, err = requiredString(row, "file_name"); err != nil {
		return Record{}, err
	}
	if rec.UserID, err = requiredString(row, "user_id"); err != nil {
		return Record{}, err
	}
	if rec.UserName, err = requiredString(row, "user_name"); err != nil {
		return Record{}, err
	}
	if rec.ProjectID, err = requiredString(row, "project_id"); err != nil {
		return Record{}, err
	}
	if rec.ProjectName, err = requiredString(row, "project_name"); err != nil {
		return Record{}, err
	}

	rawChange, err := requiredString(row, "change_type")
	if err != nil {
		return Record{}, err
	}
	if rec.Change, err = ParseChangeType(rawChange); err != nil {
		return Record{}, err
	}

	// A file may have no parent folder; both fields are optional together.
	rec.FolderID = optionalString(row, "parent_folder_id")
	rec.FolderName = optionalString(row, "parent_folder_name")

	count, err := nonNegativeInt(row, "annotation_count")
	if err != nil {
		return Record{}, err
	}
	rec.AnnotationCount = count

	return rec, nil
}

func requiredString(row Row, field string) (string, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return "", &ValidationError{Field: field, Reason: "missing"}
	}
	s := stringValue(v)
	if strings.TrimSpace(s) == "" {
		return "", &ValidationError{Field: field, Reason: "empty"}
	}
	return s, nil
}

func optionalString(row Row, field string) string {
	v, ok := row[field]
	if !ok || v == nil {
		return ""
	}
	return stringValue(v)
}

// stringValue covers the scan types database/sql hands back for text columns.
func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case int:
		return strconv.Itoa(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func nonNegativeInt(row Row, field string) (int, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return 0, &ValidationError{Field: field, Reason: "missing"}
	}
	var n int64
	switch t := v.(type) {
	case int64:
		n = t
	case int:
		n = int64(t)
	case float64:
		n = int64(t)
	case []byte:
		parsed, err := strconv.ParseInt(string(t), 10, 64)
		if err != nil {
			return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("not an integer: %q", t)}
		}
		n = parsed
	case string:
		parsed, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("not an integer: %q", t)}
		}
		n = parsed
	default:
		return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("unsupported type %T", v)}
	}
	if n < 0 {
		return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("negative value %d", n)}
	}
	return int(n), nil
}
