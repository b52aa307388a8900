package activity

// MaxSampleFiles caps the per-group file samples kept for display. FileCount
// and summary totals are never affected by this cap.
const MaxSampleFiles = 5

// Summarize folds a record list into a Summary. Group membership and counts
// are independent of input order; per-group samples keep first-seen order. An
// empty input yields a zero Summary, not an error.
func Summarize(records []Record) Summary {
	groups := make(map[Key]*Group)
	var order []Key

	files := make(map[string]struct{})
	users := make(map[string]struct{})
	projects := make(map[string]struct{})
	changes := make(map[ChangeType]int)

	for _, r := range records {
		k := Key{UserID: r.UserID, ProjectID: r.ProjectID, FolderID: r.FolderID, Change: r.Change}

		g, ok := groups[k]
		if !ok {
			folderName := r.FolderName
			if r.FolderID == "" {
				folderName = FolderNone
			}
			g = &Group{
				Key:         k,
				UserName:    r.UserName,
				ProjectName: r.ProjectName,
				FolderName:  folderName,
			}
			groups[k] = g
			order = append(order, k)
		}

		g.FileCount++
		if len(g.SampleFiles) < MaxSampleFiles {
			g.SampleFiles = append(g.SampleFiles, FileRef{ID: r.FileID, Name: r.FileName})
		}

		files[r.FileID] = struct{}{}
		users[r.UserID] = struct{}{}
		projects[r.ProjectID] = struct{}{}
		changes[r.Change]++
	}

	out := Summary{
		TotalFiles:       len(files),
		DistinctUsers:    len(users),
		DistinctProjects: len(projects),
		ChangeCounts:     changes,
		Groups:           make([]Group, 0, len(order)),
	}
	for _, k := range order {
		out.Groups = append(out.Groups, *groups[k])
	}
	return out
}
