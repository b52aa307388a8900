package render

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/htan-dcc/synapse-monitor/internal/activity"
)

// Identity the delivery layer posts under, matching the original notifier.
const (
	BotUsername  = "HTAN Monitor Bot"
	BotIconEmoji = ":bar_chart:"
)

// Payload is the rendered notification: a header summary plus ordered Block
// Kit detail blocks, handed unmodified to the delivery layer.
type Payload struct {
	Header string
	Blocks []slack.Block
	Mode   Mode
}

// RenderError reports a summary that violates its own invariants. It signals
// an aggregation defect, not a runtime condition worth retrying.
type RenderError struct {
	Reason string
}

func (e *RenderError) Error() string {
	return "inconsistent activity summary: " + e.Reason
}

// pairView is one (user, project) combination with its display groups.
type pairView struct {
	userID      string
	userName    string
	projectID   string
	projectName string
	total       int
	groups      []activity.Group
}

// folderView is per-pair folder activity summed across change types.
type folderView struct {
	id    string
	name  string
	count int
}

// Render produces the notification payload for a summary in the given mode.
// Both layouts keep every elided count in a rollup line, so figures in the
// payload always add back up to the summary totals.
func Render(s activity.Summary, mode Mode, lim Limits, links LinkBuilder) (*Payload, error) {
	lim = lim.withDefaults()
	if err := validate(s); err != nil {
		return nil, err
	}

	header := headerText(s, mode)
	blocks := []slack.Block{section(header)}
	if len(s.Groups) == 0 {
		return &Payload{Header: header, Blocks: blocks, Mode: mode}, nil
	}
	blocks = append(blocks, slack.NewDividerBlock())

	pairs := buildPairs(s)

	switch mode {
	case ModeCondensed:
		shown, rest := topK(pairs, lim.MaxPairs, pairLess)
		for _, p := range shown {
			blocks = append(blocks, section(condensedPairText(p, lim, links)))
		}
		if len(rest) > 0 {
			restFiles := 0
			for _, p := range rest {
				restFiles += p.total
			}
			blocks = append(blocks, section(fmt.Sprintf(
				"_%d more user-project combinations — %d file%s_",
				len(rest), restFiles, plural(restFiles))))
		}
	default:
		sorted, _ := topK(pairs, len(pairs), pairLess)
		for _, p := range sorted {
			blocks = append(blocks, section(standardPairText(p, links)))
		}
	}

	return &Payload{Header: header, Blocks: blocks, Mode: mode}, nil
}

func headerText(s activity.Summary, mode Mode) string {
	if len(s.Groups) == 0 {
		return "📊 *HTAN Synapse Activity Report*\n🔍 No activity: 0 files by 0 users across 0 projects"
	}
	h := fmt.Sprintf(
		"📊 *HTAN Synapse Activity Report*\n📈 *Summary*: %d file%s by %d user%s across %d project%s (%s)",
		s.TotalFiles, plural(s.TotalFiles),
		s.DistinctUsers, plural(s.DistinctUsers),
		s.DistinctProjects, plural(s.DistinctProjects),
		changeBreakdown(s.ChangeCounts))
	if mode == ModeCondensed {
		h += fmt.Sprintf("\n_High activity detected (%d combinations). Using condensed format._", len(s.Groups))
	}
	return h
}

func changeBreakdown(counts map[activity.ChangeType]int) string {
	return fmt.Sprintf("%d created, %d modified",
		counts[activity.ChangeCreate], counts[activity.ChangeModify])
}

// standardPairText renders one pair in full: every folder/change-type line
// with inline file links. Samples beyond the per-group cap surface as a +N
// remainder, never as a silent drop.
func standardPairText(p pairView, links LinkBuilder) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s — %s (%d file%s)",
		links.User(p.userID, p.userName),
		links.Project(p.projectID, p.projectName),
		p.total, plural(p.total))

	groups, _ := topK(p.groups, len(p.groups), groupLess)
	for _, g := range groups {
		samples := make([]string, 0, len(g.SampleFiles))
		for _, f := range g.SampleFiles {
			samples = append(samples, links.File(f.ID, f.Name))
		}
		sampleList := strings.Join(samples, ", ")
		if extra := g.FileCount - len(g.SampleFiles); extra > 0 {
			sampleList += fmt.Sprintf(" (+%d more)", extra)
		}
		fmt.Fprintf(&sb, "\n• %s *%d file%s* %s: %s",
			verb(g.Key.Change), g.FileCount, plural(g.FileCount), location(g, links), sampleList)
	}
	return sb.String()
}

// condensedPairText renders one pair as a single line: change-type verbs plus
// the top folders by count, with the remainder rolled up.
func condensedPairText(p pairView, lim Limits, links LinkBuilder) string {
	folders := buildFolders(p.groups)
	shown, rest := topK(folders, lim.MaxFolders, folderLess)

	parts := make([]string, 0, len(shown)+1)
	for _, f := range shown {
		if f.id == "" {
			parts = append(parts, fmt.Sprintf("%d at the project root", f.count))
			continue
		}
		parts = append(parts, fmt.Sprintf("%d in _%s_", f.count, links.Folder(f.id, f.name)))
	}
	if len(rest) > 0 {
		restFiles := 0
		for _, f := range rest {
			restFiles += f.count
		}
		parts = append(parts, fmt.Sprintf("+%d more folders (%d file%s)", len(rest), restFiles, plural(restFiles)))
	}

	return fmt.Sprintf("%s %s items: %s of %s",
		links.User(p.userID, p.userName),
		changeVerbs(p.groups),
		strings.Join(parts, ", "),
		links.Project(p.projectID, p.projectName))
}

// changeVerbs summarizes a pair's activity per change type, largest first.
func changeVerbs(groups []activity.Group) string {
	counts := map[activity.ChangeType]int{}
	for _, g := range groups {
		counts[g.Key.Change] += g.FileCount
	}
	var parts []string
	created, modified := counts[activity.ChangeCreate], counts[activity.ChangeModify]
	if modified > created {
		if modified > 0 {
			parts = append(parts, fmt.Sprintf("modified %d", modified))
		}
		if created > 0 {
			parts = append(parts, fmt.Sprintf("created %d", created))
		}
	} else {
		if created > 0 {
			parts = append(parts, fmt.Sprintf("created %d", created))
		}
		if modified > 0 {
			parts = append(parts, fmt.Sprintf("modified %d", modified))
		}
	}
	return strings.Join(parts, ", ")
}

func location(g activity.Group, links LinkBuilder) string {
	if g.Key.FolderID == "" {
		return "at the project root"
	}
	return fmt.Sprintf("in _%s_", links.Folder(g.Key.FolderID, g.FolderName))
}

func verb(ct activity.ChangeType) string {
	if ct == activity.ChangeCreate {
		return "created"
	}
	return "modified"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func buildPairs(s activity.Summary) []pairView {
	type pairKey struct{ userID, projectID string }
	byKey := make(map[pairKey]*pairView)
	var order []pairKey

	for _, g := range s.Groups {
		k := pairKey{g.Key.UserID, g.Key.ProjectID}
		p, ok := byKey[k]
		if !ok {
			p = &pairView{
				userID:      g.Key.UserID,
				userName:    g.UserName,
				projectID:   g.Key.ProjectID,
				projectName: g.ProjectName,
			}
			byKey[k] = p
			order = append(order, k)
		}
		p.total += g.FileCount
		p.groups = append(p.groups, g)
	}

	out := make([]pairView, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k])
	}
	return out
}

func buildFolders(groups []activity.Group) []folderView {
	byID := make(map[string]*folderView)
	var order []string
	for _, g := range groups {
		f, ok := byID[g.Key.FolderID]
		if !ok {
			f = &folderView{id: g.Key.FolderID, name: g.FolderName}
			byID[g.Key.FolderID] = f
			order = append(order, g.Key.FolderID)
		}
		f.count += g.FileCount
	}
	out := make([]folderView, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}

// pairLess orders pairs by file count descending, ties broken by user name
// then project name ascending so output is stable across invocations.
func pairLess(a, b pairView) bool {
	if a.total != b.total {
		return a.total > b.total
	}
	if a.userName != b.userName {
		return a.userName < b.userName
	}
	return a.projectName < b.projectName
}

func folderLess(a, b folderView) bool {
	if a.count != b.count {
		return a.count > b.count
	}
	return a.name < b.name
}

func groupLess(a, b activity.Group) bool {
	if a.FileCount != b.FileCount {
		return a.FileCount > b.FileCount
	}
	if a.FolderName != b.FolderName {
		return a.FolderName < b.FolderName
	}
	return a.Key.Change < b.Key.Change
}

func validate(s activity.Summary) error {
	recordTotal := 0
	for _, g := range s.Groups {
		if g.FileCount <= 0 {
			return &RenderError{Reason: fmt.Sprintf("group %+v has file count %d", g.Key, g.FileCount)}
		}
		if len(g.SampleFiles) > g.FileCount {
			return &RenderError{Reason: fmt.Sprintf("group %+v has %d samples for %d files", g.Key, len(g.SampleFiles), g.FileCount)}
		}
		recordTotal += g.FileCount
	}

	changeTotal := 0
	for _, n := range s.ChangeCounts {
		changeTotal += n
	}
	if changeTotal != recordTotal {
		return &RenderError{Reason: fmt.Sprintf("change-type counts sum to %d, group counts to %d", changeTotal, recordTotal)}
	}
	if s.TotalFiles > recordTotal {
		return &RenderError{Reason: fmt.Sprintf("%d distinct files exceed %d records", s.TotalFiles, recordTotal)}
	}
	if len(s.Groups) == 0 && (s.TotalFiles != 0 || changeTotal != 0) {
		return &RenderError{Reason: "non-zero totals with no groups"}
	}
	if len(s.Groups) > 0 && s.TotalFiles == 0 {
		return &RenderError{Reason: "zero distinct files with non-empty groups"}
	}
	return nil
}

func section(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
}
