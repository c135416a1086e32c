package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/utkarsh5026/filestory/pkg/graph"
	"github.com/utkarsh5026/filestory/pkg/history"
	"github.com/utkarsh5026/filestory/pkg/status"
)

// FormatFileState renders a path with the icon and color of its kind
func FormatFileState(kind status.Kind, path string) string {
	var icon string
	style := UnmodifiedStyle
	switch kind {
	case status.Modified:
		icon, style = IconModified, ModifiedStyle
	case status.New:
		icon, style = IconAdded, AddedStyle
	case status.Renamed:
		icon, style = IconRenamed, RenamedStyle
	case status.Deleted:
		icon, style = IconDeleted, DeletedStyle
	case status.Nonexistent:
		icon, style = IconNonexistent, NonexistentStyle
	default:
		icon = IconCheck
	}
	return fmt.Sprintf("  %s  %s  %s", style.Render(icon), style.Render(fmt.Sprintf("%-11s", kind.String())), style.Render(path))
}

// SuccessMessage creates a success message with a checkmark icon
func SuccessMessage(message string, details ...string) string {
	parts := []string{Green(IconCheck), Green(message)}
	for _, detail := range details {
		parts = append(parts, Blue(detail))
	}
	return strings.Join(parts, " ")
}

func WarningMessage(message string) string {
	return Yellow(IconWarning + " " + message)
}

func BranchInfo(branchName string) string {
	return fmt.Sprintf("%s Branch: %s", Cyan(IconBranch), Blue(branchName))
}

// FormatCommitDetailed renders one commit of a file's history in a box
func FormatCommitDetailed(r history.CommitRecord) string {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("%s %s\n", Yellow(IconCommit), Yellow(r.Hash)))
	content.WriteString(fmt.Sprintf("%s %s\n", Cyan(IconAuthor), Cyan(r.Author)))
	content.WriteString(fmt.Sprintf("%s %s\n", Magenta(IconDate), Magenta(r.When())))
	content.WriteString(ColorCyanStyle.MarginTop(1).Render(r.ShortMessage))

	return CommitBox(content.String())
}

func FormatCommitSeparator() string {
	return Gray("  " + IconSeparator)
}

// RenderHistoryTable writes records as a Commit/Author/Date/Message table
func RenderHistoryTable(w io.Writer, records []history.CommitRecord) error {
	table := tablewriter.NewWriter(w)
	table.Header("Commit", "Author", "Date", "Message")

	for _, r := range records {
		msg := r.ShortMessage
		if len(msg) > 50 {
			msg = msg[:47] + "..."
		}
		if err := table.Append(Yellow(r.ShortHash()), Cyan(r.Author), Magenta(r.When()), msg); err != nil {
			return err
		}
	}
	return table.Render()
}

// RenderComparisonTable writes graph comparison results as a table, one row
// per mismatch, followed by a per-kind summary line
func RenderComparisonTable(w io.Writer, results []graph.Result) error {
	table := tablewriter.NewWriter(w)
	table.Header("Kind", "Path", "Detail", "A", "B")

	for _, r := range results {
		var row []string
		switch m := r.(type) {
		case graph.ValueMismatch:
			row = []string{Yellow(m.Kind().String()), m.Path, m.Component + "." + m.Property, m.ValueA, m.ValueB}
		case graph.ComponentMismatch:
			a, b := present(m.MissingIn != graph.SideA), present(m.MissingIn != graph.SideB)
			row = []string{Magenta(m.Kind().String()), m.Path, m.Component, a, b}
		case graph.HierarchyMismatch:
			a, b := present(m.MissingIn != graph.SideA), present(m.MissingIn != graph.SideB)
			row = []string{Red(m.Kind().String()), m.Path, fmt.Sprintf("child %d", m.ChildIndex), a, b}
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := graph.Summarize(results)
	_, err := fmt.Fprintf(w, "%d differences: %d values, %d components, %d hierarchy\n",
		s.Total(), s.Values, s.Components, s.Hierarchy)
	return err
}

func present(ok bool) string {
	if ok {
		return Green("present")
	}
	return Red("missing")
}
