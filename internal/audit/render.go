package audit

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles hold the lipgloss styles of the console audit report.
type Styles struct {
	Rule    lipgloss.Style
	Title   lipgloss.Style
	Heading lipgloss.Style
	Pass    lipgloss.Style
	Fail    lipgloss.Style
}

// DefaultStyles returns the report styling: green for matches, red for
// discrepancies.
func DefaultStyles() Styles {
	return Styles{
		Rule: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		Title: lipgloss.NewStyle().
			Bold(true),

		Heading: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true),

		Pass: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),

		Fail: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
}

// Render writes the full audit report: one section per table with every
// check, then a pass/fail summary.
func Render(w io.Writer, report Report, styles Styles) {
	rule := styles.Rule.Render(strings.Repeat("=", 80))

	for _, table := range report.Tables {
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, styles.Title.Render("AUDITING "+strings.ToUpper(table.Title)))
		fmt.Fprintln(w, rule)
		for _, group := range table.Groups {
			fmt.Fprintf(w, "\n%s\n", styles.Heading.Render(group.Heading+":"))
			for _, c := range group.Checks {
				symbol := styles.Pass.Render("✓")
				if !c.Match {
					symbol = styles.Fail.Render("✗")
				}
				fmt.Fprintf(w, "  %-20s Table: %7.2f  Calc: %7.2f  Diff: %6.2f %s\n",
					c.Label, c.Published, c.Computed, c.Diff, symbol)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, styles.Title.Render("AUDIT SUMMARY"))
	fmt.Fprintln(w, rule)
	for _, table := range report.Tables {
		verdict := styles.Pass.Render("✓ PASS")
		if !table.Pass() {
			verdict = styles.Fail.Render(fmt.Sprintf("✗ FAIL (%d issues)", table.Failures()))
		}
		fmt.Fprintf(w, "%s: %s\n", table.Title, verdict)
	}
	fmt.Fprintln(w)
	if report.Pass() {
		fmt.Fprintln(w, styles.Pass.Render("✓ ALL TABLES MATCH"))
	} else {
		fmt.Fprintln(w, styles.Fail.Render(
			fmt.Sprintf("✗ FOUND %d TOTAL DISCREPANCIES", report.Failures())))
	}
}
