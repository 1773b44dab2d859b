// Package cli renders famctl output.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rocjay1/fam/internal/fam"
	"github.com/rocjay1/fam/internal/models"
)

var (
	ColorBorder = lipgloss.Color("#575653")
	ColorText   = lipgloss.Color("#FFFCF0")
	ColorAccent = lipgloss.Color("#3AA99F")
	ColorGreen  = lipgloss.Color("#879A39")
	ColorOrange = lipgloss.Color("#DA702C")
	ColorRed    = lipgloss.Color("#D14D41")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	okStyle     = lipgloss.NewStyle().Foreground(ColorGreen)
	warnStyle   = lipgloss.NewStyle().Foreground(ColorOrange)
	errStyle    = lipgloss.NewStyle().Foreground(ColorRed)
)

// Table is a bordered text table.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a title in a rounded box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

// RenderTable renders t with columns sized to their widest cell.
func RenderTable(t Table) string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	line := func(cells []string, style *lipgloss.Style) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if style != nil {
				cell = style.Render(cell)
			}
			parts[i] = cell + pad
		}
		return "│ " + strings.Join(parts, " │ ") + " │"
	}
	rule := func(left, mid, right string) string {
		segs := make([]string, len(widths))
		for i, w := range widths {
			segs[i] = strings.Repeat("─", w+2)
		}
		return left + strings.Join(segs, mid) + right
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(headerStyle.Render(t.Title) + "\n")
	}
	b.WriteString(rule("┌", "┬", "┐") + "\n")
	b.WriteString(line(t.Headers, &headerStyle) + "\n")
	b.WriteString(rule("├", "┼", "┤") + "\n")
	for _, row := range t.Rows {
		b.WriteString(line(row, nil) + "\n")
	}
	b.WriteString(rule("└", "┴", "┘"))
	return b.String()
}

// RenderPolicies lists the three user types and their thresholds.
func RenderPolicies() string {
	t := Table{
		Title:   "User types",
		Headers: []string{"#", "Type", "Name", "Warn above", "Lock above", "Locks account", "Tone"},
	}
	for i, ut := range models.UserTypes {
		p, _ := models.PolicyFor(ut)
		lock := "never"
		if p.Lockable && p.LockPercent != nil {
			lock = p.LockPercent.String() + "%"
		}
		locksAccount := "no"
		if p.LocksAccount {
			locksAccount = fmt.Sprintf("at %d locked budgets", models.AccountLockThreshold)
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprint(i + 1),
			p.DisplayName,
			string(p.Type),
			p.WarningPercent.String() + "%",
			lock,
			locksAccount,
			string(p.Tone),
		})
	}
	return RenderTable(t)
}

// RenderBudgets renders budget snapshots as a table.
func RenderBudgets(budgets []models.BudgetSnapshot) string {
	t := Table{
		Title:   "Budgets",
		Headers: []string{"Budget", "Spent", "Limit", "Left", "Used", "Status"},
	}
	for _, b := range budgets {
		status := "open"
		switch {
		case b.Locked:
			status = "locked"
		case b.AmountLeft.IsNegative():
			status = "exceeded"
		}
		t.Rows = append(t.Rows, []string{
			string(b.Name),
			b.Spent.StringFixed(2),
			b.Limit.StringFixed(2),
			b.AmountLeft.StringFixed(2),
			b.PercentUsed.StringFixed(1) + "%",
			status,
		})
	}
	return RenderTable(t)
}

// RenderOutcome renders one applied transaction and its notices.
func RenderOutcome(o *models.TransactionOutcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s at %s  balance %s\n",
		okStyle.Render("✓"),
		o.Transaction.Timestamp.Format("2006-01-02"),
		o.Transaction.Amount.StringFixed(2),
		displayLocation(o.Transaction.Location),
		o.Balance.StringFixed(2),
	)
	for _, n := range o.Notices {
		style := warnStyle
		if n.Kind != models.NoticeWarning {
			style = errStyle
		}
		fmt.Fprintf(&b, "    %s %s\n", style.Render("!"), n.Message)
	}
	return b.String()
}

// RenderReplay renders a statement replay report.
func RenderReplay(report *fam.ReplayReport, parseErrors []string) string {
	var b strings.Builder
	for _, o := range report.Outcomes {
		b.WriteString(RenderOutcome(o))
	}
	for _, f := range report.Failures {
		fmt.Fprintf(&b, "%s transaction %d: %s\n", errStyle.Render("✗"), f.Row, f.Message)
	}
	for _, e := range parseErrors {
		fmt.Fprintf(&b, "%s %s\n", errStyle.Render("✗"), e)
	}
	fmt.Fprintf(&b, "\napplied %d, rejected %d, skipped %d\n", report.Applied, len(report.Failures)+len(parseErrors), report.Skipped)
	if report.SessionLocked {
		b.WriteString(errStyle.Render("Your account is locked. We have logged you out.") + "\n")
	}
	return b.String()
}

func displayLocation(loc string) string {
	if loc == "" {
		return "-"
	}
	return loc
}
