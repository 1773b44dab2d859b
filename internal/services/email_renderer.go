package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/rocjay1/fam/internal/models"
)

const (
	colorAlert   = "#d13438"
	colorWarning = "#ca5010"
	colorInfo    = "#0078d4"
)

func renderLayout(title, color, content string) string {
	return fmt.Sprintf(`
		<html>
		<body style="font-family: 'Segoe UI', sans-serif; color: #333; line-height: 1.6; background-color: #f4f4f4; margin: 0; padding: 20px;">
			<div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 8px; overflow: hidden; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
				<div style="background-color: %s; padding: 20px; text-align: center; color: white;">
					<h2 style="margin: 0;">%s</h2>
				</div>
				<div style="padding: 20px;">
					%s
				</div>
			</div>
		</body>
		</html>
	`, color, html.EscapeString(title), content)
}

func renderList(items []string) string {
	var b strings.Builder
	b.WriteString(`<ul style="margin-bottom: 0; padding-left: 20px;">`)
	for _, item := range items {
		fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(item))
	}
	b.WriteString("</ul>")
	return b.String()
}

// RenderErrorSection renders the rejected-rows box, or nothing when errors is empty.
func RenderErrorSection(errors []string) string {
	if len(errors) == 0 {
		return ""
	}
	return fmt.Sprintf(`
		<div style="background-color: #fff4f4; border-left: 5px solid %s; padding: 15px; margin-bottom: 20px;">
			<h3 style="color: %s; margin-top: 0; font-size: 18px;">Some statement rows were not applied</h3>
			%s
		</div>
	`, colorAlert, colorAlert, renderList(errors))
}

// RenderErrorBody renders the email sent when a statement has rejected rows.
func RenderErrorBody(errors []string) string {
	return renderLayout("Statement Rows Rejected", colorAlert,
		"<p>The uploaded statement was processed with the following problems:</p>"+RenderErrorSection(errors))
}

// RenderLockAlertBody renders the email sent to guardians when budgets lock.
func RenderLockAlertBody(userName string, notices []models.Notice) string {
	var lines []string
	for _, n := range notices {
		switch n.Kind {
		case models.NoticeBudgetLocked, models.NoticeSessionLocked:
			lines = append(lines, n.Message)
		}
	}
	content := fmt.Sprintf("<p>%s has reached a spending limit.</p>%s",
		html.EscapeString(userName), renderList(lines))
	return renderLayout("Budget Locked", colorAlert, content)
}

// RenderDigestBody renders the daily summary table of budgets over their warning threshold.
func RenderDigestBody(alerts []models.BudgetAlert) string {
	if len(alerts) == 0 {
		return renderLayout("Daily Budget Digest", colorInfo, "<p>Every budget is within its limits.</p>")
	}

	var rows strings.Builder
	for _, a := range alerts {
		status := "Warning"
		color := colorWarning
		switch {
		case a.Budget.Locked:
			status, color = "Locked", colorAlert
		case a.Budget.AmountLeft.IsNegative():
			status, color = "Exceeded", colorAlert
		}
		fmt.Fprintf(&rows, `
			<tr>
				<td style="padding: 6px;">%s</td>
				<td style="padding: 6px;">%s</td>
				<td style="padding: 6px; text-align: right;">%s / %s</td>
				<td style="padding: 6px; text-align: right;">%s%%</td>
				<td style="padding: 6px; color: %s; font-weight: bold;">%s</td>
			</tr>`,
			html.EscapeString(a.UserName),
			html.EscapeString(string(a.Budget.Name)),
			a.Budget.Spent.StringFixed(2),
			a.Budget.Limit.StringFixed(2),
			a.Budget.PercentUsed.StringFixed(0),
			color, status,
		)
	}

	content := fmt.Sprintf(`
		<p>These budgets are close to or over their limits:</p>
		<table style="width: 100%%; border-collapse: collapse;">
			<tr style="text-align: left; border-bottom: 1px solid #ddd;">
				<th style="padding: 6px;">Member</th>
				<th style="padding: 6px;">Budget</th>
				<th style="padding: 6px; text-align: right;">Spent</th>
				<th style="padding: 6px; text-align: right;">Used</th>
				<th style="padding: 6px;">Status</th>
			</tr>%s
		</table>
	`, rows.String())
	return renderLayout("Daily Budget Digest", colorWarning, content)
}
