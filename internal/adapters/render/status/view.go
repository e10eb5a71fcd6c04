package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/utilityapi-cli/internal/domain"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// Document is what a command wants on screen. Nil sections are skipped,
// empty non-nil sections print a placeholder.
type Document struct {
	Title        string
	Profiles     []domain.Profile
	Accounts     []domain.Account
	Services     []domain.Service
	Bills        []domain.Bill
	Intervals    []domain.Interval
	Requirements *domain.AddRequirements
}

type RenderOptions struct {
	Now time.Time
}

func renderView(doc Document, opts RenderOptions, s styles) string {
	var lines []string
	if doc.Title != "" {
		lines = append(lines, s.title.Render(doc.Title))
	}

	if doc.Profiles != nil {
		lines = append(lines, renderSection("profiles", len(doc.Profiles), "No profiles configured.", s, func(i int) string {
			return renderProfile(doc.Profiles[i], s)
		})...)
	}
	if doc.Accounts != nil {
		lines = append(lines, renderSection("accounts", len(doc.Accounts), "No accounts.", s, func(i int) string {
			return renderAccount(doc.Accounts[i], s)
		})...)
	}
	if doc.Services != nil {
		lines = append(lines, renderSection("services", len(doc.Services), "No services.", s, func(i int) string {
			return renderService(doc.Services[i], opts, s)
		})...)
	}
	if doc.Bills != nil {
		lines = append(lines, renderSection("bills", len(doc.Bills), "No bills collected yet.", s, func(i int) string {
			return renderBill(doc.Bills[i], s)
		})...)
	}
	if doc.Intervals != nil {
		lines = append(lines, renderSection("intervals", len(doc.Intervals), "No intervals collected yet.", s, func(i int) string {
			return renderInterval(doc.Intervals[i], s)
		})...)
	}
	if doc.Requirements != nil {
		lines = append(lines, s.section.Render(renderRequirements(*doc.Requirements, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSection(name string, count int, emptyText string, s styles, item func(int) string) []string {
	lines := []string{s.section.Render(s.header.Render(fmt.Sprintf("%s: %d", name, count)))}
	if count == 0 {
		return append(lines, s.empty.Render(emptyText))
	}
	for i := range count {
		lines = append(lines, item(i))
	}
	return lines
}

func renderProfile(profile domain.Profile, s styles) string {
	parts := []string{
		s.item.Render(string(profile.Name)),
		detailLine(s, "base url", profile.BaseURL),
	}
	if profile.PollDelay > 0 {
		parts = append(parts, detailLine(s, "poll delay", profile.PollDelay.String()))
	}
	if !profile.UpdatedAt.IsZero() {
		parts = append(parts, detailLine(s, "updated", profile.UpdatedAt.Format(dateTimeLayout)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderAccount(account domain.Account, s styles) string {
	title := fmt.Sprintf("Account %s", account.UID)
	if account.Utility != "" {
		title += fmt.Sprintf(" (%s)", account.Utility)
	}

	parts := []string{s.item.Render(title)}
	if account.AuthType != "" || account.Auth != "" {
		parts = append(parts, detailLine(s, "auth", strings.TrimSpace(string(account.AuthType)+" "+account.Auth)))
	}
	if !account.AuthExpires.IsZero() {
		parts = append(parts, detailLine(s, "auth expires", account.AuthExpires.Format(dateLayout)))
	}
	parts = append(parts, logLine("status", account.Latest, s))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderService(service domain.Service, opts RenderOptions, s styles) string {
	title := fmt.Sprintf("Service %s", service.UID)
	if service.AccountUID != "" {
		title += fmt.Sprintf(" (account %s)", service.AccountUID)
	}

	parts := []string{s.item.Render(title)}
	for _, field := range []struct{ key, value string }{
		{"utility", service.Utility},
		{"address", service.UtilityServiceAddress},
		{"meter", service.UtilityMeterNumber},
		{"tariff", service.UtilityTariffName},
	} {
		if field.value != "" {
			parts = append(parts, detailLine(s, field.key, field.value))
		}
	}
	parts = append(parts, detailLine(s, "data", fmt.Sprintf("%d bills, %d intervals", service.BillCount, service.IntervalCount)))
	parts = append(parts, activeLine(service, opts, s))
	parts = append(parts, logLine("status", service.Latest, s))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func activeLine(service domain.Service, opts RenderOptions, s styles) string {
	if service.ActiveUntil.IsZero() {
		return detailLine(s, "active until", "never activated")
	}

	line := detailLine(s, "active until", service.ActiveUntil.Format(dateTimeLayout))
	if !opts.Now.IsZero() && !service.Active(opts.Now) {
		line += " " + s.warning.Render("[inactive]")
	}
	return line
}

func renderBill(bill domain.Bill, s styles) string {
	period := fmt.Sprintf("%s to %s", formatDate(bill.StartDate.Time), formatDate(bill.EndDate.Time))
	summary := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.item.Render(period),
		" ",
		s.detail.Render(fmt.Sprintf("%d days, %.1f kWh", bill.BillDays, bill.TotalKWh)),
		" ",
		s.amount.Render(formatUSD(bill.Total)),
	)

	parts := []string{summary}
	for _, charge := range bill.Breakdown {
		parts = append(parts, "  "+s.key.Render(charge.Name+":")+" "+s.amount.Render(formatUSD(charge.Amount)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderInterval(interval domain.Interval, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.item.Render(fmt.Sprintf("%s to %s", interval.Start.Format(dateTimeLayout), interval.End.Format("15:04"))),
		" ",
		s.detail.Render(fmt.Sprintf("%.3f kWh, %.3f kW", interval.KWh, interval.KW)),
	)
}

func renderRequirements(requirements domain.AddRequirements, s styles) string {
	parts := []string{s.header.Render(fmt.Sprintf("options: %d", len(requirements.Options)))}
	if requirements.Help != "" {
		parts = append(parts, detailLine(s, "help", requirements.Help))
	}
	if requirements.Docs != "" {
		parts = append(parts, detailLine(s, "docs", requirements.Docs))
	}

	for _, option := range requirements.Options {
		switch {
		case option.Utility != nil:
			parts = append(parts, utilityLine(*option.Utility, s))
		case option.Option != nil:
			line := "- " + option.Option.Name
			if option.Option.Required {
				line += " " + s.warning.Render("(required)")
			}
			if option.Option.Description != "" {
				line += " " + s.detail.Render(option.Option.Description)
			}
			parts = append(parts, line)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func utilityLine(requirement domain.UtilityRequirement, s styles) string {
	allows := make([]string, 0, len(requirement.Allows))
	for _, authType := range requirement.Allows {
		allows = append(allows, string(authType))
	}
	names := make([]string, 0, len(requirement.Options))
	for _, option := range requirement.Options {
		names = append(names, option.Name)
	}

	line := "- utility " + s.item.Render(requirement.Utility)
	if len(allows) > 0 {
		line += " " + s.detail.Render("allows "+strings.Join(allows, ", "))
	}
	if len(names) > 0 {
		line += " " + s.key.Render("fields: "+strings.Join(names, ", "))
	}
	return line
}

func logLine(key string, log domain.Log, s styles) string {
	var style lipgloss.Style
	switch log.Type {
	case domain.LogUpdated:
		style = s.updated
	case domain.LogPending:
		style = s.pending
	case domain.LogError:
		style = s.failed
	default:
		style = s.unknown
	}

	value := style.Render(string(log.Type))
	if !log.Timestamp.IsZero() {
		value += " " + s.detail.Render(log.Timestamp.Format(dateTimeLayout))
	}
	if log.Message != "" {
		value += " " + s.detail.Render(log.Message)
	}
	return s.key.Render(key+":") + " " + value
}

func detailLine(s styles, key, value string) string {
	return s.key.Render(key+":") + " " + s.detail.Render(value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "?"
	}
	return t.Format(dateLayout)
}

func formatUSD(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}
