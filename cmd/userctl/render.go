package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/user-directory/engine/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	localStyle = cellStyle.
			Foreground(lipgloss.Color("42"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(14)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

var entryHeaders = []string{"ID", "NAME", "EMAIL", "COMPANY", "TITLE", "COUNTRY"}

func entryRow(e models.Entry) []string {
	if l := e.Local(); l != nil {
		return []string{"local", l.FirstName + " " + l.LastName, l.Email, l.CompanyName, l.Title, l.Country}
	}
	u := e.Persisted()
	return []string{
		strconv.FormatInt(u.ID, 10),
		u.FullName(),
		str(u.Email),
		str(u.Company.Name),
		str(u.Company.Title),
		str(u.Address.Country),
	}
}

func renderEntries(entries []models.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, entryRow(e))
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(entryHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(entries) && entries[row].Kind() == models.EntryLocal {
				return localStyle
			}
			return cellStyle
		})
	return t.Render()
}

func renderUser(u *models.User) string {
	lines := []struct{ label, value string }{
		{"id", strconv.FormatInt(u.ID, 10)},
		{"name", u.FullName()},
		{"email", str(u.Email)},
		{"username", str(u.Username)},
		{"phone", str(u.Phone)},
		{"birth date", str(u.BirthDate)},
		{"city", str(u.Address.City)},
		{"country", str(u.Address.Country)},
		{"company", str(u.Company.Name)},
		{"title", str(u.Company.Title)},
		{"card", str(u.Bank.CardNumber)},
		{"iban", str(u.Bank.IBAN)},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("User %d", u.ID)))
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(labelStyle.Render(l.label))
		b.WriteString(l.value)
		b.WriteString("\n")
	}
	return b.String()
}

func str(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
