package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/poiesic/aegis/core"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	riskStyles = map[core.RiskLevel]lipgloss.Style{
		core.RiskNone:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		core.RiskLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		core.RiskMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		core.RiskHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

func heading(w io.Writer, title string, count int) {
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("%s (%d)", title, count)))
}

func riskBadge(level core.RiskLevel) string {
	style, ok := riskStyles[level]
	if !ok {
		style = faintStyle
	}
	return style.Render("[" + string(level) + "]")
}

func printCategories(w io.Writer, categories []core.Category) {
	heading(w, "Categories", len(categories))
	for _, category := range categories {
		fmt.Fprintf(w, "  %s %s\n", category.Name, faintStyle.Render("("+category.Slug+")"))
	}
}

func printResources(w io.Writer, resources []core.Resource) {
	heading(w, "Resources", len(resources))
	for _, r := range resources {
		fmt.Fprintf(w, "  %s %s %s · %s · %s\n", r.Name, faintStyle.Render("("+r.ID+")"), riskBadge(r.RiskLevel), r.Cost, r.Type)
		fmt.Fprintf(w, "    %s\n", r.URL)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
