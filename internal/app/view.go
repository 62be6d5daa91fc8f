package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwulff/medscribe/internal/transcript"
	"github.com/jwulff/medscribe/internal/ui"
)

// View renders the full editor.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderTabs())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	switch m.mode {
	case ModePicker:
		sections = append(sections, m.renderPicker())
	case ModeBind:
		sections = append(sections, m.renderBind())
	case ModeCreate:
		sections = append(sections, m.renderCreate())
	default:
		sections = append(sections, m.editors[m.ws.Active()].View())
		sections = append(sections, m.renderPartial())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}

	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("MEDSCRIBE")

	var dot string
	if m.ws.Recording() {
		dot = ui.RecordingDotStyle.Render("● REC")
	} else {
		dot = ui.IdleDotStyle.Render("○ IDLE")
	}

	status := ui.StatusStyle.Render(m.statusText)
	if strings.HasPrefix(m.statusText, "Saved") || strings.HasPrefix(m.statusText, "Applied") {
		status = ui.StatusOKStyle.Render(m.statusText)
	}

	return title + "  " + dot + "  " + status
}

func (m Model) renderTabs() string {
	var tabs []string
	for _, sec := range transcript.All() {
		label := sec.Title()
		if sec == m.ws.Active() {
			tabs = append(tabs, ui.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, ui.TabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderPartial shows in-progress speech. It is never part of the section text.
func (m Model) renderPartial() string {
	if !m.ws.Recording() {
		return ""
	}
	if p := m.ws.Partial(); p != "" {
		return ui.PartialTextStyle.Render(truncateToWidth("… "+p, m.width))
	}
	return ui.DimStyle.Render("Listening into " + m.ws.Active().Title() + "...")
}

func (m Model) renderPicker() string {
	lines := []string{ui.DialogTitleStyle.Render("Insert template")}
	if len(m.pickerItems) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No templates. Press ctrl+n to create one."))
		return strings.Join(lines, "\n")
	}
	for i, t := range m.pickerItems {
		line := "  " + t.Name
		if i == m.pickerIndex {
			line = ui.SelectedStyle.Render("> " + t.Name)
		}
		if len(t.Variables) > 0 {
			line += ui.DimStyle.Render(fmt.Sprintf("  (%d variables)", len(t.Variables)))
		}
		lines = append(lines, line)
		if i == m.pickerIndex && t.Description != "" {
			lines = append(lines, ui.DimStyle.Render("    "+truncateToWidth(t.Description, m.width-4)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderBind() string {
	name := ""
	if t, ok := m.ws.Templates().Selected(); ok {
		name = t.Name
	}
	lines := []string{ui.DialogTitleStyle.Render("Fill in " + name)}

	width := 0
	for _, v := range m.bindNames {
		width = max(width, len(v))
	}
	for i, v := range m.bindNames {
		label := ui.LabelStyle.Render(padRight(v, width) + "  ")
		if i == m.bindFocus {
			label = ui.SelectedStyle.Render(padRight(v, width) + "  ")
		}
		lines = append(lines, label+m.bindInputs[i].View())
	}
	lines = append(lines, ui.DimStyle.Render("Empty values are inserted as [name not provided]."))
	return strings.Join(lines, "\n")
}

func (m Model) renderCreate() string {
	lines := []string{
		ui.DialogTitleStyle.Render("New template"),
		m.nameInput.View(),
		m.contentInput.View(),
	}
	if m.confirmOverwrite {
		lines = append(lines, ui.ErrorTextStyle.Render("A template with this name exists. ctrl+s overwrites it."))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.errorMessage)
}

func (m Model) renderFooter() string {
	var parts []string

	switch m.mode {
	case ModePicker:
		parts = append(parts, ui.KeyHint("↑↓", "Select"), ui.KeyHint("Enter", "Use"), ui.KeyHint("Esc", "Cancel"))
	case ModeBind:
		parts = append(parts, ui.KeyHint("Tab", "Next"), ui.KeyHint("ctrl+a", "Insert"), ui.KeyHint("Esc", "Cancel"))
	case ModeCreate:
		parts = append(parts, ui.KeyHint("Tab", "Field"), ui.KeyHint("ctrl+s", "Save"), ui.KeyHint("Esc", "Cancel"))
	default:
		if m.ws.SpeechAvailable() {
			if m.ws.Recording() {
				parts = append(parts, ui.KeyHint("ctrl+r", "Stop"))
			} else {
				parts = append(parts, ui.KeyHint("ctrl+r", "Record"))
			}
		}
		parts = append(parts,
			ui.KeyHint("Tab", "Section"),
			ui.KeyHint("ctrl+t", "Template"),
			ui.KeyHint("ctrl+n", "New"),
			ui.KeyHint("ctrl+s", "Save"),
			ui.KeyHint("ctrl+p", "Print"),
			ui.KeyHint("ctrl+y", "Copy"),
		)
	}
	parts = append(parts, ui.KeyHint("ctrl+c", "Quit"))

	return strings.Join(parts, "  ")
}

// Helpers

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if width <= 0 || visible <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}
