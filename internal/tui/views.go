package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/videoclub/internal/gallery"
	"github.com/mmcdole/videoclub/internal/tui/styles"
)

// cardHeight is the rendered height of a card without diagnostics:
// border, heading, poster or player line, year and duration
const cardHeight = 6

const appTitle = "Videoclub"

// splashHeight is the height of the splash title block
const splashHeight = 3

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.State == StateSplash {
		return m.renderSplash()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.showBackdrop {
		b.WriteString(m.backdrop.Render())
		b.WriteString("\n")
	}

	if m.loaded {
		b.WriteString(m.viewport.View())
	} else {
		body := fmt.Sprintf("%s Cargando catálogo...", m.spinner.View())
		b.WriteString(lipgloss.Place(m.Width, m.viewport.Height, lipgloss.Center, lipgloss.Center, body))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(Keys))
	return b.String()
}

// renderHeader draws the title line and the status line
func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render(appTitle)
	if n := m.gallery.Len(); n > 0 {
		title += styles.DimStyle.Render(fmt.Sprintf("  %d/%d", m.cursor+1, n))
	}

	status := " "
	if m.StatusMsg != "" {
		style := styles.StatusStyle
		if m.StatusIsErr {
			style = styles.StatusErrorStyle
		}
		status = style.Render(styles.Truncate(m.StatusMsg, m.Width))
	}
	return title + "\n" + status
}

// renderSplash draws the splash screen over the star field
func (m Model) renderSplash() string {
	block := lipgloss.JoinVertical(lipgloss.Center,
		styles.SplashTitleStyle.Render(appTitle),
		"",
		styles.SplashHintStyle.Render("Pulsa cualquier tecla para entrar"),
	)
	if !m.showBackdrop {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, block)
	}

	stars := m.sky.Render()

	parts := []string{}
	if stars != "" {
		parts = append(parts, stars)
	}
	parts = append(parts, lipgloss.PlaceHorizontal(m.Width, lipgloss.Center, block))
	if stars != "" {
		parts = append(parts, stars)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderRegion draws the region content. It returns the content along with
// the first and last line of the selected card.
func renderRegion(r *screenRegion, cursor, width int) (content string, top, bottom int) {
	if r.message != nil {
		style := styles.MessageInfoStyle
		if r.message.Kind == gallery.MessageError {
			style = styles.MessageErrorStyle
		}
		return style.Width(max(width, 1)).Render(r.message.Text), 0, 0
	}

	lines := 0
	blocks := make([]string, 0, len(r.cards))
	for i, c := range r.cards {
		block := renderCard(c, i == cursor, width)
		h := lipgloss.Height(block)
		if i == cursor {
			top, bottom = lines, lines+h
		}
		lines += h
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n"), top, bottom
}

// renderCard draws one catalog entry
func renderCard(c *card, selected bool, width int) string {
	inner := max(width-4, 10) // border + padding
	f := c.fragment

	lines := []string{styles.TitleStyle.Render(styles.Truncate(f.Heading, inner))}

	if c.posterVisible {
		poster := f.Poster
		if poster == "" {
			poster = f.Alt
		}
		lines = append(lines, styles.PosterStyle.Render(styles.Truncate("▣ "+poster, inner)))
	}
	if c.playerVisible {
		lines = append(lines, styles.PlayerStyle.Render(styles.Truncate("▶ Reproduciendo  "+c.streamURL, inner-2)))
	}

	lines = append(lines,
		styles.SubtitleStyle.Render(f.YearText),
		styles.SubtitleStyle.Render(f.DurationText),
	)
	for _, d := range c.diagnostics {
		lines = append(lines, styles.ErrorStyle.Render(styles.Truncate(d, inner)))
	}

	style := styles.CardStyle
	if selected {
		style = styles.SelectedCardStyle
	}
	return style.Width(inner + 2).Render(strings.Join(lines, "\n"))
}
