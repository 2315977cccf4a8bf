package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/classkit/wordcloud/pkg/cloud"
)

var (
	rowSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	rowNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	rowDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// WordTableModel - Interactive frequency table
// =============================================================================

// WordTableModel is the bubbletea model for browsing ranked words.
type WordTableModel struct {
	Words  []cloud.AggregatedWord
	Cursor int
	Height int
	Offset int
}

// newWordTableModel creates a word table over the aggregated words.
func newWordTableModel(words []cloud.AggregatedWord) WordTableModel {
	return WordTableModel{
		Words:  words,
		Height: 15,
	}
}

func (m WordTableModel) Init() tea.Cmd {
	return nil
}

func (m WordTableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Words)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g", "home":
			m.Cursor, m.Offset = 0, 0
		case "G", "end":
			m.Cursor = len(m.Words) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 5
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m WordTableModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Word Frequencies"))
	b.WriteString("\n")
	b.WriteString(rowDimStyle.Render("↑/↓ navigate  g/G top/bottom  q quit"))
	b.WriteString("\n\n")

	if len(m.Words) == 0 {
		b.WriteString(rowDimStyle.Render("  no words submitted"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Words) {
		end = len(m.Words)
	}

	for i := m.Offset; i < end; i++ {
		row := formatWordRow(i, m.Words[i])
		if i == m.Cursor {
			b.WriteString(rowSelectedStyle.Render("▸ " + row))
		} else {
			b.WriteString(rowNormalStyle.Render("  " + row))
		}
		b.WriteString("\n")
	}

	if end < len(m.Words) {
		b.WriteString(rowDimStyle.Render(fmt.Sprintf("  … %d more", len(m.Words)-end)))
		b.WriteString("\n")
	}

	return b.String()
}

// formatWordRow renders one ranked word line: rank, word, count, and
// the distinct submitter count.
func formatWordRow(rank int, w cloud.AggregatedWord) string {
	return fmt.Sprintf("%3d. %-20s %4d× (%d명)", rank+1, w.Key, w.Count, len(w.SubmitterIDs))
}
