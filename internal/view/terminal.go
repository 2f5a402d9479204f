package view

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"insight-console/internal/model"
)

var (
	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(72)
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	styleWhen    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	styleNotice  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleFailure = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Terminal draws the same cards as HTML for a terminal. Text is written
// as-is; lipgloss does not interpret markup.
type Terminal struct {
	loc *time.Location
}

func NewTerminal(loc *time.Location) *Terminal {
	return &Terminal{loc: loc}
}

func (t *Terminal) UploadLoading() string { return styleNotice.Render("⏳ Uploading and analyzing...") }
func (t *Terminal) UploadFailed() string  { return styleFailure.Render("❌ Error uploading file") }

func (t *Terminal) UploadCard(result model.UploadResult) (string, error) {
	body := styleTitle.Render("📄 "+result.Filename) + "\n" + result.Summary
	return styleCard.Render(body), nil
}

func (t *Terminal) HistoryLoading() string { return styleNotice.Render("⏳ Loading history...") }
func (t *Terminal) HistoryEmpty() string   { return styleNotice.Render("No history found") }
func (t *Terminal) HistoryFailed() string  { return styleFailure.Render("❌ Error loading history") }

func (t *Terminal) HistoryCards(records []model.InsightRecord) (string, error) {
	cards := make([]string, 0, len(records))
	for _, r := range records {
		body := styleTitle.Render("📄 "+r.Filename) + "\n" +
			styleWhen.Render(FormatTimestamp(r.Timestamp, t.loc)) + "\n" +
			r.Summary
		cards = append(cards, styleCard.Render(body))
	}
	return strings.Join(cards, "\n"), nil
}
