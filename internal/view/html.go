package view

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"insight-console/internal/model"
)

const fragments = `
{{define "upload_loading"}}<p>⏳ Uploading and analyzing...</p>{{end}}
{{define "upload_card"}}<div class="card">
  <h3>📄 {{.Filename}}</h3>
  <p>{{.Summary}}</p>
</div>{{end}}
{{define "upload_error"}}<p style="color:red;">❌ Error uploading file</p>{{end}}
{{define "history_loading"}}<p>⏳ Loading history...</p>{{end}}
{{define "history_empty"}}<p>No history found</p>{{end}}
{{define "history_cards"}}{{range .}}<div class="card">
  <h4>📄 {{.Filename}}</h4>
  <small>{{.When}}</small>
  <p>{{.Summary}}</p>
</div>
{{end}}{{end}}
{{define "history_error"}}<p style="color:red;">❌ Error loading history</p>{{end}}
`

// HTML renders region fragments. html/template escapes every field the
// backend supplies.
type HTML struct {
	tmpl *template.Template
	loc  *time.Location

	uploadLoading  string
	uploadFailed   string
	historyLoading string
	historyEmpty   string
	historyFailed  string
}

type historyCard struct {
	Filename string
	When     string
	Summary  string
}

func NewHTML(loc *time.Location) (*HTML, error) {
	tmpl, err := template.New("fragments").Parse(fragments)
	if err != nil {
		return nil, fmt.Errorf("parse fragment templates failed: %w", err)
	}
	h := &HTML{tmpl: tmpl, loc: loc}

	static := []struct {
		name string
		dst  *string
	}{
		{"upload_loading", &h.uploadLoading},
		{"upload_error", &h.uploadFailed},
		{"history_loading", &h.historyLoading},
		{"history_empty", &h.historyEmpty},
		{"history_error", &h.historyFailed},
	}
	for _, s := range static {
		out, err := h.execute(s.name, nil)
		if err != nil {
			return nil, err
		}
		*s.dst = out
	}
	return h, nil
}

func (h *HTML) UploadLoading() string { return h.uploadLoading }
func (h *HTML) UploadFailed() string  { return h.uploadFailed }

func (h *HTML) UploadCard(result model.UploadResult) (string, error) {
	return h.execute("upload_card", result)
}

func (h *HTML) HistoryLoading() string { return h.historyLoading }
func (h *HTML) HistoryEmpty() string   { return h.historyEmpty }
func (h *HTML) HistoryFailed() string  { return h.historyFailed }

func (h *HTML) HistoryCards(records []model.InsightRecord) (string, error) {
	cards := make([]historyCard, 0, len(records))
	for _, r := range records {
		cards = append(cards, historyCard{
			Filename: r.Filename,
			When:     FormatTimestamp(r.Timestamp, h.loc),
			Summary:  r.Summary,
		})
	}
	return h.execute("history_cards", cards)
}

func (h *HTML) execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s failed: %w", name, err)
	}
	return buf.String(), nil
}
