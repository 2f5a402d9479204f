package app

import (
	"context"
	"fmt"
	"log"

	"insight-console/internal/model"
	"insight-console/internal/region"
)

type InsightLister interface {
	ListInsights(ctx context.Context) ([]model.InsightRecord, error)
}

type HistoryView interface {
	HistoryLoading() string
	HistoryEmpty() string
	HistoryCards(records []model.InsightRecord) (string, error)
	HistoryFailed() string
}

// HistoryLoader fetches past insights and renders them as cards.
type HistoryLoader struct {
	lister InsightLister
	view   HistoryView
}

func NewHistoryLoader(lister InsightLister, view HistoryView) *HistoryLoader {
	return &HistoryLoader{lister: lister, view: view}
}

// Load runs one history fetch. Records keep the order the backend chose.
func (l *HistoryLoader) Load(ctx context.Context, out region.Region) error {
	token, err := out.Begin(ctx, l.view.HistoryLoading())
	if err != nil {
		return fmt.Errorf("begin history region failed: %w", err)
	}

	content, err := l.render(ctx)
	if err != nil {
		log.Printf("load history failed: %v", err)
		content = l.view.HistoryFailed()
	}

	committed, err := out.Commit(ctx, token, content)
	if err != nil {
		return fmt.Errorf("commit history region failed: %w", err)
	}
	if !committed {
		log.Printf("history finished after a newer request, response dropped")
	}
	return nil
}

func (l *HistoryLoader) render(ctx context.Context) (string, error) {
	records, err := l.lister.ListInsights(ctx)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return l.view.HistoryEmpty(), nil
	}
	return l.view.HistoryCards(records)
}
