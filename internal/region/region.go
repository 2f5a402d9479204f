// Package region holds the rendered output areas of the console. Every
// request takes a token on Begin; only the holder of the newest token may
// Commit, so a slow response can never overwrite a newer one.
package region

import "context"

const (
	Result      = "result"
	HistoryList = "historyList"
)

// Region is one output area.
type Region interface {
	// Begin shows placeholder and returns a token newer than every token
	// handed out before.
	Begin(ctx context.Context, placeholder string) (uint64, error)
	// Commit stores content if token is still the newest. It reports
	// false for a stale token.
	Commit(ctx context.Context, token uint64, content string) (bool, error)
	Get(ctx context.Context) (string, error)
}

// Store hands out the regions of a workspace.
type Store interface {
	Region(workspaceID, name string) Region
}

// Known reports whether name is a region the console renders into.
func Known(name string) bool {
	return name == Result || name == HistoryList
}
