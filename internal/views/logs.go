package views

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"

	"github.com/rs/zerolog"
)

type LogsAPI interface {
	ListLogs(ctx context.Context, page, size int, from, to time.Time) (*models.Envelope[models.LogEntry], error)
}

// LogsView is the read-only audit trail table.
type LogsView struct {
	List *ListState[models.LogEntry]

	api LogsAPI
	log zerolog.Logger

	mu       sync.Mutex
	from, to time.Time
}

func NewLogsView(client LogsAPI, logger *zerolog.Logger) *LogsView {
	v := &LogsView{
		api:  client,
		from: today(),
		to:   today(),
	}
	if logger != nil {
		v.log = logger.With().Str("view", "logs").Logger()
	}
	v.List = newListState("logs", v.fetch, logger)
	return v
}

func (v *LogsView) fetch(ctx context.Context, page int) ([]models.LogEntry, *models.Meta, error) {
	v.mu.Lock()
	from, to := v.from, v.to
	v.mu.Unlock()

	env, err := v.api.ListLogs(ctx, page, models.DefaultPageSize, from, to)
	if err != nil {
		return nil, nil, err
	}
	return env.Data, env.Meta, nil
}

func (v *LogsView) SetDateRange(ctx context.Context, from, to time.Time) error {
	v.mu.Lock()
	v.from, v.to = from, to
	v.mu.Unlock()
	return v.List.ResetToFirstPage(ctx)
}

// RenderActivityTree expands a raw activity payload into indented lines for
// the detail panel. Keys are sorted so output is stable; nested objects and
// arrays indent one level per depth.
func RenderActivityTree(activity map[string]any) []string {
	var lines []string
	renderNode(&lines, activity, 0)
	return lines
}

func renderNode(lines *[]string, node map[string]any, depth int) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	indent := strings.Repeat("  ", depth)
	for _, k := range keys {
		switch val := node[k].(type) {
		case map[string]any:
			*lines = append(*lines, indent+k+":")
			renderNode(lines, val, depth+1)
		case []any:
			*lines = append(*lines, indent+k+":")
			for _, item := range val {
				if obj, ok := item.(map[string]any); ok {
					renderNode(lines, obj, depth+1)
					continue
				}
				*lines = append(*lines, indent+"  - "+fmt.Sprint(item))
			}
		default:
			*lines = append(*lines, fmt.Sprintf("%s%s: %v", indent, k, val))
		}
	}
}
