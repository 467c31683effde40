package analytics

import (
	"slices"
	"strings"
	"time"

	"github.com/j-veylop/llm-analytics-tui/internal/models"
)

// View sorts d by timestamp, keeps rows matching the search term, and
// returns the requested page. The page is clamped to the valid range.
func View(d models.Dataset, q models.TableQuery, loc *time.Location) models.TablePage {
	return Paginate(Search(SortRows(d, q.Order, loc), q.Search), q.Page, q.PageSize)
}

// SortRows returns a copy of d ordered by parsed timestamp. Rows whose
// timestamp does not parse are placed last in both orders, keeping their
// input order.
func SortRows(d models.Dataset, order models.SortOrder, loc *time.Location) models.Dataset {
	type keyed struct {
		ts  time.Time
		ok  bool
		row models.Row
	}
	rows := make([]keyed, len(d))
	for i, r := range d {
		ts, ok := ParseTimestamp(r.Timestamp, loc)
		rows[i] = keyed{ts: ts, ok: ok, row: r}
	}

	slices.SortStableFunc(rows, func(a, b keyed) int {
		switch {
		case !a.ok && !b.ok:
			return 0
		case !a.ok:
			return 1
		case !b.ok:
			return -1
		}
		c := a.ts.Compare(b.ts)
		if order == models.SortNewest {
			c = -c
		}
		return c
	})

	out := make(models.Dataset, len(rows))
	for i, k := range rows {
		out[i] = k.row
	}
	return out
}

// Search keeps rows whose workflow name, model, execution ID or user ID
// contains term, case-insensitively. An empty term keeps every row.
func Search(d models.Dataset, term string) models.Dataset {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return d
	}
	out := make(models.Dataset, 0, len(d))
	for _, r := range d {
		if matches(r, term) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.Row, term string) bool {
	for _, field := range []string{r.WorkflowName, r.LLMModel, r.ExecutionID, r.UserID} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Paginate returns the 1-based page of d. There is always at least one
// page, so an empty dataset yields page 1 of 1 with no rows.
func Paginate(d models.Dataset, page, pageSize int) models.TablePage {
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}
	total := len(d)
	pages := max(1, (total+pageSize-1)/pageSize)
	page = min(max(page, 1), pages)

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)

	return models.TablePage{
		Rows:       d[start:end:end],
		TotalCount: total,
		TotalPages: pages,
		Page:       page,
		PageSize:   pageSize,
	}
}
