package tasks

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/user/taskmanager-go/store"
)

// BuildQuery turns the query string of GET /tasks into an owner-scoped TaskQuery.
//
//	completed=true          only completed tasks; any other non-empty value selects incomplete ones
//	sortBy=field:direction  direction "desc" sorts descending, anything else ascending
//	limit=n, skip=n         pagination; unparseable or non-positive values are ignored
//
// The owner filter is always set from the authenticated user and can not be
// influenced by the query string.
func BuildQuery(owner uuid.UUID, params url.Values) store.TaskQuery {
	q := store.TaskQuery{Owner: owner}

	if raw := params.Get("completed"); raw != "" {
		completed := raw == "true"
		q.Completed = &completed
	}

	if raw := params.Get("sortBy"); raw != "" {
		field, direction, _ := strings.Cut(raw, ":")
		if store.SortableTaskFields[field] {
			q.SortField = field
			q.SortDesc = direction == "desc"
		}
	}

	q.Limit = positiveInt(params.Get("limit"))
	q.Skip = positiveInt(params.Get("skip"))
	return q
}

// positiveInt parses s, returning 0 for anything that is not a non-negative integer.
func positiveInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
