package types

import "strings"

type Update struct {
	ID     int64  `json:"id"`
	Update string `json:"update"`
}

// NormalizeUpdates trims text, drops blank entries and assigns ids to entries
// without one, continuing from the highest id present in the set.
func NormalizeUpdates(in []*Update) []*Update {
	var maxID int64
	for _, u := range in {
		if u != nil && u.ID > maxID {
			maxID = u.ID
		}
	}

	seen := make(map[int64]bool, len(in))
	out := make([]*Update, 0, len(in))
	for _, u := range in {
		if u == nil {
			continue
		}

		text := strings.TrimSpace(u.Update)
		if text == "" {
			continue
		}

		id := u.ID
		if id <= 0 || seen[id] {
			maxID++
			id = maxID
		}
		seen[id] = true

		out = append(out, &Update{ID: id, Update: text})
	}

	return out
}
