package catalog

import "github.com/mmcdole/marquee/internal/domain"

// Merge concatenates shards in the order given and keeps the first occurrence
// of each id. Items without an id or without a poster are dropped.
func Merge(shards [][]domain.Item) []domain.Item {
	total := 0
	for _, shard := range shards {
		total += len(shard)
	}

	seen := make(map[domain.ID]struct{}, total)
	merged := make([]domain.Item, 0, total)

	for _, shard := range shards {
		for _, item := range shard {
			if item.ID.IsZero() || item.PosterPath == "" {
				continue
			}
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
			merged = append(merged, item)
		}
	}

	return merged
}
