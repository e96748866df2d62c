package unify

import (
	"strings"

	"github.com/carvoy/locmerge/pkg/logging"
)

// emptyCityPrefix marks a match key whose city part reduced to nothing.
// Such records cannot be grouped and are dropped before bucketing.
const emptyCityPrefix = "|"

// Group is one bucket of records sharing a match key. The first record
// folded into the bucket fixes the display city and type for the whole
// group.
type Group struct {
	Key     string
	City    string
	Type    string
	Members []Record
}

// GroupAll buckets enriched records by match key. It is a single-threaded
// reduction: the group table is shared mutable state, and fold order is the
// deterministic supplier order that first-wins merge policies depend on.
func GroupAll(records []Record) []Group {
	index := make(map[string]int)
	var groups []Group
	dropped := 0

	for _, record := range records {
		if strings.HasPrefix(record.MatchKey, emptyCityPrefix) {
			// No usable city text; the record can never be matched.
			dropped++
			continue
		}

		i, ok := index[record.MatchKey]
		if !ok {
			i = len(groups)
			index[record.MatchKey] = i
			groups = append(groups, Group{
				Key:  record.MatchKey,
				City: record.City,
				Type: displayType(record.Type),
			})
		}
		groups[i].Members = append(groups[i].Members, record)
	}

	if dropped > 0 {
		logging.Debug().Int("dropped", dropped).Msg("Dropped records without a groupable city")
	}
	return groups
}
