package service

import (
	"sort"
	"time"

	"moim-api/core/constants"
	"moim-api/core/utils"
)

// CandidateBlock is a merged, possibly multi-slot, contiguous window of
// maximal availability.
type CandidateBlock struct {
	TimePoint       string
	StartTime       string
	EndTime         string
	PossibleCount   int
	PossibleNames   []string
	ImpossibleNames []string
}

// Aggregator computes the time windows the largest number of participants
// share, merging adjacent slots into contiguous blocks.
type Aggregator struct {
	// SlotMinutes is the width of one slot.
	SlotMinutes int
	// MaxBlocks caps the number of blocks returned.
	MaxBlocks int
}

// NewAggregator creates an aggregator with the service defaults.
func NewAggregator() *Aggregator {
	return &Aggregator{
		SlotMinutes: constants.SlotIntervalMinutes,
		MaxBlocks:   constants.MaxCandidateBlocks,
	}
}

// Aggregate finds the slots selected by the maximum number of participants
// and merges adjacent ones into candidate blocks.
//
// The index must be traversed in slot generation order; a block only extends
// when the next slot starts exactly where the block ends.
func (a *Aggregator) Aggregate(index *SelectionIndex, roster []string, category string) []CandidateBlock {
	// 1. Find the maximum simultaneous availability.
	maxCount := 0
	for _, key := range index.Keys() {
		if n := len(index.Names(key)); n > maxCount {
			maxCount = n
		}
	}

	// An event with no selections yields no candidates. Without this guard
	// every empty slot would tie at zero.
	if maxCount == 0 {
		return []CandidateBlock{}
	}

	// 2. Sweep slots in stored order, extending or opening blocks.
	blocks := []CandidateBlock{}
	var cur *CandidateBlock

	for _, key := range index.Keys() {
		names := index.Names(key)
		if len(names) != maxCount {
			continue
		}

		startMin, err := utils.ClockToMinutes(key.Time)
		if err != nil {
			continue
		}
		endTime := utils.MinutesToClock(startMin + a.SlotMinutes)

		// 3. Merge predicate: same time point, contiguous clock time, and the
		// block's participant set covers this slot's. Two different groups can
		// both be "the max" in adjacent slots and must not merge.
		if cur != nil &&
			cur.TimePoint == key.TimePoint &&
			cur.EndTime == key.Time &&
			containsAll(cur.PossibleNames, names) {
			cur.EndTime = endTime
			continue
		}

		// 4. The cap counts merged blocks; once full, later candidates are
		// dropped even if they tie on count.
		if len(blocks) == a.MaxBlocks {
			break
		}

		blocks = append(blocks, CandidateBlock{
			TimePoint:       key.TimePoint,
			StartTime:       key.Time,
			EndTime:         endTime,
			PossibleCount:   maxCount,
			PossibleNames:   names,
			ImpossibleNames: subtractNames(roster, names),
		})
		cur = &blocks[len(blocks)-1]
	}

	// 5. Sort for display.
	a.sortBlocks(blocks, category)
	return blocks
}

// sortBlocks orders date events chronologically and day events by the fixed
// weekday ordering, time of day second in both cases.
func (a *Aggregator) sortBlocks(blocks []CandidateBlock, category string) {
	if category == constants.CategoryDay {
		sort.SliceStable(blocks, func(i, j int) bool {
			di := constants.WeekdayIndex(blocks[i].TimePoint)
			dj := constants.WeekdayIndex(blocks[j].TimePoint)
			if di != dj {
				return di < dj
			}
			return blocks[i].StartTime < blocks[j].StartTime
		})
		return
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		ti, ei := time.Parse("2006.01.02", blocks[i].TimePoint)
		tj, ej := time.Parse("2006.01.02", blocks[j].TimePoint)
		if ei == nil && ej == nil && !ti.Equal(tj) {
			return ti.Before(tj)
		}
		if blocks[i].TimePoint != blocks[j].TimePoint {
			return blocks[i].TimePoint < blocks[j].TimePoint
		}
		return blocks[i].StartTime < blocks[j].StartTime
	})
}

// containsAll reports whether set includes every element of subset.
func containsAll(set []string, subset []string) bool {
	members := make(map[string]struct{}, len(set))
	for _, s := range set {
		members[s] = struct{}{}
	}
	for _, s := range subset {
		if _, ok := members[s]; !ok {
			return false
		}
	}
	return true
}

// subtractNames returns roster minus names, keeping roster order and
// dropping duplicates.
func subtractNames(roster []string, names []string) []string {
	exclude := make(map[string]struct{}, len(names))
	for _, n := range names {
		exclude[n] = struct{}{}
	}
	out := []string{}
	for _, r := range roster {
		if _, ok := exclude[r]; ok {
			continue
		}
		exclude[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
