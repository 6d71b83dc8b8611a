package scoring

import (
	"sort"

	"github.com/MikeSquared-Agency/Triage/internal/store"
)

// bucketRank orders buckets for the fixed presentation sort. Unknown buckets
// sort last.
var bucketRank = map[store.Bucket]int{
	store.BucketToday:    0,
	store.BucketThisWeek: 1,
	store.BucketLater:    2,
	store.BucketBacklog:  3,
}

func bucketOrder(b store.Bucket) int {
	if r, ok := bucketRank[b]; ok {
		return r
	}
	return len(bucketRank)
}

// Rank sorts tasks in place into the default presentation order:
// incomplete before done, then bucket rank, priority ascending, due date
// ascending with undated tasks last, then creation time. The sort is stable,
// so tasks identical in every key keep their insertion order.
func Rank(tasks []*store.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return rankLess(tasks[i], tasks[j])
	})
}

// RankByScore sorts annotated tasks by composite score, highest first. This
// is the "single next best task" view; Rank remains the default contract.
func RankByScore(scored []ScoredTask) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Scores.Composite > scored[j].Scores.Composite
	})
}

func rankLess(a, b *store.Task) bool {
	aDone := a.Status == store.StatusDone
	bDone := b.Status == store.StatusDone
	if aDone != bDone {
		return !aDone
	}

	ab, bb := bucketOrder(a.Bucket), bucketOrder(b.Bucket)
	if ab != bb {
		return ab < bb
	}

	ap, bp := normalizePriority(a.Priority), normalizePriority(b.Priority)
	if ap != bp {
		return ap < bp
	}

	// Tasks without a due date sort after every task that has one.
	switch {
	case a.DueDate != nil && b.DueDate == nil:
		return true
	case a.DueDate == nil && b.DueDate != nil:
		return false
	case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
		return a.DueDate.Before(*b.DueDate)
	}

	return a.CreatedAt.Before(b.CreatedAt)
}
