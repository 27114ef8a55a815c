package review

import (
	"time"

	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
)

// Scheduler decides when a rated card should come back. It is a pure
// strategy: no side effects beyond the returned date.
type Scheduler interface {
	NextReview(card repository.Flashcard, rating int, today time.Time) time.Time
}

// intervalDaysByRating maps a learner rating (1 = easy, 5 = hard) to the
// number of days until the card is due again.
var intervalDaysByRating = map[int]int{
	1: 14,
	2: 7,
	3: 3,
	4: 1,
	5: 1,
}

// IntervalScheduler is the default scheduling policy: a fixed interval
// table keyed by the rating alone.
type IntervalScheduler struct{}

func NewIntervalScheduler() Scheduler {
	return IntervalScheduler{}
}

func (IntervalScheduler) NextReview(_ repository.Flashcard, rating int, today time.Time) time.Time {
	days, ok := intervalDaysByRating[rating]
	if !ok {
		days = 1
	}
	return truncateToDate(today).AddDate(0, 0, days)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
