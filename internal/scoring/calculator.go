package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Triage/internal/store"
)

// SubScore captures one sub-score value and how it was produced.
type SubScore struct {
	Value    int    `json:"value"`
	Inferred bool   `json:"inferred"`
	Reason   string `json:"reason"`
}

// Breakdown is the complete scoring output for a single task.
type Breakdown struct {
	Leverage SubScore `json:"leverage"`
	Urgency  SubScore `json:"urgency"`
	Risk     SubScore `json:"risk"`
	Friction SubScore `json:"friction"`

	// Composite = leverage + urgency + risk - friction. Higher means the
	// task is more valuable to do next.
	Composite int `json:"composite"`
}

// ScoredTask pairs a task with its freshly computed breakdown for
// presentation. Scores are a read-time view, never persisted.
type ScoredTask struct {
	*store.Task
	Scores Breakdown `json:"scores"`
}

// Urgency windows relative to the due date.
const (
	windowOverdue = 0
	window24h     = 24 * time.Hour
	window72h     = 72 * time.Hour
	window7d      = 7 * 24 * time.Hour
)

// DefaultHighFrictionKeywords mark tasks that are costly to start.
func DefaultHighFrictionKeywords() []string {
	return []string{"tax", "accounting", "legal"}
}

// DefaultLowFrictionKeywords mark tasks that are quick to start.
func DefaultLowFrictionKeywords() []string {
	return []string{"call", "email"}
}

// Calculator derives the four sub-scores and the composite score for a task.
// Pure given the task fields and the injected clock; every input has a total
// default, so scoring can never fail a read.
type Calculator struct {
	highFriction []string
	lowFriction  []string
	now          func() time.Time
}

// NewCalculator creates a Calculator. Empty keyword lists fall back to the
// defaults; a nil clock falls back to time.Now.
func NewCalculator(highFriction, lowFriction []string, now func() time.Time) *Calculator {
	if len(highFriction) == 0 {
		highFriction = DefaultHighFrictionKeywords()
	}
	if len(lowFriction) == 0 {
		lowFriction = DefaultLowFrictionKeywords()
	}
	if now == nil {
		now = time.Now
	}
	return &Calculator{
		highFriction: lowerAll(highFriction),
		lowFriction:  lowerAll(lowFriction),
		now:          now,
	}
}

// Score computes the full breakdown for one task.
func (c *Calculator) Score(task *store.Task) Breakdown {
	leverage := c.leverage(task)
	urgency := c.urgency(task)
	risk := c.risk(task, urgency.Value)
	friction := c.friction(task)

	return Breakdown{
		Leverage:  leverage,
		Urgency:   urgency,
		Risk:      risk,
		Friction:  friction,
		Composite: leverage.Value + urgency.Value + risk.Value - friction.Value,
	}
}

// ScoreAll annotates a slice of tasks, preserving input order.
func (c *Calculator) ScoreAll(tasks []*store.Task) []ScoredTask {
	scored := make([]ScoredTask, len(tasks))
	for i, t := range tasks {
		scored[i] = ScoredTask{Task: t, Scores: c.Score(t)}
	}
	return scored
}

// leverage passes an explicit value through, otherwise maps priority onto a
// decreasing linear scale: priority 1 -> 5, priority 5 -> 1.
func (c *Calculator) leverage(task *store.Task) SubScore {
	if task.LeverageScore != nil {
		return SubScore{Value: *task.LeverageScore, Reason: "explicit"}
	}
	p := normalizePriority(task.Priority)
	return SubScore{
		Value:    6 - p,
		Inferred: true,
		Reason:   fmt.Sprintf("from priority %d", p),
	}
}

// urgency passes an explicit value through, otherwise buckets time-to-due
// against the clock, falling back to the task bucket when no due date is set.
func (c *Calculator) urgency(task *store.Task) SubScore {
	if task.UrgencyScore != nil {
		return SubScore{Value: *task.UrgencyScore, Reason: "explicit"}
	}
	if task.DueDate != nil {
		until := task.DueDate.Sub(c.now())
		switch {
		case until < windowOverdue:
			return SubScore{Value: 5, Inferred: true, Reason: "overdue"}
		case until <= window24h:
			return SubScore{Value: 4, Inferred: true, Reason: "due within 24h"}
		case until <= window72h:
			return SubScore{Value: 3, Inferred: true, Reason: "due within 72h"}
		case until <= window7d:
			return SubScore{Value: 2, Inferred: true, Reason: "due within 7d"}
		default:
			return SubScore{Value: 1, Inferred: true, Reason: "due beyond 7d"}
		}
	}
	switch task.Bucket {
	case store.BucketToday:
		return SubScore{Value: 3, Inferred: true, Reason: "bucket today"}
	case store.BucketThisWeek:
		return SubScore{Value: 2, Inferred: true, Reason: "bucket this_week"}
	default:
		return SubScore{Value: 1, Inferred: true, Reason: "no due date"}
	}
}

// risk passes an explicit value through, otherwise tracks the urgency value.
// Inferred risk follows time pressure, not task content.
func (c *Calculator) risk(task *store.Task, urgency int) SubScore {
	if task.RiskScore != nil {
		return SubScore{Value: *task.RiskScore, Reason: "explicit"}
	}
	switch {
	case urgency >= 4:
		return SubScore{Value: 4, Inferred: true, Reason: "tracks high urgency"}
	case urgency == 3:
		return SubScore{Value: 3, Inferred: true, Reason: "tracks moderate urgency"}
	default:
		return SubScore{Value: 2, Inferred: true, Reason: "tracks low urgency"}
	}
}

// friction passes an explicit value through, otherwise inspects the
// description for keyword matches. High-friction keywords are checked first,
// so "tax call" scores 3, not 1.
func (c *Calculator) friction(task *store.Task) SubScore {
	if task.FrictionScore != nil {
		return SubScore{Value: *task.FrictionScore, Reason: "explicit"}
	}
	desc := strings.ToLower(task.Description)
	for _, kw := range c.highFriction {
		if strings.Contains(desc, kw) {
			return SubScore{Value: 3, Inferred: true, Reason: "keyword: " + kw}
		}
	}
	for _, kw := range c.lowFriction {
		if strings.Contains(desc, kw) {
			return SubScore{Value: 1, Inferred: true, Reason: "keyword: " + kw}
		}
	}
	return SubScore{Value: 2, Inferred: true, Reason: "no keyword match"}
}

// normalizePriority applies the default-3 and [1,5] clamp policy. Zero means
// the caller never set a priority.
func normalizePriority(p int) int {
	if p == 0 {
		return 3
	}
	if p < 1 {
		return 1
	}
	if p > 5 {
		return 5
	}
	return p
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
