package api

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/Triage/internal/store"
)

// applyPatch mutates task with any recognized subset of updatable fields.
// An explicit JSON null clears an optional field, including score overrides
// (the calculator then infers that sub-score again). Unknown keys are
// ignored. Unparseable due dates reject the whole patch.
func applyPatch(task *store.Task, patch map[string]interface{}) error {
	for key, val := range patch {
		switch key {
		case "title":
			s, _ := val.(string)
			s = strings.TrimSpace(s)
			if s == "" {
				return fmt.Errorf("title cannot be empty")
			}
			task.Title = s
		case "description":
			task.Description = stringOrEmpty(val)
		case "area":
			task.Area = stringOrEmpty(val)
		case "status":
			s, _ := val.(string)
			task.Status = normalizeStatus(s)
		case "bucket":
			s, _ := val.(string)
			task.Bucket = normalizeBucket(s, store.BucketLater)
		case "priority":
			if n, ok := val.(float64); ok {
				task.Priority = clampPriority(int(n))
			} else {
				task.Priority = 3
			}
		case "due_date":
			if val == nil {
				task.DueDate = nil
				break
			}
			s, _ := val.(string)
			due, err := parseDueDate(s)
			if err != nil {
				return err
			}
			task.DueDate = due
		case "estimated_minutes":
			task.EstimatedMinutes = intPtrOrNil(val)
		case "leverage_score":
			task.LeverageScore = intPtrOrNil(val)
		case "urgency_score":
			task.UrgencyScore = intPtrOrNil(val)
		case "risk_score":
			task.RiskScore = intPtrOrNil(val)
		case "friction_score":
			task.FrictionScore = intPtrOrNil(val)
		}
	}
	return nil
}

func stringOrEmpty(val interface{}) string {
	s, _ := val.(string)
	return s
}

func intPtrOrNil(val interface{}) *int {
	if n, ok := val.(float64); ok {
		i := int(n)
		return &i
	}
	return nil
}
