package hermes

type TaskCreatedEvent struct {
	TaskID   string `json:"task_id"`
	Title    string `json:"title"`
	Bucket   string `json:"bucket"`
	Priority int    `json:"priority"`
	Source   string `json:"source,omitempty"`
}

type TaskUpdatedEvent struct {
	TaskID string   `json:"task_id"`
	Fields []string `json:"fields,omitempty"`
}

type TaskCompletedEvent struct {
	TaskID string `json:"task_id"`
}

type TaskDeletedEvent struct {
	TaskID string `json:"task_id"`
}

type BrainDumpIngestedEvent struct {
	Count   int      `json:"count"`
	TaskIDs []string `json:"task_ids"`
}
