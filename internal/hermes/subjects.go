package hermes

const (
	SubjectBrainDumpIngested = "triage.braindump.ingested"

	StreamName   = "TRIAGE_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectTaskCreated(taskID string) string   { return "triage.task." + taskID + ".created" }
func SubjectTaskUpdated(taskID string) string   { return "triage.task." + taskID + ".updated" }
func SubjectTaskCompleted(taskID string) string { return "triage.task." + taskID + ".completed" }
func SubjectTaskDeleted(taskID string) string   { return "triage.task." + taskID + ".deleted" }
