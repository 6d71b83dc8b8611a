package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Triage/internal/hermes"
	"github.com/MikeSquared-Agency/Triage/internal/scoring"
	"github.com/MikeSquared-Agency/Triage/internal/store"
)

type TasksHandler struct {
	store  store.Store
	hermes hermes.Client
	calc   *scoring.Calculator
}

func NewTasksHandler(s store.Store, h hermes.Client, c *scoring.Calculator) *TasksHandler {
	return &TasksHandler{store: s, hermes: h, calc: c}
}

type CreateTaskRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	Area             string `json:"area,omitempty"`
	Status           string `json:"status,omitempty"`
	Bucket           string `json:"bucket,omitempty"`
	Priority         int    `json:"priority,omitempty"`
	DueDate          string `json:"due_date,omitempty"`
	EstimatedMinutes *int   `json:"estimated_minutes,omitempty"`
	LeverageScore    *int   `json:"leverage_score,omitempty"`
	UrgencyScore     *int   `json:"urgency_score,omitempty"`
	RiskScore        *int   `json:"risk_score,omitempty"`
	FrictionScore    *int   `json:"friction_score,omitempty"`
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title required"})
		return
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	task := &store.Task{
		Title:            title,
		Description:      req.Description,
		Area:             req.Area,
		Status:           normalizeStatus(req.Status),
		Bucket:           normalizeBucket(req.Bucket, store.BucketLater),
		Priority:         clampPriority(req.Priority),
		DueDate:          due,
		EstimatedMinutes: req.EstimatedMinutes,
		LeverageScore:    req.LeverageScore,
		UrgencyScore:     req.UrgencyScore,
		RiskScore:        req.RiskScore,
		FrictionScore:    req.FrictionScore,
		Source:           "manual",
	}

	if err := h.store.CreateTask(r.Context(), task); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.hermes != nil {
		_ = h.hermes.Publish(hermes.SubjectTaskCreated(task.ID.String()), hermes.TaskCreatedEvent{
			TaskID:   task.ID.String(),
			Title:    task.Title,
			Bucket:   string(task.Bucket),
			Priority: task.Priority,
			Source:   task.Source,
		})
	}

	writeJSON(w, http.StatusCreated, h.annotate(task))
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.TaskFilter{
		Area: r.URL.Query().Get("area"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := normalizeStatus(s)
		filter.Status = &status
	}
	if b := r.URL.Query().Get("bucket"); b != "" {
		bucket := normalizeBucket(b, store.BucketLater)
		filter.Bucket = &bucket
	}

	tasks, err := h.store.ListTasks(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var scored []scoring.ScoredTask
	if r.URL.Query().Get("sort") == "score" {
		scored = h.calc.ScoreAll(tasks)
		scoring.RankByScore(scored)
	} else {
		scoring.Rank(tasks)
		scored = h.calc.ScoreAll(tasks)
	}
	if scored == nil {
		scored = []scoring.ScoredTask{}
	}
	writeJSON(w, http.StatusOK, scored)
}

func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.annotate(task))
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	task, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := applyPatch(task, patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.store.UpdateTask(r.Context(), task); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.hermes != nil {
		fields := make([]string, 0, len(patch))
		for k := range patch {
			fields = append(fields, k)
		}
		_ = h.hermes.Publish(hermes.SubjectTaskUpdated(task.ID.String()), hermes.TaskUpdatedEvent{
			TaskID: task.ID.String(),
			Fields: fields,
		})
	}

	writeJSON(w, http.StatusOK, h.annotate(task))
}

func (h *TasksHandler) Complete(w http.ResponseWriter, r *http.Request) {
	task, ok := h.lookup(w, r)
	if !ok {
		return
	}

	task.Status = store.StatusDone

	if err := h.store.UpdateTask(r.Context(), task); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.hermes != nil {
		_ = h.hermes.Publish(hermes.SubjectTaskCompleted(task.ID.String()), hermes.TaskCompletedEvent{
			TaskID: task.ID.String(),
		})
	}

	writeJSON(w, http.StatusOK, h.annotate(task))
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	task, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteTask(r.Context(), task.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.hermes != nil {
		_ = h.hermes.Publish(hermes.SubjectTaskDeleted(task.ID.String()), hermes.TaskDeletedEvent{
			TaskID: task.ID.String(),
		})
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TasksHandler) lookup(w http.ResponseWriter, r *http.Request) (*store.Task, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid task id"})
		return nil, false
	}
	task, err := h.store.GetTask(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	if task == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return nil, false
	}
	return task, true
}

func (h *TasksHandler) annotate(task *store.Task) scoring.ScoredTask {
	return scoring.ScoredTask{Task: task, Scores: h.calc.Score(task)}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
