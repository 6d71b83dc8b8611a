package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Triage/internal/hermes"
	"github.com/MikeSquared-Agency/Triage/internal/oracle"
	"github.com/MikeSquared-Agency/Triage/internal/scoring"
	"github.com/MikeSquared-Agency/Triage/internal/store"
)

type AssistantHandler struct {
	store       store.Store
	oracle      oracle.Client
	hermes      hermes.Client
	calc        *scoring.Calculator
	contextSize int
}

func NewAssistantHandler(s store.Store, o oracle.Client, h hermes.Client, c *scoring.Calculator, contextSize int) *AssistantHandler {
	if contextSize <= 0 {
		contextSize = 10
	}
	return &AssistantHandler{store: s, oracle: o, hermes: h, calc: c, contextSize: contextSize}
}

type BrainDumpRequest struct {
	Text string `json:"text"`
}

// BrainDump parses free text into candidate tasks through the oracle and
// persists them in one transaction. A failed parse or an invalid candidate
// stores nothing.
func (h *AssistantHandler) BrainDump(w http.ResponseWriter, r *http.Request) {
	var req BrainDumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text required"})
		return
	}

	candidates, err := h.oracle.ParseBrainDump(r.Context(), req.Text)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "brain dump parse failed: " + err.Error()})
		return
	}
	if len(candidates) == 0 {
		writeJSON(w, http.StatusOK, []scoring.ScoredTask{})
		return
	}

	tasks := make([]*store.Task, 0, len(candidates))
	for _, c := range candidates {
		task, err := candidateToTask(c)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		tasks = append(tasks, task)
	}

	if err := h.store.CreateTasks(r.Context(), tasks); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.hermes != nil {
		ids := make([]string, len(tasks))
		for i, t := range tasks {
			ids[i] = t.ID.String()
		}
		_ = h.hermes.Publish(hermes.SubjectBrainDumpIngested, hermes.BrainDumpIngestedEvent{
			Count:   len(tasks),
			TaskIDs: ids,
		})
	}

	writeJSON(w, http.StatusCreated, h.calc.ScoreAll(tasks))
}

type AssistantRequest struct {
	Message string `json:"message"`
}

type AssistantResponse struct {
	Reply string `json:"reply"`
}

// Chat answers a prioritization question with the top-scored incomplete
// tasks as context.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req AssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message required"})
		return
	}

	tasks, err := h.store.ListTasks(r.Context(), store.TaskFilter{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	scored := h.calc.ScoreAll(tasks)
	scoring.RankByScore(scored)

	summaries := make([]oracle.TaskSummary, 0, h.contextSize)
	for _, st := range scored {
		if st.Status == store.StatusDone {
			continue
		}
		summary := oracle.TaskSummary{
			Title:          st.Title,
			Status:         string(st.Status),
			Bucket:         string(st.Bucket),
			Priority:       st.Priority,
			CompositeScore: st.Scores.Composite,
		}
		if st.DueDate != nil {
			summary.DueDate = st.DueDate.Format(time.RFC3339)
		}
		summaries = append(summaries, summary)
		if len(summaries) >= h.contextSize {
			break
		}
	}

	reply, err := h.oracle.Prioritize(r.Context(), req.Message, summaries)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "assistant unavailable: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, AssistantResponse{Reply: reply})
}
