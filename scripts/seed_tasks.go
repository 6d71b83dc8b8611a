// seed_tasks.go parses a TODO.md checklist and seeds tasks via the Triage API.
//
// Usage:
//
//	go run scripts/seed_tasks.go -todo /path/to/TODO.md -api http://localhost:8700 -user seed
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
)

type taskPayload struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Area        string `json:"area,omitempty"`
	Status      string `json:"status,omitempty"`
	Bucket      string `json:"bucket,omitempty"`
	Priority    int    `json:"priority,omitempty"`
}

// Inline markers: !1..!5 sets priority, @today/@this_week/@later/@backlog sets bucket.
var bucketMarkers = []string{"today", "this_week", "later", "backlog"}

func main() {
	todoPath := flag.String("todo", "TODO.md", "path to TODO.md file")
	apiURL := flag.String("api", "http://localhost:8700", "Triage API base URL")
	userID := flag.String("user", "seed", "X-User-ID header value")
	dryRun := flag.Bool("dry-run", false, "print tasks without posting")
	flag.Parse()

	f, err := os.Open(*todoPath)
	if err != nil {
		log.Fatalf("open %s: %v", *todoPath, err)
	}
	defer f.Close()

	var tasks []taskPayload
	var currentArea string
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := scanner.Text()

		// Section headers become areas
		if strings.HasPrefix(line, "## ") || strings.HasPrefix(line, "# ") {
			currentArea = strings.ToLower(strings.TrimSpace(strings.TrimLeft(line, "# ")))
			continue
		}

		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "- [") {
			continue
		}

		isDone := strings.HasPrefix(trimmed, "- [x]") || strings.HasPrefix(trimmed, "- [X]")
		text := trimmed
		if isDone {
			text = strings.TrimPrefix(text, "- [x] ")
			text = strings.TrimPrefix(text, "- [X] ")
		} else {
			text = strings.TrimPrefix(text, "- [ ] ")
		}

		task := taskPayload{Area: currentArea}
		if isDone {
			task.Status = "done"
		}

		// Priority marker
		for p := 1; p <= 5; p++ {
			marker := fmt.Sprintf("!%d", p)
			if strings.Contains(text, marker) {
				task.Priority = p
				text = strings.TrimSpace(strings.ReplaceAll(text, marker, ""))
				break
			}
		}

		// Bucket marker
		for _, b := range bucketMarkers {
			marker := "@" + b
			if strings.Contains(text, marker) {
				task.Bucket = b
				text = strings.TrimSpace(strings.ReplaceAll(text, marker, ""))
				break
			}
		}

		task.Title = text
		if task.Title == "" {
			continue
		}
		tasks = append(tasks, task)
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("scan %s: %v", *todoPath, err)
	}

	log.Printf("parsed %d tasks from %s", len(tasks), *todoPath)

	if *dryRun {
		for _, t := range tasks {
			fmt.Printf("%+v\n", t)
		}
		return
	}

	client := &http.Client{}
	created := 0
	for _, t := range tasks {
		body, _ := json.Marshal(t)
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/tasks", bytes.NewReader(body))
		if err != nil {
			log.Fatalf("build request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", *userID)

		resp, err := client.Do(req)
		if err != nil {
			log.Fatalf("post task %q: %v", t.Title, err)
		}
		if resp.StatusCode != http.StatusCreated {
			log.Printf("task %q: unexpected status %d", t.Title, resp.StatusCode)
		} else {
			created++
		}
		resp.Body.Close()
	}

	log.Printf("created %d/%d tasks", created, len(tasks))
}
