package trainer

import (
	"time"

	"github.com/gabe-silva/poker-analyzer/internal/ev"
	"github.com/gabe-silva/poker-analyzer/internal/store"
)

type EvaluateRequest struct {
	ScenarioID       string      `json:"scenario_id"`
	Decision         ev.Decision `json:"decision"`
	FreeResponseText string      `json:"free_response_text"`
	Trials           int         `json:"trials"`
}

type EvaluateResponse struct {
	AttemptID string               `json:"attempt_id"`
	Result    *ev.EvaluationResult `json:"result"`
}

type ProgressResponse struct {
	Dimension string                 `json:"dimension"`
	Buckets   []store.ProgressBucket `json:"buckets"`
}

type AttemptItem struct {
	AttemptID    string    `json:"attempt_id"`
	ScenarioID   string    `json:"scenario_id"`
	CreatedAt    time.Time `json:"created_at"`
	HeroPosition string    `json:"hero_position"`
	Street       string    `json:"street"`
	NodeType     string    `json:"node_type"`
	EVLossBB     float64   `json:"ev_loss_bb"`
	Verdict      string    `json:"verdict"`
	FreeResponse string    `json:"free_response_text,omitempty"`
}

type AttemptsResponse struct {
	Items []AttemptItem `json:"items"`
}
