package analytics

import (
	"fmt"
	"math/rand/v2"

	"github.com/j-veylop/llm-analytics-tui/internal/models"
)

func row(id, ts, workflow, model string, in, out int64, cost float64) models.Row {
	return models.Row{
		ExecutionID:      id,
		Timestamp:        ts,
		WorkflowName:     workflow,
		LLMModel:         model,
		InputTokens:      in,
		CompletionTokens: out,
		TotalCost:        cost,
	}
}

// randomDataset builds a deterministic dataset that mixes valid, invalid and
// missing timestamps, empty workflow and model names, and tools.
func randomDataset(seed uint64, n int) models.Dataset {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	workflows := []string{"ingest", "support", "", "review", "Ingest", "triage"}
	modelNames := []string{"gpt-4", "claude-3", "", "gemini", "llama"}
	tools := []string{"", "search", "browser", "code"}

	d := make(models.Dataset, n)
	for i := range d {
		var ts string
		switch r.IntN(10) {
		case 0:
			ts = "not-a-date"
		case 1:
			ts = ""
		default:
			ts = fmt.Sprintf("2024-%02d-%02d %02d:%02d:00",
				1+r.IntN(3), 1+r.IntN(28), r.IntN(24), r.IntN(60))
		}
		d[i] = models.Row{
			ExecutionID:      fmt.Sprintf("exec-%d", i),
			Timestamp:        ts,
			WorkflowName:     workflows[r.IntN(len(workflows))],
			LLMModel:         modelNames[r.IntN(len(modelNames))],
			InputTokens:      int64(r.IntN(5000)),
			CompletionTokens: int64(r.IntN(2000)),
			TotalCost:        float64(r.IntN(10000)) / 1000,
			UserID:           fmt.Sprintf("9007199254740%03d", r.IntN(1000)),
			Tool:             tools[r.IntN(len(tools))],
		}
	}
	return d
}
