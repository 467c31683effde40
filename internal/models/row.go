// Package models defines data structures and domain types.
package models

// UnknownWorkflow is the display key for rows without a workflow name.
const UnknownWorkflow = "Unknown"

// UnknownModel is the cross-tab key for rows without a model name.
const UnknownModel = "Unknown"

// Row is one usage/cost record. Rows are never mutated after normalization.
type Row struct {
	ExecutionID      string
	Timestamp        string
	WorkflowID       string
	WorkflowName     string
	LLMModel         string
	UserID           string
	Time             string
	Tool             string
	InputTokens      int64
	CompletionTokens int64
	InputPrice       float64
	OutputPrice      float64
	InputCost        float64
	OutputCost       float64
	// TotalCost is taken as given and may differ from InputCost+OutputCost.
	TotalCost float64
}

// TotalTokens returns input plus completion tokens.
func (r Row) TotalTokens() int64 {
	return r.InputTokens + r.CompletionTokens
}

// WorkflowKey returns the workflow name used for grouping.
func (r Row) WorkflowKey() string {
	if r.WorkflowName == "" {
		return UnknownWorkflow
	}
	return r.WorkflowName
}

// Dataset is the ordered collection of rows produced by one load.
type Dataset []Row

// Len returns the number of rows.
func (d Dataset) Len() int { return len(d) }

// TotalTokens sums input+completion tokens over every row.
func (d Dataset) TotalTokens() int64 {
	var total int64
	for _, r := range d {
		total += r.TotalTokens()
	}
	return total
}

// TotalCost sums total_cost over every row.
func (d Dataset) TotalCost() float64 {
	var total float64
	for _, r := range d {
		total += r.TotalCost
	}
	return total
}
