package models

// Point is one labeled value in a series.
type Point struct {
	Label string
	Value float64
}

// Series is an ordered list of labeled values.
type Series []Point

// Total sums every value in the series.
func (s Series) Total() float64 {
	var total float64
	for _, p := range s {
		total += p.Value
	}
	return total
}

// Labels returns the point labels in order.
func (s Series) Labels() []string {
	labels := make([]string, len(s))
	for i, p := range s {
		labels[i] = p.Label
	}
	return labels
}

// Values returns the point values in order.
func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// Share is a series point annotated with its percentage of the series total.
type Share struct {
	Label   string
	Value   float64
	Percent float64
}

// NamedSeries is one line in a multi-series chart.
type NamedSeries struct {
	Name   string
	Values []float64
}

// MultiSeries holds several series sharing the same x-axis labels.
type MultiSeries struct {
	Labels []string
	Series []NamedSeries
}

// IsEmpty reports whether there is nothing to plot.
func (m MultiSeries) IsEmpty() bool {
	return len(m.Labels) == 0 || len(m.Series) == 0
}

// CrossTabGroup is one workflow's per-model token breakdown.
type CrossTabGroup struct {
	Workflow string
	Total    float64
	Models   Series
}

// CrossTab is the workflow x model breakdown for the top workflows.
type CrossTab []CrossTabGroup
