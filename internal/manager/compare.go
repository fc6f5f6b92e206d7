package manager

import (
	"gestured/internal/imaging"
	"gestured/pkg/types"
)

// Comparator runs the same image through several models.
type Comparator struct {
	p *Predictor
}

// NewComparator wraps a predictor.
func NewComparator(p *Predictor) *Comparator { return &Comparator{p: p} }

// Compare calls Predict once per name, in the given order. Duplicates each
// get their own entry. Each entry carries its own Success flag, so one
// failing model never hides the others. An empty list is a valid, empty
// comparison.
func (c *Comparator) Compare(img imaging.Image, models []string, threshold float64) types.ComparisonResult {
	res := types.ComparisonResult{
		Status:         "success",
		Predictions:    make([]types.PredictionResult, 0, len(models)),
		ComparedModels: make([]string, 0, len(models)),
	}
	for _, name := range models {
		res.Predictions = append(res.Predictions, c.p.Predict(img, name, threshold))
		res.ComparedModels = append(res.ComparedModels, name)
	}
	c.p.publisher.Publish(Event{Name: "comparison", Fields: map[string]any{"models": len(models)}})
	return res
}
