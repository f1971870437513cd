package rubric

import (
	"fmt"
	"sort"
)

// Criterion is one graded dimension of a response. Options are kept in
// ascending point order; TotalValue is the points of the best option.
type Criterion struct {
	Name         string   `json:"name"`
	Instructions string   `json:"instructions"`
	TotalValue   int      `json:"total_value"`
	Options      []Option `json:"options"`
}

type Option struct {
	Points      int    `json:"points"`
	Label       string `json:"label"`
	Explanation string `json:"explanation"`
}

// Normalize sorts each criterion's options ascending by point value.
// Sorting is stable so equal-point options keep document order.
func Normalize(criteria []Criterion) {
	for i := range criteria {
		sort.SliceStable(criteria[i].Options, func(a, b int) bool {
			return criteria[i].Options[a].Points < criteria[i].Options[b].Points
		})
	}
}

// Validate checks structural sanity: non-empty names, non-negative option
// points. TotalValue matching the max option is not enforced.
func Validate(criteria []Criterion) error {
	for _, c := range criteria {
		if c.Name == "" {
			return fmt.Errorf("rubric: criterion with empty name")
		}
		for _, o := range c.Options {
			if o.Points < 0 {
				return fmt.Errorf("rubric: criterion %q option %q has negative points", c.Name, o.Label)
			}
			if o.Label == "" {
				return fmt.Errorf("rubric: criterion %q has option with empty label", c.Name)
			}
		}
	}
	return nil
}

// OptionFor returns the option of criterion name worth exactly points.
func OptionFor(criteria []Criterion, name string, points int) (Option, bool) {
	for _, c := range criteria {
		if c.Name != name {
			continue
		}
		for _, o := range c.Options {
			if o.Points == points {
				return o, true
			}
		}
	}
	return Option{}, false
}

// MaxPoints sums the highest option value of every criterion.
func MaxPoints(criteria []Criterion) int {
	total := 0
	for _, c := range criteria {
		max := 0
		for _, o := range c.Options {
			if o.Points > max {
				max = o.Points
			}
		}
		total += max
	}
	return total
}
