package assessment

// ValidationError marks a learner mistake: recoverable, surfaced as a
// rejected Result rather than an HTTP failure.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

// validatePoints checks that every awarded criterion/points pair matches an
// option of the rubric, and that no criterion is left unscored.
func validatePoints(env Env, points map[string]int) *ValidationError {
	for name, pts := range points {
		if _, ok := optionFor(env, name, pts); !ok {
			return &ValidationError{Reason: "no option worth " + itoa(pts) + " points for criterion " + name}
		}
	}
	for _, c := range env.Criteria {
		if _, ok := points[c.Name]; !ok {
			return &ValidationError{Reason: "criterion " + c.Name + " not scored"}
		}
	}
	return nil
}
