package block

import (
	"time"

	"github.com/openassess/openassess/internal/assessment"
	"github.com/openassess/openassess/internal/rubric"
)

const DefaultPrompt = `Censorship in the Libraries

'All of us can think of a book that we hope none of our children or any
other children have taken off the shelf. But if I have the right to remove
that book from the shelf -- that work I abhor -- then you also have exactly
the same right and so does everyone else. And then we have no books left on
the shelf for any of us.' --Katherine Paterson, Author

Write a persuasive essay to a newspaper reflecting your views on censorship
in libraries. Do you believe that certain materials, such as books, music,
movies, magazines, etc., should be removed from the shelves if they are
found offensive? Support your position with convincing arguments from your
own experience, observations, and/or reading.`

const DefaultRubricInstructions = "Read for conciseness, clarity of thought, and form."

const DefaultCourseID = "TestCourse"

// DefaultRubricCriteria returns the stock five-criterion writing rubric used
// when a scenario supplies none.
func DefaultRubricCriteria() []rubric.Criterion {
	return []rubric.Criterion{
		{
			Name:         "Ideas",
			Instructions: "Determine if there is a unifying theme or main idea.",
			TotalValue:   5,
			Options: []rubric.Option{
				{Points: 0, Label: "Poor", Explanation: "Difficult for the reader to discern the main idea. Too brief or too repetitive to establish or maintain a focus."},
				{Points: 3, Label: "Fair", Explanation: "Presents a unifying theme or main idea, but may include minor tangents. Stays somewhat focused on topic and task."},
				{Points: 5, Label: "Good", Explanation: "Presents a unifying theme or main idea without going off on tangents. Stays completely focused on topic and task."},
			},
		},
		{
			Name:         "Content",
			Instructions: "Assess the content of the submission",
			TotalValue:   5,
			Options: []rubric.Option{
				{Points: 0, Label: "Poor", Explanation: "Includes little information with few or no details or unrelated details. Unsuccessful in attempts to explore any facets of the topic."},
				{Points: 1, Label: "Fair", Explanation: "Includes little information and few or no details. Explores only one or two facets of the topic."},
				{Points: 3, Label: "Good", Explanation: "Includes sufficient information and supporting details. (Details may not be fully developed; ideas may be listed.) Explores some facets of the topic."},
				{Points: 5, Label: "Excellent", Explanation: "Includes in-depth information and exceptional supporting details that are fully developed. Explores all facets of the topic."},
			},
		},
		{
			Name:         "Organization",
			Instructions: "Determine if the submission is well organized.",
			TotalValue:   2,
			Options: []rubric.Option{
				{Points: 0, Label: "Poor", Explanation: "Ideas organized illogically, transitions weak, and response difficult to follow."},
				{Points: 1, Label: "Fair", Explanation: "Attempts to logically organize ideas. Attempts to progress in an order that enhances meaning, and demonstrates use of transitions."},
				{Points: 2, Label: "Good", Explanation: "Ideas organized logically. Progresses in an order that enhances meaning. Includes smooth transitions."},
			},
		},
		{
			Name:         "Style",
			Instructions: "Read for style.",
			TotalValue:   2,
			Options: []rubric.Option{
				{Points: 0, Label: "Poor", Explanation: "Contains limited vocabulary, with many words used incorrectly. Demonstrates problems with sentence patterns."},
				{Points: 1, Label: "Fair", Explanation: "Contains basic vocabulary, with words that are predictable and common. Contains mostly simple sentences (although there may be an attempt at more varied sentence patterns)."},
				{Points: 2, Label: "Good", Explanation: "Includes vocabulary to make explanations detailed and precise. Includes varied sentence patterns, including complex sentences."},
			},
		},
		{
			Name:         "Voice",
			Instructions: "Read for style.",
			TotalValue:   2,
			Options: []rubric.Option{
				{Points: 0, Label: "Poor", Explanation: "Demonstrates language and tone that may be inappropriate to task and reader."},
				{Points: 1, Label: "Fair", Explanation: "Demonstrates an attempt to adjust language and tone to task and reader."},
				{Points: 2, Label: "Good", Explanation: "Demonstrates effective adjustment of language and tone to task and reader."},
			},
		},
	}
}

// DefaultPeerStage is the single stage configured when a scenario names none:
// grade five peers, be graded by three, open from construction time.
func DefaultPeerStage(now time.Time) assessment.StageConfig {
	return assessment.StageConfig{
		Name:           assessment.KindPeer,
		Start:          now.Format(time.RFC3339),
		MustGrade:      5,
		MustBeGradedBy: 3,
	}
}

func DefaultConfig() Config {
	return Config{
		Prompt:             DefaultPrompt,
		RubricInstructions: DefaultRubricInstructions,
		RubricCriteria:     DefaultRubricCriteria(),
		AssessmentStages:   []assessment.StageConfig{DefaultPeerStage(time.Now())},
		CourseID:           DefaultCourseID,
		Start:              time.Now().Format(time.RFC3339),
	}
}
