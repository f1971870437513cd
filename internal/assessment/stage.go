package assessment

// Stage kinds recognized in scenario documents.
const (
	KindPeer = "peer-assessment"
	KindSelf = "self-assessment"
)

// StageConfig is one configured phase of the evaluation workflow. Peer-only
// fields are zero for self stages. Start/Due are ISO-8601 strings as stored
// by the host; empty means unset.
type StageConfig struct {
	Name           string `json:"name"`
	Start          string `json:"start_datetime,omitempty"`
	Due            string `json:"due_datetime,omitempty"`
	MustGrade      int    `json:"must_grade,omitempty"`
	MustBeGradedBy int    `json:"must_be_graded_by,omitempty"`
}

// UIModel is the template-facing view of a stage.
type UIModel struct {
	Name           string `json:"name"`
	Title          string `json:"title"`
	Start          string `json:"start_datetime,omitempty"`
	Due            string `json:"due_datetime,omitempty"`
	MustGrade      int    `json:"must_grade,omitempty"`
	MustBeGradedBy int    `json:"must_be_graded_by,omitempty"`
	Template       string `json:"template"`
}

func (s StageConfig) UIModel() UIModel {
	m := UIModel{
		Name:           s.Name,
		Start:          s.Start,
		Due:            s.Due,
		MustGrade:      s.MustGrade,
		MustBeGradedBy: s.MustBeGradedBy,
	}
	switch s.Name {
	case KindPeer:
		m.Title = "Assess Peers' Responses"
		m.Template = "oa_peer_assessment.html"
	case KindSelf:
		m.Title = "Assess Your Response"
		m.Template = "oa_self_assessment.html"
	default:
		m.Title = s.Name
	}
	return m
}
