package assessment

import (
	"context"
	"encoding/json"

	"github.com/openassess/openassess/internal/submissions"
)

func init() {
	Register(KindSelf, NewSelfMixin)
}

type selfAssessRequest struct {
	OptionsSelected map[string]int `json:"options_selected" validate:"required,min=1"`
}

// NewSelfMixin exposes the submit-self-assessment operation, scored against
// the learner's own latest submission.
func NewSelfMixin(api submissions.API) Capability {
	return Capability{
		Name: KindSelf,
		Handlers: map[string]HandlerFunc{
			"assess": func(ctx context.Context, env Env, payload json.RawMessage) (Result, error) {
				var req selfAssessRequest
				if err := json.Unmarshal(payload, &req); err != nil {
					return reject("could not read your assessment; please try again"), nil
				}
				if err := validate.Struct(req); err != nil {
					return reject("options_selected is required"), nil
				}
				subs, err := api.ListForItem(ctx, env.Item)
				if err != nil {
					return Result{}, err
				}
				if len(subs) == 0 {
					return reject("submit a response before assessing it"), nil
				}
				latest := subs[len(subs)-1]
				if verr := validatePoints(env, req.OptionsSelected); verr != nil {
					return reject(verr.Reason), nil
				}
				a, err := api.CreateAssessment(ctx, submissions.Assessment{
					SubmissionUUID: latest.UUID,
					ScorerID:       env.Item.StudentID,
					Kind:           submissions.KindSelf,
					PointsEarned:   req.OptionsSelected,
				})
				if err != nil {
					return Result{}, err
				}
				return Result{Accepted: true, Data: map[string]any{
					"assessment_uuid": a.UUID,
					"submission_uuid": latest.UUID,
				}}, nil
			},
		},
	}
}
