package assessment

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/openassess/openassess/internal/submissions"
)

func init() {
	Register(KindPeer, NewPeerMixin)
}

type peerAssessRequest struct {
	SubmissionUUID  string         `json:"submission_uuid" validate:"required,uuid4"`
	OptionsSelected map[string]int `json:"options_selected" validate:"required,min=1"`
	Feedback        string         `json:"feedback"`
}

// NewPeerMixin exposes the submit-peer-assessment operation. A learner may
// not assess their own submission, and every awarded score must match a
// rubric option.
func NewPeerMixin(api submissions.API) Capability {
	return Capability{
		Name: KindPeer,
		Handlers: map[string]HandlerFunc{
			"assess": func(ctx context.Context, env Env, payload json.RawMessage) (Result, error) {
				var req peerAssessRequest
				if err := json.Unmarshal(payload, &req); err != nil {
					return reject("could not read your assessment; please try again"), nil
				}
				if err := validate.Struct(req); err != nil {
					return reject("submission_uuid and options_selected are required"), nil
				}
				sub, err := api.Get(ctx, req.SubmissionUUID)
				if errors.Is(err, submissions.ErrNotFound) {
					return reject("that submission no longer exists"), nil
				}
				if err != nil {
					return Result{}, err
				}
				if sub.Item.StudentID == env.Item.StudentID {
					return reject("you may not peer-assess your own response"), nil
				}
				if verr := validatePoints(env, req.OptionsSelected); verr != nil {
					return reject(verr.Reason), nil
				}
				a, err := api.CreateAssessment(ctx, submissions.Assessment{
					SubmissionUUID: req.SubmissionUUID,
					ScorerID:       env.Item.StudentID,
					Kind:           submissions.KindPeer,
					PointsEarned:   req.OptionsSelected,
					Feedback:       req.Feedback,
				})
				if err != nil {
					return Result{}, err
				}
				graded, err := api.CountByScorer(ctx, env.Item.StudentID, submissions.KindPeer)
				if err != nil {
					return Result{}, err
				}
				return Result{Accepted: true, Data: map[string]any{
					"assessment_uuid": a.UUID,
					"graded":          graded,
					"must_grade":      env.Stage.MustGrade,
				}}, nil
			},
		},
	}
}
