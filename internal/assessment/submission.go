package assessment

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/openassess/openassess/internal/rubric"
	"github.com/openassess/openassess/internal/submissions"
)

// CapabilitySubmission is always composed onto a block; the peer and self
// capabilities are reachable only when their stage is configured.
const CapabilitySubmission = "submission"

var validate = validator.New()

func init() {
	Register(CapabilitySubmission, NewSubmissionMixin)
}

type submitRequest struct {
	Submission string `json:"submission" validate:"required"`
}

// NewSubmissionMixin exposes the submit-response operation.
func NewSubmissionMixin(api submissions.API) Capability {
	return Capability{
		Name: CapabilitySubmission,
		Handlers: map[string]HandlerFunc{
			"submit": func(ctx context.Context, env Env, payload json.RawMessage) (Result, error) {
				var req submitRequest
				if err := json.Unmarshal(payload, &req); err != nil {
					return reject("could not read your response; please try again"), nil
				}
				if err := validate.Struct(req); err != nil {
					return reject("a response is required"), nil
				}
				sub, err := api.Create(ctx, env.Item, req.Submission)
				if err != nil {
					return Result{}, err
				}
				return Result{Accepted: true, Data: map[string]any{
					"submission_uuid": sub.UUID,
					"attempt_number":  sub.Attempt,
				}}, nil
			},
		},
	}
}

func optionFor(env Env, criterion string, points int) (rubric.Option, bool) {
	return rubric.OptionFor(env.Criteria, criterion, points)
}

func itoa(n int) string { return strconv.Itoa(n) }
