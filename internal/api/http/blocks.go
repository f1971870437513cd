package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	auth "github.com/openassess/openassess/internal/auth/middleware"
	"github.com/openassess/openassess/internal/block"
	"github.com/openassess/openassess/internal/fieldstore"
	"github.com/openassess/openassess/internal/render"
	"github.com/openassess/openassess/internal/scenario"
	"github.com/openassess/openassess/internal/submissions"
)

// Deps bundles what every block handler needs from main.
type Deps struct {
	Fields   fieldstore.Store
	Subs     submissions.API
	Renderer *render.Renderer
}

// childField stores embedded child nodes the parser did not recognize.
const childField = "children"

type embeddedChild struct {
	Tag   string `json:"tag"`
	Inner string `json:"inner,omitempty"`
}

// POST /blocks  (body: scenario XML) -> { "usage_id": ..., "config": ... }
func CreateBlockHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var children []embeddedChild
		cfg, err := scenario.Parse(r.Body, func(n scenario.Node) error {
			children = append(children, embeddedChild{Tag: n.XMLName.Local, Inner: n.Inner})
			return nil
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		usageID := uuid.NewString()
		if err := block.SaveConfig(r.Context(), d.Fields, usageID, cfg); err != nil {
			http.Error(w, "save config: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if len(children) > 0 {
			b, _ := json.Marshal(children)
			if err := d.Fields.Set(r.Context(), usageID, childField, string(b)); err != nil {
				http.Error(w, "save children: "+err.Error(), http.StatusInternalServerError)
				return
			}
			log.Printf("block %s: embedded %d child node(s)", usageID, len(children))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"usage_id": usageID,
			"config":   cfg,
		})
	}
}

// GET /blocks/{usageID}/export  -> scenario XML
func ExportBlockHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := block.LoadConfig(r.Context(), d.Fields, chi.URLParam(r, "usageID"))
		if err != nil {
			http.Error(w, "load config: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		if err := scenario.Encode(w, cfg); err != nil {
			log.Printf("export block: %v", err)
		}
	}
}

// GET /scenarios -> canned workbench scenarios
func ScenariosHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type sc struct {
			Title string `json:"title"`
			XML   string `json:"xml"`
		}
		out := []sc{}
		for _, s := range block.WorkbenchScenarios() {
			out = append(out, sc{Title: s.Title, XML: s.XML})
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

// loadBlock rebuilds the block for this request's learner.
func loadBlock(ctx context.Context, d Deps, usageID, userID string) (*block.Block, error) {
	cfg, err := block.LoadConfig(ctx, d.Fields, usageID)
	if err != nil {
		return nil, err
	}
	return block.New(usageID, userID, cfg, d.Subs, d.Renderer), nil
}

func userIDFrom(r *http.Request) string {
	if c, ok := auth.ClaimsFrom(r.Context()); ok {
		return c.Sub
	}
	return "anonymous"
}
