package workflow

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/assessor/internal/document"
	"github.com/JaimeStill/assessor/internal/oracle"
	"github.com/JaimeStill/assessor/internal/phase"
	"github.com/JaimeStill/assessor/internal/prompts"
)

type phaseFinding struct {
	RelevantContent string   `json:"relevant_content"`
	KeyPoints       []string `json:"key_points"`
	ConfidenceScore *float64 `json:"confidence_score"`
}

type classifyResponse map[string]phaseFinding

// Validate requires at least one known phase. Confidence ranges are checked
// separately so excerpts survive an out-of-range score.
func (r classifyResponse) Validate() error {
	for key := range r {
		if phase.ID(key).Known() {
			return nil
		}
	}
	return errors.New("response names no known phase")
}

func (r classifyResponse) checkConfidences() error {
	for _, id := range phase.All() {
		f, ok := r[string(id)]
		if !ok || f.ConfidenceScore == nil {
			continue
		}
		c := *f.ConfidenceScore
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 || c > 1 {
			return fmt.Errorf("%s: confidence %v outside [0,1]", id, c)
		}
	}
	return nil
}

// Classification is the classifier's output. Err is set when the oracle
// response could not be used and the relevances are a fallback.
type Classification struct {
	Relevances []PhaseRelevance
	Err        error
}

// Classify estimates per-phase relevance with a single oracle call over the
// document's analysis window. Oracle failures degrade to zero confidence and
// are reported through Classification.Err; only cancellation returns an error.
func Classify(ctx context.Context, rt *Runtime, doc *document.Document) (Classification, error) {
	prompt, err := ComposePrompt(prompts.StageClassify, documentBlock(doc.Window(rt.Config.AnalysisWindow)))
	if err != nil {
		return Classification{}, err
	}

	resp, err := oracle.Query[classifyResponse](ctx, rt.Oracle, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return Classification{}, ctx.Err()
		}
		return Classification{
			Relevances: buildRelevances(nil, false),
			Err:        fmt.Errorf("classify: %w", err),
		}, nil
	}

	if err := resp.checkConfidences(); err != nil {
		return Classification{
			Relevances: buildRelevances(resp, false),
			Err:        fmt.Errorf("classify: %w: %w", oracle.ErrInvalidResponse, err),
		}, nil
	}

	return Classification{Relevances: buildRelevances(resp, true)}, nil
}

// buildRelevances yields one entry per known phase sorted by descending
// confidence, ties in priority order. When trusted is false every confidence
// is zero.
func buildRelevances(resp classifyResponse, trusted bool) []PhaseRelevance {
	ids := phase.All()
	out := make([]PhaseRelevance, 0, len(ids))

	for _, id := range ids {
		r := PhaseRelevance{Phase: id}
		if f, ok := resp[string(id)]; ok {
			r.Excerpt = f.RelevantContent
			r.KeyPoints = f.KeyPoints
			if trusted && f.ConfidenceScore != nil {
				r.Confidence = *f.ConfidenceScore
			}
		}
		out = append(out, r)
	}

	slices.SortStableFunc(out, func(a, b PhaseRelevance) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})

	return out
}

// ClassifyNode returns a state node that runs Classify and stores the
// Classification under KeyClassification.
func ClassifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		doc, err := extractDocument(s)
		if err != nil {
			return s, fmt.Errorf("classify: %w", err)
		}

		c, err := Classify(ctx, rt, doc)
		if err != nil {
			return s, fmt.Errorf("classify: %w", err)
		}

		if c.Err != nil {
			rt.Logger.WarnContext(ctx, "classification fell back to zero confidence", "error", c.Err)
		}

		rt.Logger.InfoContext(
			ctx, "classify node complete",
			"top_phase", c.Relevances[0].Phase,
			"top_confidence", c.Relevances[0].Confidence,
		)

		return s.Set(KeyClassification, c), nil
	})
}

func extractDocument(s state.State) (*document.Document, error) {
	val, ok := s.Get(KeyDocument)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyDocument)
	}

	doc, ok := val.(*document.Document)
	if !ok {
		return nil, fmt.Errorf("%s is not *document.Document", KeyDocument)
	}

	return doc, nil
}

func extractClassification(s state.State) (Classification, error) {
	val, ok := s.Get(KeyClassification)
	if !ok {
		return Classification{}, fmt.Errorf("missing %s in state", KeyClassification)
	}

	c, ok := val.(Classification)
	if !ok {
		return Classification{}, fmt.Errorf("%s is not Classification", KeyClassification)
	}

	return c, nil
}
