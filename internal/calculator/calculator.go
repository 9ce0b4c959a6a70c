package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"renal-calculator/internal/auth"
	"renal-calculator/internal/models"

	"github.com/Knetic/govaluate"
	"github.com/sirupsen/logrus"
)

// Recorder persists calculations for the history view.
type Recorder interface {
	Save(ctx context.Context, c models.Calculation) (int64, error)
}

type CalculateRequest struct {
	Expression string                 `json:"expression"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

type CalculateResponse struct {
	Result string `json:"result"`
}

// CalculateHandler evaluates a free-form arithmetic expression, e.g.
// "weight * 0.6" with {"weight": 70}. The caller must be authenticated.
func CalculateHandler(rec Recorder, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CalculateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		expression, err := govaluate.NewEvaluableExpression(req.Expression)
		if err != nil {
			http.Error(w, "invalid expression", http.StatusBadRequest)
			return
		}
		result, err := expression.Evaluate(req.Parameters)
		if err != nil {
			http.Error(w, "evaluation error", http.StatusBadRequest)
			return
		}
		resp := CalculateResponse{Result: fmt.Sprintf("%v", result)}

		in, _ := json.Marshal(req)
		out, _ := json.Marshal(resp)
		_, err = rec.Save(r.Context(), models.Calculation{
			UserID: userID,
			Kind:   models.KindExpression,
			Input:  string(in),
			Result: string(out),
		})
		if err != nil {
			log.WithError(err).Error("save expression")
			http.Error(w, "failed to save calculation", http.StatusInternalServerError)
			return
		}

		writeJSON(w, log, resp)
	}
}

func writeJSON(w http.ResponseWriter, log logrus.FieldLogger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("encode response")
	}
}

// record saves a dosing calculation for an authenticated caller. Failures
// are logged only; the answer has already been computed.
func record(ctx context.Context, rec Recorder, log logrus.FieldLogger, kind string, in, out any) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return
	}
	inJSON, err := json.Marshal(in)
	if err != nil {
		log.WithError(err).WithField("kind", kind).Error("marshal history input")
		return
	}
	outJSON, err := json.Marshal(out)
	if err != nil {
		log.WithError(err).WithField("kind", kind).Error("marshal history result")
		return
	}
	if _, err := rec.Save(ctx, models.Calculation{
		UserID: userID,
		Kind:   kind,
		Input:  string(inJSON),
		Result: string(outJSON),
	}); err != nil {
		log.WithError(err).WithField("kind", kind).Error("save history")
	}
}

// num maps NaN and ±Inf to nil so they encode as JSON null.
func num(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}
