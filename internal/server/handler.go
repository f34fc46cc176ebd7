package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/internal/logging"
)

// EvalFunc evaluates an expression.
type EvalFunc func(string) (float64, error)

var defaultEval EvalFunc = calculator.Eval

// Messages sent to clients for failures that are not evaluation errors.
const (
	msgBadRequest   = "Invalid request body"
	msgTooLarge     = "Request body too large"
	msgServerFailed = "Server calculation error"
)

// CalculationRequest is the body of POST /api/calculate.
type CalculationRequest struct {
	// Expression is a pointer so that null and missing both reach the
	// evaluator as an empty expression.
	Expression *string `json:"expression"`
}

// CalculationResponse is the body of a successful calculation.
type CalculationResponse struct {
	Result float64 `json:"result"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	// Kind is the calculator.ErrorKind for evaluation errors.
	Kind string `json:"kind,omitempty"`
	// Pos is the 1-based position in the expression of an evaluation error.
	Pos int `json:"pos,omitempty"`
}

func (s *Server) calculate(c *gin.Context) {
	log := entry(c, s.logger)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Server.MaxBodyBytes)

	var req CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.WithError(err).Warn("request body too large")
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: msgTooLarge})
			return
		}
		log.WithError(err).Warn("invalid request body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgBadRequest})
		return
	}

	var expr string
	if req.Expression != nil {
		expr = *req.Expression
	}
	log = log.WithField(logging.ExpressionKey, expr)
	log.Debug("received expression")

	r, err := s.eval(expr)
	if err != nil {
		var e *calculator.Error
		if errors.As(err, &e) {
			log.WithField(logging.KindKey, e.Kind.String()).WithError(err).Warn("calculation error")
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: e.Message(),
				Kind:  e.Kind.String(),
				Pos:   e.Pos(),
			})
			return
		}
		log.WithError(err).Error("unexpected calculation error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgServerFailed})
		return
	}

	log.WithField(logging.ResultKey, r).Debug("calculated result")
	c.JSON(http.StatusOK, CalculationResponse{Result: r})
}
