package analysis

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jd-backend/internal/shared/server/respond"
)

const failureMessage = "Failed to generate analysis. Please try again with a different job description."

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate", h.generate)
}

type generateRequest struct {
	JDText string `json:"jdText"`
	Mode   string `json:"mode"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "Job description text is required", nil)
		return
	}
	c.Set("analysisMode", req.Mode)

	result, err := h.Svc.Analyze(c.Request.Context(), Request{Text: req.JDText, Mode: req.Mode})
	if err != nil {
		var inputErr *InputError
		switch {
		case errors.As(err, &inputErr):
			// Input problems are caller-fixable and surfaced verbatim.
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "Please provide a valid job description", inputErr.Reasons)
		case errors.Is(err, ErrProviderNotConfigured):
			respond.Error(c, http.StatusInternalServerError, ErrorCodeProviderConfig, "Analysis backend is not configured. Please contact the administrator.", nil)
		default:
			// Provider-side causes stay in the logs; callers get a generic
			// message.
			respond.Error(c, http.StatusBadGateway, Classify(err), failureMessage, nil)
		}
		return
	}

	c.Set("analysisId", result.ID)
	c.Set("analysisSource", result.Source)

	payload := make(map[string]any, len(result.Result)+1)
	for k, v := range result.Result {
		payload[k] = v
	}
	payload["_source"] = result.Source
	respond.JSON(c, http.StatusOK, payload)
}
