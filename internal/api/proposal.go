package api

import (
	"net/http"
	"strings"

	"github.com/alexanderramin/proposal/internal/intelligence"
	"github.com/alexanderramin/proposal/internal/service"
	"github.com/go-chi/chi/v5"
)

type startProposalResponse struct {
	SessionID      string `json:"session_id"`
	Question       string `json:"question"`
	Reason         string `json:"reason"`
	Recommendation string `json:"recommendation"`
}

type continueProposalRequest struct {
	Response *string `json:"response"`
}

type turnResponse struct {
	Question       string `json:"question"`
	Reason         string `json:"reason"`
	Recommendation string `json:"recommendation,omitempty"`
	Done           bool   `json:"done"`
}

type generateRequest struct {
	Style string `json:"style"`
	Tone  string `json:"tone"`
}

type customPromptRequest struct {
	Prompt *string `json:"prompt"`
}

type proposalResponse struct {
	Proposal string `json:"proposal"`
}

// RegisterRoutes registers the intake routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/start_proposal", h.StartProposal)
	r.Post("/continue_proposal/{sessionID}", h.ContinueProposal)
	r.Route("/proposal/{sessionID}", func(r chi.Router) {
		r.Get("/", h.GetProposal)
		r.Post("/generate", h.Generate)
		r.Post("/custom_prompt", h.CustomPrompt)
		r.Get("/latest", h.Latest)
	})
}

// StartProposal creates a session and returns the first question.
func (h *Handler) StartProposal(w http.ResponseWriter, r *http.Request) {
	res, err := h.intake.BeginSession(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, startProposalResponse{
		SessionID:      res.SessionID,
		Question:       res.Turn.Question,
		Reason:         res.Turn.Reason,
		Recommendation: res.Turn.Recommendation,
	})
}

// ContinueProposal records an answer and returns the next question, as
// plain text unless the client accepts JSON.
func (h *Handler) ContinueProposal(w http.ResponseWriter, r *http.Request) {
	var body continueProposalRequest
	if err := decodeBody(r, &body); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Response == nil {
		Error(w, http.StatusUnprocessableEntity, "missing 'response' in request body")
		return
	}

	res, err := h.intake.Answer(r.Context(), chi.URLParam(r, "sessionID"), *body.Response)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if wantsJSON(r) {
		JSON(w, http.StatusOK, turnResponse{
			Question:       res.Turn.Question,
			Reason:         res.Turn.Reason,
			Recommendation: res.Turn.Recommendation,
			Done:           res.Complete,
		})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(intelligence.FormatTurnText(res.Turn)))
}

// GetProposal returns the session's 12 proposal fields.
func (h *Handler) GetProposal(w http.ResponseWriter, r *http.Request) {
	fields, err := h.intake.GetFields(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, fields)
}

// Generate renders and stores the proposal document.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if err := decodeBody(r, &body); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	doc, err := h.intake.Render(r.Context(), chi.URLParam(r, "sessionID"), service.RenderOptions{
		Style: body.Style,
		Tone:  body.Tone,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, proposalResponse{Proposal: doc})
}

// CustomPrompt renders the proposal with a freeform instruction. The result
// is not stored.
func (h *Handler) CustomPrompt(w http.ResponseWriter, r *http.Request) {
	var body customPromptRequest
	if err := decodeBody(r, &body); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Prompt == nil {
		Error(w, http.StatusUnprocessableEntity, "missing 'prompt' in request body")
		return
	}

	doc, err := h.intake.RenderCustom(r.Context(), chi.URLParam(r, "sessionID"), *body.Prompt)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, proposalResponse{Proposal: doc})
}

// Latest returns the most recently stored proposal document.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	doc, err := h.intake.GetLatestDocument(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, proposalResponse{Proposal: doc})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
