package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/go-chi/chi/v5"
)

type sessionResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Status      domain.SessionStatus  `json:"status"`
	Progress    int                   `json:"progress"`
	Fields      domain.ProposalFields `json:"fields"`
	HasDocument bool                  `json:"has_document"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

type messageResponse struct {
	Seq       int64              `json:"seq"`
	Role      domain.MessageRole `json:"role"`
	Message   string             `json:"message"`
	CreatedAt time.Time          `json:"created_at"`
}

type sectionResponse struct {
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// RegisterSessionRoutes registers the session browsing routes.
func (h *Handler) RegisterSessionRoutes(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", h.ListSessions)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Get("/messages", h.ListMessages)
			r.Get("/sections", h.ListSections)
			r.Put("/status", h.UpdateStatus)
		})
	})
}

// ListSessions returns sessions newest first. ?all=true includes archived ones.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	includeArchived, _ := strconv.ParseBool(r.URL.Query().Get("all"))

	sessions, err := h.sessions.List(r.Context(), includeArchived)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	out := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s))
	}
	JSON(w, http.StatusOK, out)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, toSessionResponse(s))
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.sessions.History(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageResponse{Seq: m.Seq, Role: m.Role, Message: m.Text, CreatedAt: m.CreatedAt})
	}
	JSON(w, http.StatusOK, out)
}

func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.sessions.Sections(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	out := make([]sectionResponse, 0, len(sections))
	for _, s := range sections {
		out = append(out, sectionResponse{Name: s.Name, Content: s.Content, UpdatedAt: s.UpdatedAt})
	}
	JSON(w, http.StatusOK, out)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body statusRequest
	if err := decodeBody(r, &body); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id := chi.URLParam(r, "sessionID")
	if err := h.sessions.SetStatus(r.Context(), id, domain.SessionStatus(body.Status)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.GetSession(w, r)
}

func toSessionResponse(s *domain.ProposalSession) sessionResponse {
	return sessionResponse{
		ID:          s.ID,
		Title:       s.Title,
		Status:      s.Status,
		Progress:    s.Progress,
		Fields:      s.Fields,
		HasDocument: s.HasDocument(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
