// File: internal/infra/web/handlers_misc.go
package web

import (
	"net/http"
	"strconv"
	"time"

	"rental-marketplace/internal/domain/model"
)

type ticketResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toTicketResponse(t *model.SupportTicket) ticketResponse {
	return ticketResponse{
		ID:        t.ID,
		Name:      t.Name,
		Email:     t.Email,
		Phone:     t.Phone,
		Message:   t.Message,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (s *Server) handleSubmitTicket(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	t, err := s.supportUC.Submit(r.Context(), req.Name, req.Email, req.Phone, req.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTicketResponse(t))
}

func (s *Server) handleListTickets(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := s.supportUC.List(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]ticketResponse, 0, len(items))
	for _, t := range items {
		out = append(out, toTicketResponse(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"tickets": out})
}

func (s *Server) handleUpdateTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.supportUC.UpdateStatus(r.Context(), id, model.TicketStatus(req.Status)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

type viewingResponse struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	PropertyType  string     `json:"property_type,omitempty"`
	Location      string     `json:"location,omitempty"`
	PropertyLink  string     `json:"property_link,omitempty"`
	PreferredDate *time.Time `json:"preferred_date,omitempty"`
	PreferredTime string     `json:"preferred_time,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toViewingResponse(v *model.ViewingRequest) viewingResponse {
	return viewingResponse{
		ID:            v.ID,
		Name:          v.Name,
		Phone:         v.Phone,
		PropertyType:  v.PropertyType,
		Location:      v.Location,
		PropertyLink:  v.PropertyLink,
		PreferredDate: v.PreferredDate,
		PreferredTime: v.PreferredTime,
		Status:        string(v.Status),
		CreatedAt:     v.CreatedAt,
	}
}

func (s *Server) handleScheduleViewing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string     `json:"name"`
		Phone         string     `json:"phone"`
		PropertyType  string     `json:"property_type"`
		Location      string     `json:"location"`
		PropertyLink  string     `json:"property_link"`
		PreferredDate *time.Time `json:"preferred_date"`
		PreferredTime string     `json:"preferred_time"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	v, err := s.viewingUC.Schedule(r.Context(), &model.ViewingRequest{
		Name:          req.Name,
		Phone:         req.Phone,
		PropertyType:  req.PropertyType,
		Location:      req.Location,
		PropertyLink:  req.PropertyLink,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toViewingResponse(v))
}

func (s *Server) handleViewingsByPhone(w http.ResponseWriter, r *http.Request) {
	items, err := s.viewingUC.ListByPhone(r.Context(), r.URL.Query().Get("phone"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]viewingResponse, 0, len(items))
	for _, v := range items {
		out = append(out, toViewingResponse(v))
	}
	writeJSON(w, http.StatusOK, map[string]any{"viewings": out})
}

func (s *Server) handleListViewings(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := s.viewingUC.List(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]viewingResponse, 0, len(items))
	for _, v := range items {
		out = append(out, toViewingResponse(v))
	}
	writeJSON(w, http.StatusOK, map[string]any{"viewings": out})
}

func (s *Server) handleUpdateViewing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.viewingUC.UpdateStatus(r.Context(), id, model.ViewingStatus(req.Status)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
