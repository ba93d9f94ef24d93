// File: internal/infra/web/handlers_auth.go
package web

import (
	"net/http"
	"time"

	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/usecase"
)

type userResponse struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	UserType          string     `json:"user_type"`
	Occupation        string     `json:"occupation,omitempty"`
	PreferredLocation string     `json:"preferred_location,omitempty"`
	Budget            int64      `json:"budget,omitempty"`
	CompanyName       string     `json:"company_name,omitempty"`
	Credits           int64      `json:"credits"`
	CreditExpiry      *time.Time `json:"credit_expiry,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Phone:             u.Phone,
		UserType:          string(u.UserType),
		Occupation:        u.Occupation,
		PreferredLocation: u.PreferredLocation,
		Budget:            u.Budget,
		CompanyName:       u.CompanyName,
		Credits:           u.EffectiveCredits(time.Now()),
		CreditExpiry:      u.CreditExpiry,
		CreatedAt:         u.CreatedAt,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
		UserType string `json:"user_type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	if req.UserType == "" {
		req.UserType = string(model.UserTypeTenant)
	}

	usr, err := s.userUC.Register(r.Context(), req.Name, req.Email, req.Phone, req.Password, model.UserType(req.UserType))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	token, err := s.auth.Mint(usr)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  toUserResponse(usr),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	usr, err := s.userUC.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	token, err := s.auth.Mint(usr)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserResponse(usr),
	})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"identifier"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.userUC.RequestPasswordReset(r.Context(), req.Identifier); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier  string `json:"identifier"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.userUC.ResetPassword(r.Context(), req.Identifier, req.Code, req.NewPassword); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	usr, err := s.userUC.Profile(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(usr))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	var req struct {
		Name              *string `json:"name"`
		Occupation        *string `json:"occupation"`
		PreferredLocation *string `json:"preferred_location"`
		Budget            *int64  `json:"budget"`
		CompanyName       *string `json:"company_name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	usr, err := s.userUC.UpdateProfile(r.Context(), claims.UserID, usecase.ProfileUpdate{
		Name:              req.Name,
		Occupation:        req.Occupation,
		PreferredLocation: req.PreferredLocation,
		Budget:            req.Budget,
		CompanyName:       req.CompanyName,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(usr))
}
