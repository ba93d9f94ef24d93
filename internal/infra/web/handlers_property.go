// File: internal/infra/web/handlers_property.go
package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"rental-marketplace/internal/domain"
	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/domain/ports/repository"
	"rental-marketplace/internal/infra/metrics"
)

type contactRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
}

type propertyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`

	PropertyType string `json:"property_type"`
	PropertyFor  string `json:"property_for"`

	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Locality string `json:"locality"`
	Landmark string `json:"landmark"`

	Bedrooms    int    `json:"bedrooms"`
	Bathrooms   int    `json:"bathrooms"`
	BuiltUpArea int    `json:"built_up_area"`
	AreaUnit    string `json:"area_unit"`

	Price             int64  `json:"price"`
	PriceType         string `json:"price_type"`
	SecurityDeposit   int64  `json:"security_deposit"`
	MaintenanceCharge int64  `json:"maintenance_charge"`

	FurnishingStatus string     `json:"furnishing_status"`
	AvailableFrom    *time.Time `json:"available_from"`
	PreferredTenant  string     `json:"preferred_tenant"`

	Contact   contactRequest `json:"contact"`
	Amenities []string       `json:"amenities"`
}

func (req *propertyRequest) toModel() *model.Property {
	return &model.Property{
		Title:             req.Title,
		Description:       req.Description,
		PropertyType:      req.PropertyType,
		PropertyFor:       req.PropertyFor,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		Pincode:           req.Pincode,
		Locality:          req.Locality,
		Landmark:          req.Landmark,
		Bedrooms:          req.Bedrooms,
		Bathrooms:         req.Bathrooms,
		BuiltUpArea:       req.BuiltUpArea,
		AreaUnit:          req.AreaUnit,
		Price:             req.Price,
		PriceType:         req.PriceType,
		SecurityDeposit:   req.SecurityDeposit,
		MaintenanceCharge: req.MaintenanceCharge,
		FurnishingStatus:  req.FurnishingStatus,
		AvailableFrom:     req.AvailableFrom,
		PreferredTenant:   req.PreferredTenant,
		Contact: model.ContactDetails{
			Name:     req.Contact.Name,
			Phone:    req.Contact.Phone,
			Email:    req.Contact.Email,
			WhatsApp: req.Contact.WhatsApp,
		},
		Amenities: req.Amenities,
	}
}

type propertyImageResponse struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

type propertyResponse struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	OwnerID     int64  `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	PropertyType string `json:"property_type"`
	PropertyFor  string `json:"property_for"`

	Address  string `json:"address,omitempty"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	Pincode  string `json:"pincode,omitempty"`
	Locality string `json:"locality,omitempty"`
	Landmark string `json:"landmark,omitempty"`

	Bedrooms    int    `json:"bedrooms"`
	Bathrooms   int    `json:"bathrooms"`
	BuiltUpArea int    `json:"built_up_area,omitempty"`
	AreaUnit    string `json:"area_unit,omitempty"`

	Price             int64  `json:"price"`
	Currency          string `json:"currency"`
	PriceType         string `json:"price_type"`
	SecurityDeposit   int64  `json:"security_deposit,omitempty"`
	MaintenanceCharge int64  `json:"maintenance_charge,omitempty"`

	FurnishingStatus string     `json:"furnishing_status,omitempty"`
	AvailableFrom    *time.Time `json:"available_from,omitempty"`
	PreferredTenant  string     `json:"preferred_tenant,omitempty"`

	Amenities []string                `json:"amenities,omitempty"`
	Images    []propertyImageResponse `json:"images"`

	Status     string    `json:"status"`
	IsActive   bool      `json:"is_active"`
	IsFeatured bool      `json:"is_featured"`
	Views      int64     `json:"views"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toPropertyResponse(p *model.Property) propertyResponse {
	images := make([]propertyImageResponse, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, propertyImageResponse{
			ID:        img.ID,
			URL:       img.URL,
			Caption:   img.Caption,
			IsPrimary: img.IsPrimary,
		})
	}
	return propertyResponse{
		ID:                p.ID,
		Code:              p.Code,
		OwnerID:           p.OwnerID,
		Title:             p.Title,
		Description:       p.Description,
		PropertyType:      p.PropertyType,
		PropertyFor:       p.PropertyFor,
		Address:           p.Address,
		City:              p.City,
		State:             p.State,
		Pincode:           p.Pincode,
		Locality:          p.Locality,
		Landmark:          p.Landmark,
		Bedrooms:          p.Bedrooms,
		Bathrooms:         p.Bathrooms,
		BuiltUpArea:       p.BuiltUpArea,
		AreaUnit:          p.AreaUnit,
		Price:             p.Price,
		Currency:          p.Currency,
		PriceType:         p.PriceType,
		SecurityDeposit:   p.SecurityDeposit,
		MaintenanceCharge: p.MaintenanceCharge,
		FurnishingStatus:  p.FurnishingStatus,
		AvailableFrom:     p.AvailableFrom,
		PreferredTenant:   p.PreferredTenant,
		Amenities:         p.Amenities,
		Images:            images,
		Status:            string(p.Status),
		IsActive:          p.IsActive,
		IsFeatured:        p.IsFeatured,
		Views:             p.Views,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func pathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidArgument
	}
	return id, nil
}

func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.PropertyFilter{
		City:             q.Get("city"),
		PropertyType:     q.Get("property_type"),
		PropertyFor:      q.Get("property_for"),
		FurnishingStatus: q.Get("furnishing_status"),
		Query:            q.Get("q"),
	}
	f.Bedrooms, _ = strconv.Atoi(q.Get("bedrooms"))
	f.MinPrice, _ = strconv.ParseInt(q.Get("min_price"), 10, 64)
	f.MaxPrice, _ = strconv.ParseInt(q.Get("max_price"), 10, 64)
	f.FeaturedOnly = q.Get("featured") == "true"
	f.Limit, _ = strconv.Atoi(q.Get("limit"))
	f.Offset, _ = strconv.Atoi(q.Get("offset"))

	items, total, err := s.propertyUC.List(r.Context(), f)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]propertyResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPropertyResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"properties": out, "total": total})
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// Viewer is nil on unauthenticated reads; owners get their own drafts back.
	var viewer *model.User
	if claims, err := s.auth.ParseFromRequest(r); err == nil {
		viewer = &model.User{ID: claims.UserID, UserType: model.UserType(claims.UserType)}
	}
	p, err := s.propertyUC.Get(r.Context(), id, viewer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPropertyResponse(p))
}

func (s *Server) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	var req propertyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	p, err := s.propertyUC.Create(r.Context(), claims.UserID, req.toModel())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPropertyResponse(p))
}

func (s *Server) handleMyProperties(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	items, err := s.propertyUC.ListMine(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]propertyResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPropertyResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"properties": out})
}

func (s *Server) handleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req propertyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	p := req.toModel()
	p.ID = id

	updated, err := s.propertyUC.Update(r.Context(), actorFrom(r.Context()), p)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPropertyResponse(updated))
}

func (s *Server) handleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.propertyUC.Delete(r.Context(), actorFrom(r.Context()), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

const maxImageUpload = 10 << 20

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	img, err := s.propertyUC.UploadImage(r.Context(), actorFrom(r.Context()), id,
		file, header.Filename, header.Header.Get("Content-Type"),
		r.FormValue("caption"), r.FormValue("primary") == "true")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, propertyImageResponse{
		ID:        img.ID,
		URL:       img.URL,
		Caption:   img.Caption,
		IsPrimary: img.IsPrimary,
	})
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	imageID, err := pathID(r, "imageID")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.propertyUC.RemoveImage(r.Context(), actorFrom(r.Context()), id, imageID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleUnlockContact spends one credit for the listing's contact details.
func (s *Server) handleUnlockContact(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, err)
		return
	}

	res, err := s.creditUC.ConsumeCredit(r.Context(), claims.UserID, id)
	if err != nil {
		metrics.IncConsumptions(consumeResultLabel(err))
		writeDomainError(w, err)
		return
	}
	if res.Charged {
		metrics.IncConsumptions("charged")
		metrics.IncCreditsConsumed()
	} else {
		metrics.IncConsumptions("free_repeat")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"contact": map[string]string{
			"name":     res.Contact.Name,
			"phone":    res.Contact.Phone,
			"email":    res.Contact.Email,
			"whatsapp": res.Contact.WhatsApp,
		},
		"balance":         res.Balance,
		"credit_expiry":   res.CreditExpiry,
		"first_time_view": res.FirstTimeView,
		"charged":         res.Charged,
	})
}

func consumeResultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientCredits):
		return "insufficient"
	case errors.Is(err, domain.ErrCreditsExpired):
		return "expired"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func (s *Server) handleModerateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.propertyUC.Moderate(r.Context(), id, model.PropertyStatus(req.Status), req.Reason); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
