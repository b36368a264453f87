package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/portal"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/service"
)

// PortalHandler handles customer portal HTTP requests: the permanent portal
// view plus sealed, expiring share links.
type PortalHandler struct {
	productService *service.ProductService
	sealer         *portal.TokenSealer
}

// NewPortalHandler creates a new PortalHandler
func NewPortalHandler(productService *service.ProductService, sealer *portal.TokenSealer) *PortalHandler {
	return &PortalHandler{
		productService: productService,
		sealer:         sealer,
	}
}

// View resolves a permanent portal ID to its read-only product snapshot
func (h *PortalHandler) View(w http.ResponseWriter, r *http.Request) {
	view, err := h.productService.ResolvePortal(chi.URLParam(r, "portalId"))
	if err != nil {
		respondServiceError(w, err, "failed to resolve portal")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// ShareLinkResponse represents a minted share link
type ShareLinkResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CreateShareLink mints a sealed, expiring token for a product's portal
func (h *PortalHandler) CreateShareLink(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.GetProduct(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve product")
		return
	}

	token, err := h.sealer.Seal(product.PortalID)
	if err != nil {
		respondServiceError(w, err, "failed to mint share link")
		return
	}

	respondJSON(w, http.StatusCreated, ShareLinkResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.sealer.TTL()),
	})
}

// ViewShared resolves a sealed share token to the portal snapshot
func (h *PortalHandler) ViewShared(w http.ResponseWriter, r *http.Request) {
	portalID, err := h.sealer.Open(chi.URLParam(r, "token"))
	if err != nil {
		respondServiceError(w, err, "failed to open share token")
		return
	}

	view, err := h.productService.ResolvePortal(portalID)
	if err != nil {
		respondServiceError(w, err, "failed to resolve portal")
		return
	}
	respondJSON(w, http.StatusOK, view)
}
