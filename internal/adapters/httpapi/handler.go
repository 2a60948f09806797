package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"corkboard-listing-service/internal/domain/listing"
	"corkboard-listing-service/internal/domain/shared"
	"corkboard-listing-service/internal/ports/inbound"
	"corkboard-listing-service/internal/query"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Handler exposes the listing service over HTTP
type Handler struct {
	service inbound.ListingService
	logger  zerolog.Logger
}

func NewHandler(service inbound.ListingService, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With().Str("component", "http_handler").Logger(),
	}
}

// GET /api/listings?status=...&category=...&search=...&owner=...&page_token=...&page_size=...
func (h *Handler) List(c *gin.Context) {
	req := inbound.ListRequest{
		Filters:   filtersFromQuery(c),
		PageToken: c.Query("page_token"),
	}
	if v := c.Query("page_size"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			req.PageSize = size
		}
	}

	page, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GET /api/listings/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	l, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

// POST /api/listings
func (h *Handler) Create(c *gin.Context) {
	var req inbound.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	l, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, l)
}

// PATCH /api/listings/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	var req inbound.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	l, err := h.service.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

// DELETE /api/listings/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// POST /api/listings/:id/status
func (h *Handler) Transition(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	l, err := h.service.Transition(c.Request.Context(), actorFrom(c), id, listing.Status(body.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

// POST /api/listings/:id/attachments (multipart)
func (h *Handler) AddAttachment(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer file.Close()

	a, err := h.service.AddAttachment(c.Request.Context(), actorFrom(c), id, inbound.AttachmentUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

// GET /api/listings/:id/attachments
func (h *Handler) Attachments(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	attachments, err := h.service.Attachments(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if attachments == nil {
		attachments = []*listing.Attachment{}
	}

	c.JSON(http.StatusOK, attachments)
}

// GET /api/my/listings
func (h *Handler) MyListings(c *gin.Context) {
	actor := actorFrom(c)

	filters := filtersFromQuery(c)
	filters[query.KeyOwner] = actor.ID.String()

	page, err := h.service.List(c.Request.Context(), inbound.ListRequest{
		Filters:   filters,
		PageToken: c.Query("page_token"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GET /api/admin/listings/:id — resolves soft-deleted listings too
func (h *Handler) AdminGet(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	l, err := h.service.GetAny(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

// GET /api/admin/listings — includes soft-deleted listings
func (h *Handler) AdminList(c *gin.Context) {
	req := inbound.ListRequest{
		Filters:         filtersFromQuery(c),
		PageToken:       c.Query("page_token"),
		IncludeInactive: true,
	}
	if v := c.Query("page_size"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			req.PageSize = size
		}
	}

	page, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func filtersFromQuery(c *gin.Context) map[string]string {
	filters := map[string]string{}
	for _, key := range []string{query.KeyStatus, query.KeyCategory, query.KeySearch, query.KeyOwner} {
		if v := c.Query(key); v != "" {
			filters[key] = v
		}
	}
	return filters
}

func (h *Handler) listingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps the domain error taxonomy onto HTTP statuses.
func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *shared.ValidationError
	var terr *shared.InvalidTransitionError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.As(err, &terr):
		c.JSON(http.StatusConflict, gin.H{"error": terr.Error()})
	case errors.Is(err, shared.ErrSlugExhausted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, shared.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, shared.ErrListingNotFound), errors.Is(err, shared.ErrAttachmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
