package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Arthur-so/Decentralized-scientific-journal/internal/journal"
	"github.com/Arthur-so/Decentralized-scientific-journal/internal/models"
)

// callerHeader carries the verified caller identity. Verification itself
// happens upstream (gateway or substrate); the engine only threads the
// identity through each call.
const callerHeader = "X-Caller-Identity"

type Handler struct {
	engine *journal.Engine
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type IdentityRequest struct {
	Identity string `json:"identity" binding:"required"`
}

type SubmitArticleRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Preview  string `json:"preview"`
	Category string `json:"category" binding:"required"`
}

type ReviewRequest struct {
	Decision int `json:"decision" binding:"required"`
}

// Payment carries no binding tag: zero is a legal (mispriced) payment and
// must reach the engine's exact-price check rather than fail binding.
type PurchaseRequest struct {
	Payment uint64 `json:"payment"`
}

func NewHandler(engine *journal.Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) AddEditor(c *gin.Context) {
	h.addRole(c, h.engine.AddEditor)
}

func (h *Handler) AddAuthor(c *gin.Context) {
	h.addRole(c, h.engine.AddAuthor)
}

func (h *Handler) AddReviewer(c *gin.Context) {
	h.addRole(c, h.engine.AddReviewer)
}

func (h *Handler) addRole(c *gin.Context, grant func(ctx context.Context, caller, id models.Identity) error) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req IdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := grant(c.Request.Context(), caller, models.Identity(req.Identity)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) SubmitArticle(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req SubmitArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	id, err := h.engine.SubmitArticle(c.Request.Context(), caller, req.Title, req.Content, req.Preview, req.Category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) GetArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	article, err := h.engine.Article(caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *Handler) DefineReviewer(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := articleID(c)
	if !ok {
		return
	}

	var req IdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.engine.DefineReviewer(c.Request.Context(), caller, id, models.Identity(req.Identity)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ReviewArticle(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := articleID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.engine.ReviewArticle(c.Request.Context(), caller, id, models.Decision(req.Decision)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) BuyArticle(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := articleID(c)
	if !ok {
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.engine.BuyArticle(c.Request.Context(), caller, id, req.Payment); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetPurchasedArticles(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.engine.PurchasedArticles(caller))
}

func (h *Handler) GetPreviews(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Previews())
}

func (h *Handler) GetCategoryArticles(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.CategoryArticles(c.Param("name")))
}

func (h *Handler) GetReviewerArticles(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.engine.PendingReviews(caller))
}

func (h *Handler) GetEvents(c *gin.Context) {
	since := int64(0)
	if raw := c.Query("since"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid since parameter"})
			return
		}
		since = parsed
	}

	events := h.engine.Events(since)
	for i, event := range events {
		if event.Type == models.EventArticleSubmitted {
			events[i] = redactSubmission(event)
		}
	}

	c.JSON(http.StatusOK, events)
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Stats())
}

// redactSubmission strips full content from a submission event before it
// leaves the engine: the log is public, article bodies are not.
func redactSubmission(event *models.Event) *models.Event {
	var p models.ArticleSubmittedPayload
	if err := json.Unmarshal(event.Payload, &p); err != nil {
		return event
	}
	p.Content = ""
	raw, err := json.Marshal(p)
	if err != nil {
		return event
	}
	redacted := *event
	redacted.Payload = raw
	return &redacted
}

func caller(c *gin.Context) models.Identity {
	return models.Identity(c.GetHeader(callerHeader))
}

func requireCaller(c *gin.Context) (models.Identity, bool) {
	id := caller(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing " + callerHeader + " header"})
		return "", false
	}
	return id, true
}

func articleID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid article ID"})
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), ErrorResponse{Error: err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, journal.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, journal.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, journal.ErrInsufficientPayment):
		return http.StatusPaymentRequired
	case errors.Is(err, journal.ErrInvalidDecision):
		return http.StatusBadRequest
	case errors.Is(err, journal.ErrDuplicateReviewer),
		errors.Is(err, journal.ErrSlotsFull),
		errors.Is(err, journal.ErrAlreadyReviewed),
		errors.Is(err, journal.ErrTerminalStatus),
		errors.Is(err, journal.ErrNotApproved):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
