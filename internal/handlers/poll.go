package handlers

import (
	"fmt"
	"net/http"
	"time"

	"tuiter/internal/services"
	"tuiter/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	pollListCacheKey = "polls:all"
	pollCacheTTL     = time.Minute
)

type PollHandler struct {
	polls *services.PollService
	cache *utils.Cache
}

func NewPollHandler(polls *services.PollService, cache *utils.Cache) *PollHandler {
	return &PollHandler{polls: polls, cache: cache}
}

func pollDetailCacheKey(tuitID uint) string {
	return fmt.Sprintf("polls:detail:%d", tuitID)
}

// invalidate drops the cached list and one poll's detail. Vote handlers call
// this too, since votes change the derived poll stats.
func (h *PollHandler) invalidate(tuitID uint) {
	h.cache.Delete(pollListCacheKey)
	h.cache.Delete(pollDetailCacheKey(tuitID))
}

// FindAllPolls handles GET /api/polls
func (h *PollHandler) FindAllPolls(c *gin.Context) {
	if cached := h.cache.Get(pollListCacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	polls, err := h.polls.FindAllPolls(c.Request.Context(), services.ExpandAll)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	h.cache.Set(pollListCacheKey, polls, pollCacheTTL)
	c.JSON(http.StatusOK, polls)
}

// FindPollByID handles GET /api/polls/:tid
func (h *PollHandler) FindPollByID(c *gin.Context) {
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}

	if cached := h.cache.Get(pollDetailCacheKey(tuitID)); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	poll, err := h.polls.FindPollByID(c.Request.Context(), tuitID, services.ExpandAll)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	poll.TuitHTML = utils.RenderMarkdown(poll.Tuit)
	h.cache.Set(pollDetailCacheKey(tuitID), poll, pollCacheTTL)
	c.JSON(http.StatusOK, poll)
}

// FindPollsByUser handles GET /api/users/:uid/polls
func (h *PollHandler) FindPollsByUser(c *gin.Context) {
	userID, ok := ResolveActingUser(c, c.Param("uid"))
	if !ok {
		return
	}
	polls, err := h.polls.FindPollsByUser(c.Request.Context(), userID, services.ExpandAll)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, polls)
}

// CreatePoll handles POST /api/users/:uid/polls
func (h *PollHandler) CreatePoll(c *gin.Context) {
	userID, ok := ResolveActingUser(c, c.Param("uid"))
	if !ok {
		return
	}

	var req services.CreatePollInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	poll, err := h.polls.CreatePoll(c.Request.Context(), userID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	h.cache.Delete(pollListCacheKey)
	c.JSON(http.StatusOK, poll)
}

type createOptionRequest struct {
	OptionText string `json:"option_text" binding:"required"`
}

// CreatePollOption handles POST /api/users/:uid/polls/:tid/option
func (h *PollHandler) CreatePollOption(c *gin.Context) {
	if _, ok := ResolveActingUser(c, c.Param("uid")); !ok {
		return
	}
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}

	var req createOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	option, err := h.polls.CreatePollOption(c.Request.Context(), tuitID, req.OptionText)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	h.invalidate(tuitID)
	c.JSON(http.StatusOK, option)
}

// UpdatePoll handles PUT /api/polls/:tid
func (h *PollHandler) UpdatePoll(c *gin.Context) {
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}

	var req services.UpdatePollInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if err := h.polls.UpdatePoll(c.Request.Context(), tuitID, req); err != nil {
		AbortWithError(c, err)
		return
	}
	h.invalidate(tuitID)
	c.Status(http.StatusOK)
}

// DeletePoll handles DELETE /api/polls/:tid
func (h *PollHandler) DeletePoll(c *gin.Context) {
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}
	if err := h.polls.DeletePoll(c.Request.Context(), tuitID); err != nil {
		AbortWithError(c, err)
		return
	}
	h.invalidate(tuitID)
	c.Status(http.StatusOK)
}
