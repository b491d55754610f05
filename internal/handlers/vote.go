package handlers

import (
	"net/http"

	"tuiter/internal/services"
	"tuiter/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	votes *services.VoteService
	cache *utils.Cache
}

func NewVoteHandler(votes *services.VoteService, cache *utils.Cache) *VoteHandler {
	return &VoteHandler{votes: votes, cache: cache}
}

// votes change the derived poll stats, so cached poll reads go stale
func (h *VoteHandler) invalidate(tuitID uint) {
	h.cache.Delete(pollListCacheKey)
	h.cache.Delete(pollDetailCacheKey(tuitID))
}

// FindVotesOnPoll handles GET /api/votes/:tid
func (h *VoteHandler) FindVotesOnPoll(c *gin.Context) {
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}
	votes, err := h.votes.FindVotesOnPoll(c.Request.Context(), tuitID, services.ExpandAll)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, votes)
}

// FindUserVoteOnPoll handles GET /api/votes/:tid/users/:uid
func (h *VoteHandler) FindUserVoteOnPoll(c *gin.Context) {
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}
	userID, ok := ResolveActingUser(c, c.Param("uid"))
	if !ok {
		return
	}
	vote, err := h.votes.FindUserVoteOnPoll(c.Request.Context(), tuitID, userID, services.ExpandAll)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, vote)
}

// CreateVote handles POST /api/users/:uid/votes/:tid/:poid
func (h *VoteHandler) CreateVote(c *gin.Context) {
	userID, ok := ResolveActingUser(c, c.Param("uid"))
	if !ok {
		return
	}
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}
	optionID, ok := UintParam(c, "poid")
	if !ok {
		return
	}

	vote, err := h.votes.RecordVote(c.Request.Context(), userID, tuitID, optionID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	h.invalidate(tuitID)
	c.JSON(http.StatusOK, vote)
}

type updateVoteRequest struct {
	PollOptionID uint `json:"poll_option_id" binding:"required"`
}

// UpdateVote handles PUT /api/votes/:vid — it moves the vote to another
// option and settles both counters, rather than blindly overwriting the row.
func (h *VoteHandler) UpdateVote(c *gin.Context) {
	voteID, ok := UintParam(c, "vid")
	if !ok {
		return
	}

	var req updateVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	vote, err := h.votes.ChangeVote(c.Request.Context(), voteID, req.PollOptionID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	h.invalidate(vote.TuitID)
	c.JSON(http.StatusOK, vote)
}

// DeleteVote handles DELETE /api/votes/:uid/:tid
func (h *VoteHandler) DeleteVote(c *gin.Context) {
	userID, ok := ResolveActingUser(c, c.Param("uid"))
	if !ok {
		return
	}
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}

	if err := h.votes.RetractVote(c.Request.Context(), userID, tuitID); err != nil {
		AbortWithError(c, err)
		return
	}
	h.invalidate(tuitID)
	c.Status(http.StatusOK)
}
