package handlers

import (
	"net/http"

	"tuiter/internal/services"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	reactions *services.ReactionService
}

func NewReactionHandler(reactions *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactions: reactions}
}

// --- dislikes ---

// FindTuitsDislikedByUser handles GET /api/users/:uid/dislikes
func (h *ReactionHandler) FindTuitsDislikedByUser(c *gin.Context) {
	userID, ok := ResolveActingUser(c, c.Param("uid"))
	if !ok {
		return
	}
	tuits, err := h.reactions.FindTuitsDislikedByUser(c.Request.Context(), userID, services.ExpandAll)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tuits)
}

// FindUsersThatDislikedTuit handles GET /api/tuits/:tid/dislikes
func (h *ReactionHandler) FindUsersThatDislikedTuit(c *gin.Context) {
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}
	users, err := h.reactions.FindUsersThatDislikedTuit(c.Request.Context(), tuitID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UserDislikesTuit handles POST /api/users/:uid/dislikes/:tid
func (h *ReactionHandler) UserDislikesTuit(c *gin.Context) {
	userID, ok := ResolveActingUser(c, c.Param("uid"))
	if !ok {
		return
	}
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}
	dislike, err := h.reactions.Dislike(c.Request.Context(), userID, tuitID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dislike)
}

// UserUndoDislike handles DELETE /api/users/:uid/undislikes/:tid
func (h *ReactionHandler) UserUndoDislike(c *gin.Context) {
	userID, ok := ResolveActingUser(c, c.Param("uid"))
	if !ok {
		return
	}
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}
	if err := h.reactions.UndoDislike(c.Request.Context(), userID, tuitID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// UserTogglesDislike handles PUT /api/users/:uid/dislikes/:tid and returns
// the tuit's updated stats.
func (h *ReactionHandler) UserTogglesDislike(c *gin.Context) {
	userID, ok := ResolveActingUser(c, c.Param("uid"))
	if !ok {
		return
	}
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}
	stats, err := h.reactions.ToggleDislike(c.Request.Context(), userID, tuitID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// --- likes ---

// FindTuitsLikedByUser handles GET /api/users/:uid/likes
func (h *ReactionHandler) FindTuitsLikedByUser(c *gin.Context) {
	userID, ok := ResolveActingUser(c, c.Param("uid"))
	if !ok {
		return
	}
	tuits, err := h.reactions.FindTuitsLikedByUser(c.Request.Context(), userID, services.ExpandAll)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tuits)
}

// FindUsersThatLikedTuit handles GET /api/tuits/:tid/likes
func (h *ReactionHandler) FindUsersThatLikedTuit(c *gin.Context) {
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}
	users, err := h.reactions.FindUsersThatLikedTuit(c.Request.Context(), tuitID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UserLikesTuit handles POST /api/users/:uid/likes/:tid
func (h *ReactionHandler) UserLikesTuit(c *gin.Context) {
	userID, ok := ResolveActingUser(c, c.Param("uid"))
	if !ok {
		return
	}
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}
	like, err := h.reactions.Like(c.Request.Context(), userID, tuitID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, like)
}

// UserUndoLike handles DELETE /api/users/:uid/unlikes/:tid
func (h *ReactionHandler) UserUndoLike(c *gin.Context) {
	userID, ok := ResolveActingUser(c, c.Param("uid"))
	if !ok {
		return
	}
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}
	if err := h.reactions.UndoLike(c.Request.Context(), userID, tuitID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// UserTogglesLike handles PUT /api/users/:uid/likes/:tid
func (h *ReactionHandler) UserTogglesLike(c *gin.Context) {
	userID, ok := ResolveActingUser(c, c.Param("uid"))
	if !ok {
		return
	}
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}
	stats, err := h.reactions.ToggleLike(c.Request.Context(), userID, tuitID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
