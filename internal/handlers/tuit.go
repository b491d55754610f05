package handlers

import (
	"net/http"

	"tuiter/internal/services"
	"tuiter/internal/utils"

	"github.com/gin-gonic/gin"
)

type TuitHandler struct {
	tuits *services.TuitService
}

func NewTuitHandler(tuits *services.TuitService) *TuitHandler {
	return &TuitHandler{tuits: tuits}
}

// FindAllTuits handles GET /api/tuits
func (h *TuitHandler) FindAllTuits(c *gin.Context) {
	tuits, err := h.tuits.FindAllTuits(c.Request.Context(), services.ExpandAll)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tuits)
}

// FindTuitByID handles GET /api/tuits/:tid
func (h *TuitHandler) FindTuitByID(c *gin.Context) {
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}
	tuit, err := h.tuits.FindTuitByID(c.Request.Context(), tuitID, services.ExpandAll)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	tuit.TuitHTML = utils.RenderMarkdown(tuit.Tuit)
	c.JSON(http.StatusOK, tuit)
}

// FindTuitsByUser handles GET /api/users/:uid/tuits
func (h *TuitHandler) FindTuitsByUser(c *gin.Context) {
	userID, ok := ResolveActingUser(c, c.Param("uid"))
	if !ok {
		return
	}
	tuits, err := h.tuits.FindTuitsByUser(c.Request.Context(), userID, services.ExpandAll)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tuits)
}

type createTuitRequest struct {
	Tuit string `json:"tuit" binding:"required"`
}

// CreateTuit handles POST /api/users/:uid/tuits
func (h *TuitHandler) CreateTuit(c *gin.Context) {
	userID, ok := ResolveActingUser(c, c.Param("uid"))
	if !ok {
		return
	}

	var req createTuitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	tuit, err := h.tuits.CreateTuit(c.Request.Context(), userID, req.Tuit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tuit)
}

// DeleteTuit handles DELETE /api/tuits/:tid
func (h *TuitHandler) DeleteTuit(c *gin.Context) {
	tuitID, ok := UintParam(c, "tid")
	if !ok {
		return
	}
	if err := h.tuits.DeleteTuit(c.Request.Context(), tuitID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
