package router

import (
	"tuiter/internal/handlers"
	"tuiter/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the REST surface. Identity aliases ("me"/"my") in a
// :uid position are resolved per-handler against the session, so most routes
// stay open; explicit user ids need no session at all.
func RegisterRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	tuitHandler *handlers.TuitHandler,
	reactionHandler *handlers.ReactionHandler,
	pollHandler *handlers.PollHandler,
	voteHandler *handlers.VoteHandler,
) {
	api := r.Group("/api")

	// Auth
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/profile", middleware.AuthRequired(), authHandler.Profile)

	// Tuits
	api.GET("/tuits", tuitHandler.FindAllTuits)
	api.GET("/tuits/:tid", tuitHandler.FindTuitByID)
	api.GET("/users/:uid/tuits", tuitHandler.FindTuitsByUser)
	api.POST("/users/:uid/tuits", tuitHandler.CreateTuit)
	api.DELETE("/tuits/:tid", tuitHandler.DeleteTuit)

	// Dislikes
	api.GET("/users/:uid/dislikes", reactionHandler.FindTuitsDislikedByUser)
	api.GET("/tuits/:tid/dislikes", reactionHandler.FindUsersThatDislikedTuit)
	api.POST("/users/:uid/dislikes/:tid", reactionHandler.UserDislikesTuit)
	api.DELETE("/users/:uid/undislikes/:tid", reactionHandler.UserUndoDislike)
	api.PUT("/users/:uid/dislikes/:tid", reactionHandler.UserTogglesDislike)

	// Likes
	api.GET("/users/:uid/likes", reactionHandler.FindTuitsLikedByUser)
	api.GET("/tuits/:tid/likes", reactionHandler.FindUsersThatLikedTuit)
	api.POST("/users/:uid/likes/:tid", reactionHandler.UserLikesTuit)
	api.DELETE("/users/:uid/unlikes/:tid", reactionHandler.UserUndoLike)
	api.PUT("/users/:uid/likes/:tid", reactionHandler.UserTogglesLike)

	// Polls
	api.GET("/polls", pollHandler.FindAllPolls)
	api.GET("/polls/:tid", pollHandler.FindPollByID)
	api.GET("/users/:uid/polls", pollHandler.FindPollsByUser)
	api.POST("/users/:uid/polls", pollHandler.CreatePoll)
	api.POST("/users/:uid/polls/:tid/option", pollHandler.CreatePollOption)
	api.PUT("/polls/:tid", pollHandler.UpdatePoll)
	api.DELETE("/polls/:tid", pollHandler.DeletePoll)

	// Votes
	api.GET("/votes/:tid", voteHandler.FindVotesOnPoll)
	api.GET("/votes/:tid/users/:uid", voteHandler.FindUserVoteOnPoll)
	api.POST("/users/:uid/votes/:tid/:poid", voteHandler.CreateVote)
	api.PUT("/votes/:vid", voteHandler.UpdateVote)
	api.DELETE("/votes/:uid/:tid", voteHandler.DeleteVote)
}
