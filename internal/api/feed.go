package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/receitas/backend/internal/service"
)

// FeedHandler exposes the displayed listing driven by search actions.
type FeedHandler struct {
	feed *service.Feed
}

func NewFeedHandler(feed *service.Feed) *FeedHandler {
	return &FeedHandler{feed: feed}
}

func (h *FeedHandler) RegisterRoutes(router *gin.RouterGroup) {
	feed := router.Group("/feed")
	{
		feed.GET("", h.GetFeed)
		feed.POST("", h.Dispatch)
	}
}

func (h *FeedHandler) GetFeed(c *gin.Context) {
	c.JSON(http.StatusOK, h.feed.Current())
}

// Dispatch applies one action and returns the listing displayed afterwards.
// Ignored actions (empty ingredient text) leave the listing untouched.
func (h *FeedHandler) Dispatch(c *gin.Context) {
	var action service.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch action.Kind {
	case service.ActionSearch, service.ActionCategory, service.ActionIngredient, service.ActionRandom:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action kind"})
		return
	}

	h.feed.Load(c.Request.Context(), action)
	c.JSON(http.StatusOK, h.feed.Current())
}
