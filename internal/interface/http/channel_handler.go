package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/vidtube/backend/internal/application"
	"github.com/vidtube/backend/internal/interface/middleware"
	"github.com/vidtube/backend/pkg/apperr"
	"github.com/vidtube/backend/pkg/response"
)

type ChannelHandler struct {
	Users    *userapp.UserService
	Channels *userapp.ChannelService
	Logger   *logrus.Logger
}

func NewChannelHandler(users *userapp.UserService, channels *userapp.ChannelService, logger *logrus.Logger) *ChannelHandler {
	return &ChannelHandler{Users: users, Channels: channels, Logger: logger}
}

// GetProfile GET /api/v1/channels/:username (auth required)
func (h *ChannelHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.Fail(c, apperr.New(apperr.Validation, "username is required"))
		return
	}
	requester := c.GetString(middleware.CtxUserIDKey)
	profile, err := h.Channels.GetChannelProfile(c.Request.Context(), username, requester)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile, "channel fetched successfully", nil)
}

// GetWatchHistory GET /api/v1/channels/:username/history (auth required)
func (h *ChannelHandler) GetWatchHistory(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.Fail(c, apperr.New(apperr.Validation, "username is required"))
		return
	}
	history, err := h.Channels.GetWatchHistory(c.Request.Context(), username)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, history, "watch history fetched successfully", nil)
}

// Subscribe POST /api/v1/channels/:username/subscription (auth required)
func (h *ChannelHandler) Subscribe(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	sub, err := h.Channels.Subscribe(c.Request.Context(), uid, c.Param("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"subscription_id": sub.ID}, "subscribed successfully", nil)
}

// Unsubscribe DELETE /api/v1/channels/:username/subscription (auth required)
func (h *ChannelHandler) Unsubscribe(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Channels.Unsubscribe(c.Request.Context(), uid, c.Param("username")); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"unsubscribed": true}, "unsubscribed successfully", nil)
}

// RecordWatch POST /api/v1/videos/:id/watch (auth required)
func (h *ChannelHandler) RecordWatch(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Users.RecordWatch(c.Request.Context(), uid, c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"recorded": true}, "watch recorded", nil)
}

// Search GET /api/v1/channels/search?q=&size= (auth required)
func (h *ChannelHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, apperr.New(apperr.Validation, "q is required"))
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Users.SearchChannels(c.Request.Context(), q, size)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}
