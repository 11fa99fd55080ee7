package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lockchat/internal/channel"
	"lockchat/pkg/logger"
)

type ChannelHandler struct {
	usecase channel.ChannelUsecase
	logger  logger.Logger
}

func NewChannelHandler(usecase channel.ChannelUsecase, logger logger.Logger) *ChannelHandler {
	return &ChannelHandler{usecase: usecase, logger: logger}
}

type createChannelRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type sendMessageRequest struct {
	Content   string `json:"content"`
	ImageData string `json:"imageData"`
	IsLocked  bool   `json:"isLocked"`
	LockPrice int64  `json:"lockPrice"`
}

func (h *ChannelHandler) ListChannels(c *gin.Context) {
	channels, err := h.usecase.ListChannels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	var req createChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing name"})
		return
	}

	ch, err := h.usecase.CreateChannel(c.Request.Context(), viewerFrom(c), channel.CreateChannelCommand{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channel": ch})
}

func (h *ChannelHandler) ListMessages(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid channel id"})
		return
	}

	messages, err := h.usecase.ListMessages(c.Request.Context(), channelID, viewerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *ChannelHandler) SendMessage(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid channel id"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing content"})
		return
	}

	msg, err := h.usecase.SendMessage(c.Request.Context(), viewerFrom(c), channel.SendMessageCommand{
		ChannelID: channelID,
		Content:   req.Content,
		ImageData: req.ImageData,
		IsLocked:  req.IsLocked,
		LockPrice: req.LockPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (h *ChannelHandler) UnlockMessage(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
		return
	}

	result, err := h.usecase.UnlockMessage(c.Request.Context(), messageID, viewerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": result.Ok})
}
