package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/miharina-tech/miharina_backend/config"
	"github.com/miharina-tech/miharina_backend/models"
	"github.com/miharina-tech/miharina_backend/utils"
)

// SendMessage delivers a message, creating the conversation on first
// contact, and publishes message.sent best-effort.
func SendMessage(c *gin.Context) {
	lang := requestLanguage(c)
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	var input models.NewMessage
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	msg, err := models.SendMessage(ctx, userId, &input)
	if err != nil {
		if utils.IsNotFound(err) {
			respondModelError(c, err, utils.MsgUserNotFound)
			return
		}
		respondBadRequest(c, err)
		return
	}

	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
	if _, err := config.PublishNotification(ctx, config.NotificationMessage{
		Type:          "message.sent",
		UserId:        userId,
		TargetId:      input.ReceiverId,
		Language:      lang,
		CorrelationId: correlationId,
	}); err != nil {
		config.LogError(config.GetLogger(), "handlers", "SendMessage", "publish event", msg.ID.String(), err)
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

func ListConversationMessages(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))

	messages, err := models.ListConversationMessages(ctx, c.Param("id"), userId, page, pageSize)
	if err != nil {
		respondModelError(c, err, utils.MsgConversationNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func ListConversations(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	conversations, err := models.ListConversations(ctx, userId)
	if err != nil {
		respondModelError(c, err, utils.MsgConversationNotFound)
		return
	}

	unread, _ := models.CountUnreadMessages(ctx, userId)
	c.JSON(http.StatusOK, gin.H{"conversations": conversations, "unread_total": unread})
}

func MarkConversationRead(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	updated, err := models.MarkConversationRead(ctx, c.Param("id"), userId)
	if err != nil {
		respondModelError(c, err, utils.MsgConversationNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked_read": updated})
}

func DeleteMessage(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	if err := models.DeleteMessage(ctx, c.Param("id"), userId); err != nil {
		respondModelError(c, err, utils.MsgMessageNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
