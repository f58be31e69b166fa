package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/miharina-tech/miharina_backend/config"
	"github.com/miharina-tech/miharina_backend/utils"
	"gorm.io/gorm"
)

type Conversation struct {
	ID        uuid.UUID `gorm:"primary_key" json:"id"`
	User1Id   uuid.UUID `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"user1_id"`
	User2Id   uuid.UUID `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"user2_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Message struct {
	ID             uuid.UUID `gorm:"primary_key" json:"id"`
	ConversationId uuid.UUID `gorm:"index;not null" json:"conversation_id"`
	SenderId       uuid.UUID `gorm:"index;not null" json:"sender_id"`
	ReceiverId     uuid.UUID `gorm:"index;not null" json:"receiver_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	IsRead         *bool     `gorm:"not null;default:false" json:"is_read"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewMessage struct {
	ReceiverId string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// ConversationSummary is the conversations-list view: the other party and
// how many of their messages are still unread.
type ConversationSummary struct {
	Conversation Conversation `json:"conversation"`
	OtherUserId  uuid.UUID    `json:"other_user_id"`
	LastMessage  *Message     `json:"last_message"`
	UnreadCount  int64        `json:"unread_count"`
}

// conversationPair orders the two user ids so (a, b) and (b, a) hit the
// same unique index row.
func conversationPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if strings.Compare(a.String(), b.String()) <= 0 {
		return a, b
	}
	return b, a
}

func getOrCreateConversation(ctx context.Context, db *gorm.DB, a, b uuid.UUID) (*Conversation, error) {
	u1, u2 := conversationPair(a, b)

	var conv Conversation
	err := db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", u1, u2).
		Take(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !utils.IsNotFound(err) {
		return nil, err
	}

	conv = Conversation{ID: uuid.New(), User1Id: u1, User2Id: u2}
	if err := db.WithContext(ctx).Create(&conv).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			// concurrent first-message race
			return getOrCreateConversation(ctx, db, a, b)
		}
		return nil, err
	}
	return &conv, nil
}

// SendMessage creates the conversation on first contact, then appends the
// message.
func SendMessage(ctx context.Context, senderId string, input *NewMessage) (*Message, error) {
	sender, err := uuid.Parse(senderId)
	if err != nil {
		return nil, errors.New("invalid sender id")
	}
	receiver, err := uuid.Parse(input.ReceiverId)
	if err != nil {
		return nil, errors.New("invalid receiver id")
	}
	if sender == receiver {
		return nil, errors.New("cannot message yourself")
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, errors.New("content is required")
	}

	db := config.GetDB()

	// check exists
	if err := utils.ValidateResourceId[User](ctx, input.ReceiverId); err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	conv, err := getOrCreateConversation(ctx, db, sender, receiver)
	if err != nil {
		return nil, err
	}

	msg := Message{
		ID:             uuid.New(),
		ConversationId: conv.ID,
		SenderId:       sender,
		ReceiverId:     receiver,
		Content:        content,
		IsRead:         utils.NewFalse(),
	}

	// db action
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&msg).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Model(conv).Update("updated_at", time.Now()).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return &msg, tx.Commit().Error
}

// ListConversationMessages returns messages oldest first; only the two
// participants may read them.
func ListConversationMessages(ctx context.Context, conversationId string, userId string, page, pageSize int) ([]*Message, error) {
	db := config.GetDB()

	var conv Conversation
	if err := db.WithContext(ctx).Where("id = ?", conversationId).Take(&conv).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if conv.User1Id.String() != userId && conv.User2Id.String() != userId {
		return nil, utils.ErrorForbidden
	}

	page, pageSize = normalizePage(page, pageSize)
	var messages []*Message
	if err := db.WithContext(ctx).
		Where("conversation_id = ?", conversationId).
		Order("created_at ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func ListConversations(ctx context.Context, userId string) ([]*ConversationSummary, error) {
	db := config.GetDB()

	var convs []*Conversation
	if err := db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userId, userId).
		Order("updated_at DESC").
		Find(&convs).Error; err != nil {
		return nil, err
	}

	summaries := make([]*ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		other := conv.User1Id
		if other.String() == userId {
			other = conv.User2Id
		}

		var last Message
		lastPtr := &last
		err := db.WithContext(ctx).
			Where("conversation_id = ?", conv.ID).
			Order("created_at DESC").
			Take(&last).Error
		if err != nil {
			if !utils.IsNotFound(err) {
				return nil, err
			}
			lastPtr = nil
		}

		var unread int64
		if err := db.WithContext(ctx).Model(&Message{}).
			Where("conversation_id = ? AND receiver_id = ? AND is_read = false", conv.ID, userId).
			Count(&unread).Error; err != nil {
			return nil, err
		}

		summaries = append(summaries, &ConversationSummary{
			Conversation: *conv,
			OtherUserId:  other,
			LastMessage:  lastPtr,
			UnreadCount:  unread,
		})
	}
	return summaries, nil
}

// MarkConversationRead flags every message addressed to the user in the
// conversation as read. Returns how many rows changed.
func MarkConversationRead(ctx context.Context, conversationId string, userId string) (int64, error) {
	db := config.GetDB()

	var conv Conversation
	if err := db.WithContext(ctx).Where("id = ?", conversationId).Take(&conv).Error; err != nil {
		return 0, utils.ErrorRecordNotFound
	}
	if conv.User1Id.String() != userId && conv.User2Id.String() != userId {
		return 0, utils.ErrorForbidden
	}

	res := db.WithContext(ctx).Model(&Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = false", conversationId, userId).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

// DeleteMessage removes a single message; only its sender may delete it.
func DeleteMessage(ctx context.Context, messageId string, userId string) error {
	db := config.GetDB()

	var msg Message
	if err := db.WithContext(ctx).Where("id = ?", messageId).Take(&msg).Error; err != nil {
		return utils.ErrorRecordNotFound
	}
	if msg.SenderId.String() != userId {
		return utils.ErrorForbidden
	}
	return db.WithContext(ctx).Delete(&msg).Error
}

func CountUnreadMessages(ctx context.Context, userId string) (int64, error) {
	var count int64
	db := config.GetDB()
	err := db.WithContext(ctx).Model(&Message{}).
		Where("receiver_id = ? AND is_read = false", userId).
		Count(&count).Error
	return count, err
}
