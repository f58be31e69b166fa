package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/miharina-tech/miharina_backend/config"
	"github.com/miharina-tech/miharina_backend/utils"
)

// ContactRequest records a user reaching out to a business from its public
// profile page.
type ContactRequest struct {
	ID              uuid.UUID `gorm:"primary_key" json:"id"`
	BusinessId      uuid.UUID `gorm:"index;not null" json:"business_id"`
	RequesterUserId uuid.UUID `gorm:"index;not null" json:"requester_user_id"`
	Message         string    `gorm:"type:text" json:"message"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ProfileView is a lightweight analytics row written when an authenticated
// user opens someone else's profile.
type ProfileView struct {
	ID           uuid.UUID `gorm:"primary_key" json:"id"`
	BusinessId   uuid.UUID `gorm:"index;not null" json:"business_id"`
	ViewerUserId uuid.UUID `gorm:"index;not null" json:"viewer_user_id"`
	ViewedAt     time.Time `gorm:"autoCreateTime" json:"viewed_at"`
}

type NewContactRequest struct {
	Message string `json:"message" binding:"required"`
}

func CreateContactRequest(ctx context.Context, businessId string, userId string, input *NewContactRequest) (*ContactRequest, error) {
	uid, err := uuid.Parse(userId)
	if err != nil {
		return nil, errors.New("invalid user id")
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, errors.New("message is required")
	}

	profile, err := GetBusinessProfileById(ctx, businessId)
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if profile.UserId == uid {
		return nil, errors.New("cannot contact your own business")
	}

	req := ContactRequest{
		ID:              uuid.New(),
		BusinessId:      profile.ID,
		RequesterUserId: uid,
		Message:         message,
	}

	// db action
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func ListContactRequestsForBusiness(ctx context.Context, businessId string) ([]*ContactRequest, error) {
	var requests []*ContactRequest
	db := config.GetDB()
	if err := db.WithContext(ctx).
		Where("business_id = ?", businessId).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// RecordProfileView is best-effort; self-views are skipped.
func RecordProfileView(ctx context.Context, profile *BusinessProfile, viewerUserId string) error {
	viewer, err := uuid.Parse(viewerUserId)
	if err != nil || viewer == profile.UserId {
		return nil
	}

	view := ProfileView{
		ID:           uuid.New(),
		BusinessId:   profile.ID,
		ViewerUserId: viewer,
	}
	db := config.GetDB()
	return db.WithContext(ctx).Create(&view).Error
}

func CountProfileViews(ctx context.Context, businessId string) (int64, error) {
	var count int64
	db := config.GetDB()
	err := db.WithContext(ctx).Model(&ProfileView{}).
		Where("business_id = ?", businessId).
		Count(&count).Error
	return count, err
}
