package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/miharina-tech/miharina_backend/config"
	"github.com/miharina-tech/miharina_backend/utils"
)

type SuccessStory struct {
	ID          uuid.UUID `gorm:"primary_key" json:"id"`
	BusinessId  uuid.UUID `gorm:"index;not null" json:"business_id"`
	CreatedBy   uuid.UUID `gorm:"index;not null" json:"created_by"`
	TitleFr     string    `gorm:"size:200;not null" json:"title_fr"`
	TitleMg     string    `gorm:"size:200" json:"title_mg"`
	TitleEn     string    `gorm:"size:200" json:"title_en"`
	ContentFr   string    `gorm:"type:text" json:"content_fr"`
	ContentMg   string    `gorm:"type:text" json:"content_mg"`
	ContentEn   string    `gorm:"type:text" json:"content_en"`
	ImageUrl    string    `json:"image_url"`
	IsPublished *bool     `gorm:"not null;default:false" json:"is_published"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSuccessStory struct {
	BusinessId  string `json:"business_id" binding:"required"`
	TitleFr     string `json:"title_fr" binding:"required"`
	TitleMg     string `json:"title_mg"`
	TitleEn     string `json:"title_en"`
	ContentFr   string `json:"content_fr"`
	ContentMg   string `json:"content_mg"`
	ContentEn   string `json:"content_en"`
	ImageUrl    string `json:"image_url"`
	IsPublished *bool  `json:"is_published"`
}

/*
caches:
	SuccessStory:$id
*/

func (story *SuccessStory) StoreRedis() error {
	return utils.StoreRedis[SuccessStory](story, story.ID.String())
}

func (story *SuccessStory) RemoveRedis() error {
	return utils.RemoveRedisItem[SuccessStory](story.ID.String())
}

func CreateSuccessStory(ctx context.Context, userId string, input *NewSuccessStory) (*SuccessStory, error) {
	uid, err := uuid.Parse(userId)
	if err != nil {
		return nil, errors.New("invalid user id")
	}

	// the story must belong to the caller's own business
	profile, err := GetBusinessProfileById(ctx, input.BusinessId)
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if profile.UserId.String() != userId {
		return nil, utils.ErrorForbidden
	}

	published := input.IsPublished
	if published == nil {
		published = utils.NewFalse()
	}

	story := SuccessStory{
		ID:          uuid.New(),
		BusinessId:  profile.ID,
		CreatedBy:   uid,
		TitleFr:     input.TitleFr,
		TitleMg:     input.TitleMg,
		TitleEn:     input.TitleEn,
		ContentFr:   input.ContentFr,
		ContentMg:   input.ContentMg,
		ContentEn:   input.ContentEn,
		ImageUrl:    input.ImageUrl,
		IsPublished: published,
	}

	// db action
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&story).Error; err != nil {
		return nil, err
	}

	// caching
	_ = story.StoreRedis()
	return &story, nil
}

func GetSuccessStoryById(ctx context.Context, id string) (*SuccessStory, error) {
	// caching
	cached, err := utils.RetrieveRedis[SuccessStory](id)
	if err == nil && cached != nil {
		return cached, nil
	}

	var story SuccessStory
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&story).Error; err != nil {
		return nil, err
	}

	_ = story.StoreRedis()
	return &story, nil
}

// ListPublishedSuccessStories is the public listing; drafts stay hidden.
func ListPublishedSuccessStories(ctx context.Context, page, pageSize int) ([]*SuccessStory, int64, error) {
	db := config.GetDB()

	q := db.WithContext(ctx).Model(&SuccessStory{}).Where("is_published = true")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize = normalizePage(page, pageSize)
	var stories []*SuccessStory
	if err := q.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&stories).Error; err != nil {
		return nil, 0, err
	}
	return stories, total, nil
}

func ListSuccessStoriesByUser(ctx context.Context, userId string) ([]*SuccessStory, error) {
	var stories []*SuccessStory
	db := config.GetDB()
	if err := db.WithContext(ctx).
		Where("created_by = ?", userId).
		Order("created_at DESC").
		Find(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}

func UpdateSuccessStory(ctx context.Context, id string, userId string, input *NewSuccessStory) (*SuccessStory, error) {
	db := config.GetDB()

	// check exists
	var story SuccessStory
	if err := db.WithContext(ctx).Where("id = ?", id).First(&story).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if story.CreatedBy.String() != userId {
		return nil, utils.ErrorForbidden
	}

	updates := map[string]interface{}{
		"TitleFr":   input.TitleFr,
		"TitleMg":   input.TitleMg,
		"TitleEn":   input.TitleEn,
		"ContentFr": input.ContentFr,
		"ContentMg": input.ContentMg,
		"ContentEn": input.ContentEn,
		"ImageUrl":  input.ImageUrl,
	}
	if input.IsPublished != nil {
		updates["IsPublished"] = *input.IsPublished
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Model(&story).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// caching
	if err := story.RemoveRedis(); err != nil {
		tx.Rollback()
		return nil, err
	}
	return &story, tx.Commit().Error
}

func DeleteSuccessStory(ctx context.Context, id string, userId string, isAdmin bool) error {
	db := config.GetDB()

	var story SuccessStory
	if err := db.WithContext(ctx).Where("id = ?", id).First(&story).Error; err != nil {
		return utils.ErrorRecordNotFound
	}
	if !isAdmin && story.CreatedBy.String() != userId {
		return utils.ErrorForbidden
	}

	if err := db.WithContext(ctx).Delete(&story).Error; err != nil {
		return err
	}
	return story.RemoveRedis()
}
