package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/miharina-tech/miharina_backend/config"
	"github.com/miharina-tech/miharina_backend/utils"
)

type Upload struct {
	ID           uuid.UUID `gorm:"primary_key" json:"id"`
	UserId       uuid.UUID `gorm:"index;not null" json:"user_id"`
	FileName     string    `gorm:"size:255;not null" json:"file_name"`
	FileUrl      string    `gorm:"not null" json:"file_url"`
	ThumbnailUrl string    `json:"thumbnail_url"`
	ContentType  string    `gorm:"size:100" json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Folder       string    `gorm:"size:50" json:"folder"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func CreateUpload(ctx context.Context, upload *Upload) (*Upload, error) {
	if upload.ID == uuid.Nil {
		upload.ID = uuid.New()
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(upload).Error; err != nil {
		return nil, err
	}
	return upload, nil
}

func GetUploadById(ctx context.Context, id string) (*Upload, error) {
	var upload Upload
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&upload).Error; err != nil {
		return nil, err
	}
	return &upload, nil
}

func ListUploadsByUser(ctx context.Context, userId string) ([]*Upload, error) {
	var uploads []*Upload
	db := config.GetDB()
	if err := db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}

// DeleteUpload removes the DB row; the caller deletes the blobs so storage
// failures do not leave phantom rows.
func DeleteUpload(ctx context.Context, id string, userId string) (*Upload, error) {
	db := config.GetDB()

	var upload Upload
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&upload).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if upload.UserId.String() != userId {
		return nil, utils.ErrorForbidden
	}

	if err := db.WithContext(ctx).Delete(&upload).Error; err != nil {
		return nil, err
	}
	return &upload, nil
}

var ErrInvalidFolder = errors.New("invalid upload folder")

var allowedUploadFolders = map[string]bool{
	"logos":     true,
	"stories":   true,
	"documents": true,
	"uploads":   true,
}

func ValidateUploadFolder(folder string) (string, error) {
	if folder == "" {
		return "uploads", nil
	}
	if !allowedUploadFolders[folder] {
		return "", ErrInvalidFolder
	}
	return folder, nil
}
