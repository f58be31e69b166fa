package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/miharina-tech/miharina_backend/config"
	"github.com/miharina-tech/miharina_backend/utils"
)

type User struct {
	ID                uuid.UUID  `gorm:"primary_key" json:"id"`
	FirebaseUid       string     `gorm:"uniqueIndex;size:128;not null" json:"firebase_uid"`
	Email             string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PhoneNumber       string     `gorm:"size:20" json:"phone_number"`
	DisplayName       string     `gorm:"size:100" json:"display_name"`
	PreferredLanguage Language   `gorm:"size:2;default:fr" json:"preferred_language"`
	Role              UserRole   `gorm:"size:20;default:user" json:"role"`
	LastLoginAt       *time.Time `json:"last_login_at"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	FirebaseUid       string   `json:"-"`
	Email             string   `json:"email" binding:"required,email"`
	PhoneNumber       string   `json:"phone_number"`
	DisplayName       string   `json:"display_name" binding:"required"`
	PreferredLanguage Language `json:"preferred_language"`
	Role              UserRole `json:"-"`
}

type UpdateUserProfileInput struct {
	PhoneNumber       string   `json:"phone_number"`
	DisplayName       string   `json:"display_name"`
	PreferredLanguage Language `json:"preferred_language"`
}

/*
caches:
	User:uid:$firebaseUid
*/

func (input *NewUser) validate(ctx context.Context) error {
	if err := utils.ValidateUnique[User](ctx, "email", input.Email, nil); err != nil {
		return utils.ErrorDuplicateRecord
	}
	if input.PhoneNumber != "" {
		if err := utils.ValidateMadagascarPhone(input.PhoneNumber); err != nil {
			return err
		}
	}
	if input.PreferredLanguage != "" && !input.PreferredLanguage.Valid() {
		return errors.New("invalid preferred language")
	}
	if input.Role != "" && !input.Role.Valid() {
		return errors.New("invalid role")
	}
	return nil
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	lang := input.PreferredLanguage
	if lang == "" {
		lang = LanguageFrench
	}
	role := input.Role
	if role == "" {
		role = UserRoleUser
	}

	user := User{
		ID:                uuid.New(),
		FirebaseUid:       input.FirebaseUid,
		Email:             input.Email,
		PhoneNumber:       input.PhoneNumber,
		DisplayName:       input.DisplayName,
		PreferredLanguage: lang,
		Role:              role,
	}

	// db action
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func GetUserByFirebaseUid(ctx context.Context, uid string) (*User, error) {
	// caching
	cached, err := utils.RetrieveRedis[User]("uid:" + uid)
	if err == nil && cached != nil {
		return cached, nil
	}

	var user User
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("firebase_uid = ?", uid).Take(&user).Error; err != nil {
		return nil, err
	}

	_ = utils.StoreRedis[User](&user, "uid:"+uid)
	return &user, nil
}

func GetUserById(ctx context.Context, id string) (*User, error) {
	var user User
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertUserFromLogin ensures a DB row exists for a verified Firebase
// identity and stamps last_login_at. Returns the row and whether this call
// created it.
func UpsertUserFromLogin(ctx context.Context, uid, email, displayName string) (*User, bool, error) {
	db := config.GetDB()

	now := time.Now().UTC()
	var user User
	err := db.WithContext(ctx).Where("firebase_uid = ?", uid).Take(&user).Error
	if err == nil {
		if err := db.WithContext(ctx).Model(&user).Update("last_login_at", &now).Error; err != nil {
			return nil, false, err
		}
		user.LastLoginAt = &now
		_ = user.RemoveRedis()
		return &user, false, nil
	}
	if !utils.IsNotFound(err) {
		return nil, false, err
	}

	user = User{
		ID:                uuid.New(),
		FirebaseUid:       uid,
		Email:             email,
		DisplayName:       displayName,
		PreferredLanguage: LanguageFrench,
		Role:              UserRoleUser,
		LastLoginAt:       &now,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

func UpdateUserProfile(ctx context.Context, userId string, input *UpdateUserProfileInput) (*User, error) {
	if input.PreferredLanguage != "" && !input.PreferredLanguage.Valid() {
		return nil, errors.New("invalid preferred language")
	}
	if input.PhoneNumber != "" {
		if err := utils.ValidateMadagascarPhone(input.PhoneNumber); err != nil {
			return nil, err
		}
	}

	db := config.GetDB()

	// check exists
	var user User
	if err := db.WithContext(ctx).Where("id = ?", userId).First(&user).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	updates := map[string]interface{}{}
	if input.PhoneNumber != "" {
		updates["PhoneNumber"] = input.PhoneNumber
	}
	if input.DisplayName != "" {
		updates["DisplayName"] = input.DisplayName
	}
	if input.PreferredLanguage != "" {
		updates["PreferredLanguage"] = input.PreferredLanguage
	}
	if len(updates) == 0 {
		return &user, nil
	}

	if err := db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}

	// caching
	if err := user.RemoveRedis(); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUserRole updates a user's role and drops the cached row so the next
// token verification sees the change.
func SetUserRole(ctx context.Context, userId string, role UserRole) (*User, error) {
	if !role.Valid() {
		return nil, errors.New("invalid role")
	}

	db := config.GetDB()

	// check exists
	var user User
	if err := db.WithContext(ctx).Where("id = ?", userId).First(&user).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := db.WithContext(ctx).Model(&user).Update("role", role).Error; err != nil {
		return nil, err
	}
	user.Role = role

	// caching
	if err := user.RemoveRedis(); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUserById removes a user row. Used by the registration rollback.
func DeleteUserById(ctx context.Context, id string) error {
	db := config.GetDB()
	var user User
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&user).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Delete(&user).Error; err != nil {
		return err
	}
	return user.RemoveRedis()
}

func (user *User) RemoveRedis() error {
	return config.RemoveRedisKey("User:uid:" + user.FirebaseUid)
}
