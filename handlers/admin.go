package handlers

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/miharina-tech/miharina_backend/config"
	"github.com/miharina-tech/miharina_backend/mailer"
	"github.com/miharina-tech/miharina_backend/models"
	"github.com/miharina-tech/miharina_backend/models/reports"
	"github.com/miharina-tech/miharina_backend/utils"
	"github.com/miharina-tech/miharina_backend/workflow"
)

type bootstrapInput struct {
	Secret string `json:"secret"`
}

// BootstrapAdmin grants the admin custom claim. The first admin is minted
// with ADMIN_BOOTSTRAP_SECRET; once one exists, only admins may promote.
func BootstrapAdmin(c *gin.Context) {
	lang := requestLanguage(c)
	ctx := c.Request.Context()

	uid, ok := utils.GetUidFromContext(ctx)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, utils.MsgTokenRequired, lang)
		return
	}
	userId, _ := utils.GetUserIdFromContext(ctx)

	isAdmin, _ := utils.GetIsAdminFromContext(ctx)
	if !isAdmin {
		var input bootstrapInput
		_ = c.ShouldBindJSON(&input)

		secret := os.Getenv("ADMIN_BOOTSTRAP_SECRET")
		if secret == "" || input.Secret != secret {
			utils.RespondError(c, http.StatusForbidden, utils.MsgAdminRequired, lang)
			return
		}

		// the bootstrap secret only works while no admin exists
		count, err := utils.ResourceCountWhere[models.User](ctx, "role = ?", models.UserRoleAdmin)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, utils.MsgInternalError, lang)
			return
		}
		if count > 0 {
			utils.RespondError(c, http.StatusForbidden, utils.MsgAdminRequired, lang)
			return
		}
	}

	targetUid := c.DefaultQuery("uid", uid)
	targetUserId := userId

	if targetUid != uid {
		target, err := models.GetUserByFirebaseUid(ctx, targetUid)
		if err != nil {
			respondModelError(c, err, utils.MsgUserNotFound)
			return
		}
		targetUserId = target.ID.String()
	}

	if err := config.SetFirebaseClaims(ctx, targetUid, map[string]interface{}{
		"role": string(models.UserRoleAdmin),
	}); err != nil {
		config.LogError(config.GetLogger(), "handlers", "BootstrapAdmin", "set claims", targetUid, err)
		utils.RespondError(c, http.StatusInternalServerError, utils.MsgInternalError, lang)
		return
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", targetUserId).
		Update("role", models.UserRoleAdmin).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, utils.MsgInternalError, lang)
		return
	}
	// drop the stale cached user
	_ = config.RemoveRedisKey("User:uid:" + targetUid)

	c.JSON(http.StatusOK, gin.H{"message": "admin claims set", "uid": targetUid})
}

type adminCreateUserInput struct {
	Email             string          `json:"email" binding:"required,email"`
	Password          string          `json:"password" binding:"required,min=8"`
	DisplayName       string          `json:"display_name" binding:"required"`
	PhoneNumber       string          `json:"phone_number"`
	PreferredLanguage models.Language `json:"preferred_language"`
	Role              models.UserRole `json:"role" binding:"required"`
}

// CreateUserWithRole provisions an account on someone else's behalf: same
// saga as self-registration plus the role claim. Welcome email best-effort.
func CreateUserWithRole(c *gin.Context) {
	lang := requestLanguage(c)

	var input adminCreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}
	if !input.Role.Valid() {
		utils.RespondError(c, http.StatusBadRequest, utils.MsgInvalidRole, lang)
		return
	}

	ctx := c.Request.Context()

	var (
		firebaseUid string
		user        *models.User
	)

	saga := workflow.Saga{
		Name: "admin create user",
		Steps: []workflow.Step{
			{
				Name: "create firebase user",
				Run: func(ctx context.Context) error {
					record, err := config.CreateFirebaseUser(ctx, input.Email, input.Password, input.DisplayName)
					if err != nil {
						return err
					}
					firebaseUid = record.UID
					return nil
				},
				Compensate: func(ctx context.Context) error {
					return config.DeleteFirebaseUser(ctx, firebaseUid)
				},
			},
			{
				Name: "create user row",
				Run: func(ctx context.Context) error {
					created, err := models.CreateUser(ctx, &models.NewUser{
						FirebaseUid:       firebaseUid,
						Email:             input.Email,
						PhoneNumber:       input.PhoneNumber,
						DisplayName:       input.DisplayName,
						PreferredLanguage: input.PreferredLanguage,
						Role:              input.Role,
					})
					if err != nil {
						return err
					}
					user = created
					return nil
				},
				Compensate: func(ctx context.Context) error {
					return models.DeleteUserById(ctx, user.ID.String())
				},
			},
			{
				Name: "set role claim",
				Run: func(ctx context.Context) error {
					return config.SetFirebaseClaims(ctx, firebaseUid, map[string]interface{}{
						"role": string(input.Role),
					})
				},
			},
		},
	}

	if err := saga.Execute(ctx); err != nil {
		switch {
		case config.IsFirebaseEmailExists(err) || utils.IsUniqueViolation(err):
			utils.RespondError(c, http.StatusConflict, utils.MsgEmailAlreadyExists, lang)
		case config.IsFirebaseWeakPassword(err):
			utils.RespondError(c, http.StatusBadRequest, utils.MsgWeakPassword, lang)
		default:
			config.LogError(config.GetLogger(), "handlers", "CreateUserWithRole", "admin create saga", input.Email, err)
			utils.RespondError(c, http.StatusInternalServerError, utils.MsgRegistrationFailed, lang)
		}
		return
	}

	if mailer.Ready() {
		if err := mailer.SendWelcomeEmail(user.Email, user.DisplayName, user.PreferredLanguage); err != nil {
			config.LogError(config.GetLogger(), "handlers", "CreateUserWithRole", "welcome email", user.Email, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type setRoleInput struct {
	Role models.UserRole `json:"role" binding:"required"`
}

// SetUserRole changes an existing user's role. The Firebase claim and the DB
// row move together; the cached row is invalidated in the model.
func SetUserRole(c *gin.Context) {
	lang := requestLanguage(c)
	ctx := c.Request.Context()

	var input setRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}
	if !input.Role.Valid() {
		utils.RespondError(c, http.StatusBadRequest, utils.MsgInvalidRole, lang)
		return
	}

	targetUid := c.Param("uid")
	target, err := models.GetUserByFirebaseUid(ctx, targetUid)
	if err != nil {
		respondModelError(c, err, utils.MsgUserNotFound)
		return
	}

	if err := config.SetFirebaseClaims(ctx, targetUid, map[string]interface{}{
		"role": string(input.Role),
	}); err != nil {
		config.LogError(config.GetLogger(), "handlers", "SetUserRole", "set claims", targetUid, err)
		utils.RespondError(c, http.StatusInternalServerError, utils.MsgInternalError, lang)
		return
	}

	user, err := models.SetUserRole(ctx, target.ID.String(), input.Role)
	if err != nil {
		respondModelError(c, err, utils.MsgUserNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"uid": targetUid, "role": user.Role})
}

type adminProfileInput struct {
	TargetFirebaseUid string `json:"target_firebase_uid" binding:"required"`
	models.NewBusinessProfile
}

// CreateBusinessProfileForUser creates a profile on behalf of another
// identity (partner onboarding flows).
func CreateBusinessProfileForUser(c *gin.Context) {
	lang := requestLanguage(c)
	ctx := c.Request.Context()

	var input adminProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	target, err := models.GetUserByFirebaseUid(ctx, input.TargetFirebaseUid)
	if err != nil {
		respondModelError(c, err, utils.MsgUserNotFound)
		return
	}

	profile, err := models.CreateBusinessProfile(ctx, target.ID.String(), &input.NewBusinessProfile)
	if err != nil {
		if utils.IsUniqueViolation(err) {
			utils.RespondError(c, http.StatusConflict, utils.MsgBusinessProfileExists, lang)
			return
		}
		respondBadRequest(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"business_profile": profile})
}

type verifyInput struct {
	Status models.VerificationStatus `json:"status" binding:"required"`
}

// VerifyBusinessProfile is the admin review decision. The owner's Firebase
// claims mirror the verified flag, and they get notified by email.
func VerifyBusinessProfile(c *gin.Context) {
	ctx := c.Request.Context()

	var input verifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	profile, err := models.SetVerificationStatus(ctx, c.Param("id"), input.Status)
	if err != nil {
		if utils.IsNotFound(err) {
			respondModelError(c, err, utils.MsgBusinessProfileNotFound)
			return
		}
		respondBadRequest(c, err)
		return
	}

	owner, err := models.GetUserById(ctx, profile.UserId.String())
	if err == nil {
		approved := input.Status == models.VerificationStatusApproved

		if err := config.SetFirebaseClaims(ctx, owner.FirebaseUid, map[string]interface{}{
			"role":         string(owner.Role),
			"region":       string(profile.Region),
			"businessType": string(profile.BusinessType),
			"verified":     approved,
		}); err != nil {
			config.LogError(config.GetLogger(), "handlers", "VerifyBusinessProfile", "set claims", owner.FirebaseUid, err)
		}

		if mailer.Ready() {
			if err := mailer.SendVerificationEmail(owner.Email, profile.Name, approved, owner.PreferredLanguage); err != nil {
				config.LogError(config.GetLogger(), "handlers", "VerifyBusinessProfile", "verification email", owner.Email, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"business_profile": profile})
}

// BusinessProfilesReport streams the xlsx export.
func BusinessProfilesReport(c *gin.Context) {
	lang := requestLanguage(c)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=business-profiles.xlsx")

	if err := reports.ExportBusinessProfilesExcel(c.Request.Context(), c.Writer); err != nil {
		config.LogError(config.GetLogger(), "handlers", "BusinessProfilesReport", "export", "", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.MsgInternalError, lang)
	}
}
