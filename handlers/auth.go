package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/miharina-tech/miharina_backend/config"
	"github.com/miharina-tech/miharina_backend/mailer"
	"github.com/miharina-tech/miharina_backend/models"
	"github.com/miharina-tech/miharina_backend/utils"
	"github.com/miharina-tech/miharina_backend/workflow"
)

type registerInput struct {
	Email             string          `json:"email" binding:"required,email"`
	Password          string          `json:"password" binding:"required,min=8"`
	DisplayName       string          `json:"display_name" binding:"required"`
	PhoneNumber       string          `json:"phone_number"`
	PreferredLanguage models.Language `json:"preferred_language"`
}

// Register runs the signup saga: Firebase user, DB row, welcome email — any
// failure rolls back the earlier steps in reverse order.
func Register(c *gin.Context) {
	lang := requestLanguage(c)

	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	// email delivery is part of the contract; refuse rather than half-register
	if !mailer.Ready() {
		utils.RespondError(c, http.StatusServiceUnavailable, utils.MsgEmailServiceUnavailable, lang)
		return
	}

	ctx := c.Request.Context()

	var (
		firebaseUid string
		user        *models.User
	)

	saga := workflow.Saga{
		Name: "register",
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
				Name: "send welcome email",
				Run: func(ctx context.Context) error {
					return mailer.SendWelcomeEmail(input.Email, input.DisplayName, user.PreferredLanguage)
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
			config.LogError(config.GetLogger(), "handlers", "Register", "registration saga", input.Email, err)
			utils.RespondError(c, http.StatusInternalServerError, utils.MsgRegistrationFailed, lang)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type loginInput struct {
	IdToken string `json:"id_token"`
}

// Login verifies the client-obtained Firebase ID token and upserts the DB
// row, stamping last_login_at. First-ever login also gets the welcome email,
// best-effort.
func Login(c *gin.Context) {
	lang := requestLanguage(c)

	var input loginInput
	_ = c.ShouldBindJSON(&input)

	token := input.IdToken
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	if token == "" {
		utils.RespondError(c, http.StatusUnauthorized, utils.MsgTokenRequired, lang)
		return
	}

	ctx := c.Request.Context()
	decoded, err := config.VerifyIDToken(ctx, token)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, utils.MsgInvalidToken, lang)
		return
	}

	email, _ := decoded.Claims["email"].(string)
	displayName, _ := decoded.Claims["name"].(string)

	user, created, err := models.UpsertUserFromLogin(ctx, decoded.UID, email, displayName)
	if err != nil {
		config.LogError(config.GetLogger(), "handlers", "Login", "login upsert", decoded.UID, err)
		utils.RespondError(c, http.StatusInternalServerError, utils.MsgInternalError, lang)
		return
	}

	if created && mailer.Ready() {
		if err := mailer.SendWelcomeEmail(user.Email, user.DisplayName, user.PreferredLanguage); err != nil {
			config.LogError(config.GetLogger(), "handlers", "Login", "welcome email", user.Email, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "created": created})
}

// Logout revokes the caller's refresh tokens; existing ID tokens lapse at
// their natural expiry.
func Logout(c *gin.Context) {
	lang := requestLanguage(c)
	ctx := c.Request.Context()

	uid, ok := utils.GetUidFromContext(ctx)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, utils.MsgTokenRequired, lang)
		return
	}

	if err := config.RevokeFirebaseTokens(ctx, uid); err != nil {
		config.LogError(config.GetLogger(), "handlers", "Logout", "revoke tokens", uid, err)
		utils.RespondError(c, http.StatusInternalServerError, utils.MsgInternalError, lang)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// RefreshToken mints a custom token the client exchanges for a fresh ID
// token through the Firebase client SDK.
func RefreshToken(c *gin.Context) {
	lang := requestLanguage(c)
	ctx := c.Request.Context()

	uid, ok := utils.GetUidFromContext(ctx)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, utils.MsgTokenRequired, lang)
		return
	}

	customToken, err := config.MintCustomToken(ctx, uid)
	if err != nil {
		config.LogError(config.GetLogger(), "handlers", "RefreshToken", "mint custom token", uid, err)
		utils.RespondError(c, http.StatusInternalServerError, utils.MsgInternalError, lang)
		return
	}
	c.JSON(http.StatusOK, gin.H{"custom_token": customToken})
}

// Me returns the caller's user row plus their business profile when one
// exists.
func Me(c *gin.Context) {
	lang := requestLanguage(c)
	ctx := c.Request.Context()

	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, utils.MsgUserNotFound, lang)
		return
	}

	user, err := models.GetUserById(ctx, userId)
	if err != nil {
		respondModelError(c, err, utils.MsgUserNotFound)
		return
	}

	resp := gin.H{"user": user}
	if profile, err := models.GetBusinessProfileByUserId(ctx, userId); err == nil {
		resp["business_profile"] = profile
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateProfile is the partial update of the caller's own user row.
func UpdateProfile(c *gin.Context) {
	lang := requestLanguage(c)
	ctx := c.Request.Context()

	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, utils.MsgUserNotFound, lang)
		return
	}

	var input models.UpdateUserProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := models.UpdateUserProfile(ctx, userId, &input)
	if err != nil {
		if utils.IsNotFound(err) {
			respondModelError(c, err, utils.MsgUserNotFound)
			return
		}
		// validation errors from the model (phone, language)
		respondBadRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
