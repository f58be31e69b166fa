package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/miharina-tech/miharina_backend/config"
	"github.com/miharina-tech/miharina_backend/models"
	"github.com/miharina-tech/miharina_backend/utils"
)

func CreateBusinessProfile(c *gin.Context) {
	lang := requestLanguage(c)
	ctx := c.Request.Context()

	userId, _ := utils.GetUserIdFromContext(ctx)

	var input models.NewBusinessProfile
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	profile, err := models.CreateBusinessProfile(ctx, userId, &input)
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

// SearchBusinessProfiles is the public directory listing.
func SearchBusinessProfiles(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))

	filter := models.BusinessProfileFilter{
		Region:       models.Region(c.Query("region")),
		BusinessType: models.BusinessType(c.Query("businessType")),
		Sector:       c.Query("sector"),
		Query:        c.Query("q"),
		Page:         page,
		PageSize:     pageSize,
	}

	profiles, total, err := models.SearchBusinessProfiles(ctx, filter)
	if err != nil {
		respondModelError(c, err, utils.MsgBusinessProfileNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"business_profiles": profiles, "total": total})
}

// GetBusinessProfile is public; an authenticated view is recorded for the
// owner's analytics, best-effort.
func GetBusinessProfile(c *gin.Context) {
	ctx := c.Request.Context()

	profile, err := models.GetBusinessProfileById(ctx, c.Param("id"))
	if err != nil {
		respondModelError(c, err, utils.MsgBusinessProfileNotFound)
		return
	}

	if viewerId, ok := utils.GetUserIdFromContext(ctx); ok {
		if err := models.RecordProfileView(ctx, profile, viewerId); err != nil {
			config.LogError(config.GetLogger(), "handlers", "GetBusinessProfile", "record view", profile.ID.String(), err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"business_profile": profile})
}

func GetMyBusinessProfile(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	profile, err := models.GetBusinessProfileByUserId(ctx, userId)
	if err != nil {
		respondModelError(c, err, utils.MsgBusinessProfileNotFound)
		return
	}

	views, _ := models.CountProfileViews(ctx, profile.ID.String())
	c.JSON(http.StatusOK, gin.H{"business_profile": profile, "profile_views": views})
}

func UpdateBusinessProfile(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	var input models.NewBusinessProfile
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	profile, err := models.UpdateBusinessProfile(ctx, c.Param("id"), userId, &input)
	if err != nil {
		if utils.IsNotFound(err) || err == utils.ErrorForbidden {
			respondModelError(c, err, utils.MsgBusinessProfileNotFound)
			return
		}
		respondBadRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"business_profile": profile})
}

func DeleteBusinessProfile(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)
	isAdmin, _ := utils.GetIsAdminFromContext(ctx)

	if err := models.DeleteBusinessProfile(ctx, c.Param("id"), userId, isAdmin); err != nil {
		respondModelError(c, err, utils.MsgBusinessProfileNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "business profile deactivated"})
}

// ContactBusiness records a contact request against the profile.
func ContactBusiness(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	var input models.NewContactRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	req, err := models.CreateContactRequest(ctx, c.Param("id"), userId, &input)
	if err != nil {
		if utils.IsNotFound(err) {
			respondModelError(c, err, utils.MsgBusinessProfileNotFound)
			return
		}
		respondBadRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contact_request": req})
}
