package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/miharina-tech/miharina_backend/models"
	"github.com/miharina-tech/miharina_backend/utils"
)

func CreateOpportunity(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	var input models.NewOpportunity
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	opp, err := models.CreateOpportunity(ctx, userId, &input)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"opportunity": opp})
}

// ListOpportunities is public; defaults to active, unexpired entries.
func ListOpportunities(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))

	filter := models.OpportunityFilter{
		BusinessType: models.BusinessType(c.Query("businessType")),
		Industry:     c.Query("industry"),
		Status:       models.OpportunityStatus(c.Query("status")),
		Page:         page,
		PageSize:     pageSize,
	}

	opps, total, err := models.ListOpportunities(ctx, filter)
	if err != nil {
		respondModelError(c, err, utils.MsgOpportunityNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"opportunities": opps, "total": total})
}

func GetOpportunity(c *gin.Context) {
	opp, err := models.GetOpportunityById(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondModelError(c, err, utils.MsgOpportunityNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"opportunity": opp})
}

func ListMyOpportunities(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	opps, err := models.ListOpportunitiesByUser(ctx, userId)
	if err != nil {
		respondModelError(c, err, utils.MsgOpportunityNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"opportunities": opps})
}

func UpdateOpportunity(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	var input models.NewOpportunity
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	opp, err := models.UpdateOpportunity(ctx, c.Param("id"), userId, &input)
	if err != nil {
		if utils.IsNotFound(err) || err == utils.ErrorForbidden {
			respondModelError(c, err, utils.MsgOpportunityNotFound)
			return
		}
		respondBadRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"opportunity": opp})
}

// DeleteOpportunity closes rather than deletes.
func DeleteOpportunity(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)
	isAdmin, _ := utils.GetIsAdminFromContext(ctx)

	if err := models.CloseOpportunity(ctx, c.Param("id"), userId, isAdmin); err != nil {
		respondModelError(c, err, utils.MsgOpportunityNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "opportunity closed"})
}
