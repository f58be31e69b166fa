package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/miharina-tech/miharina_backend/models"
	"github.com/miharina-tech/miharina_backend/utils"
)

func CreateSuccessStory(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	var input models.NewSuccessStory
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	story, err := models.CreateSuccessStory(ctx, userId, &input)
	if err != nil {
		if utils.IsNotFound(err) || err == utils.ErrorForbidden {
			respondModelError(c, err, utils.MsgBusinessProfileNotFound)
			return
		}
		respondBadRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success_story": story})
}

func ListSuccessStories(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))

	stories, total, err := models.ListPublishedSuccessStories(ctx, page, pageSize)
	if err != nil {
		respondModelError(c, err, utils.MsgSuccessStoryNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success_stories": stories, "total": total})
}

// GetSuccessStory is public for published stories; drafts only for their
// author.
func GetSuccessStory(c *gin.Context) {
	lang := requestLanguage(c)
	ctx := c.Request.Context()

	story, err := models.GetSuccessStoryById(ctx, c.Param("id"))
	if err != nil {
		respondModelError(c, err, utils.MsgSuccessStoryNotFound)
		return
	}

	if story.IsPublished == nil || !*story.IsPublished {
		userId, _ := utils.GetUserIdFromContext(ctx)
		if story.CreatedBy.String() != userId {
			utils.RespondError(c, http.StatusNotFound, utils.MsgSuccessStoryNotFound, lang)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success_story": story})
}

func ListMySuccessStories(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	stories, err := models.ListSuccessStoriesByUser(ctx, userId)
	if err != nil {
		respondModelError(c, err, utils.MsgSuccessStoryNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success_stories": stories})
}

func UpdateSuccessStory(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)

	var input models.NewSuccessStory
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	story, err := models.UpdateSuccessStory(ctx, c.Param("id"), userId, &input)
	if err != nil {
		respondModelError(c, err, utils.MsgSuccessStoryNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success_story": story})
}

func DeleteSuccessStory(c *gin.Context) {
	ctx := c.Request.Context()
	userId, _ := utils.GetUserIdFromContext(ctx)
	isAdmin, _ := utils.GetIsAdminFromContext(ctx)

	if err := models.DeleteSuccessStory(ctx, c.Param("id"), userId, isAdmin); err != nil {
		respondModelError(c, err, utils.MsgSuccessStoryNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success story deleted"})
}
