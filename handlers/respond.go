package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/miharina-tech/miharina_backend/models"
	"github.com/miharina-tech/miharina_backend/utils"
)

func requestLanguage(c *gin.Context) string {
	if lang, ok := utils.GetLanguageFromContext(c.Request.Context()); ok {
		return lang
	}
	return string(models.LanguageFrench)
}

// respondModelError maps the model error taxonomy onto HTTP statuses;
// notFound is the resource-specific 404 copy.
func respondModelError(c *gin.Context, err error, notFound utils.Message) {
	lang := requestLanguage(c)
	switch {
	case utils.IsNotFound(err):
		utils.RespondError(c, http.StatusNotFound, notFound, lang)
	case err == utils.ErrorForbidden:
		utils.RespondError(c, http.StatusForbidden, utils.MsgForbidden, lang)
	case utils.IsUniqueViolation(err):
		utils.RespondError(c, http.StatusConflict, utils.MsgValidationFailed, lang)
	default:
		utils.RespondError(c, http.StatusInternalServerError, utils.MsgInternalError, lang)
	}
}

// respondBadRequest wraps a model-level validation failure (enum, phone,
// range checks) in the standard payload.
func respondBadRequest(c *gin.Context, err error) {
	lang := requestLanguage(c)
	msg := utils.MsgValidationFailed
	c.JSON(http.StatusBadRequest, gin.H{
		"error":    msg.ForLanguage(lang),
		"error_fr": msg.Fr,
		"error_mg": msg.Mg,
		"error_en": msg.En,
		"details":  gin.H{"message": err.Error()},
	})
}

// respondValidationError returns the concrete message in the `details`
// field alongside the catalog copy.
func respondValidationError(c *gin.Context, err error) {
	lang := requestLanguage(c)
	msg := utils.MsgValidationFailed
	c.JSON(http.StatusBadRequest, gin.H{
		"error":    msg.ForLanguage(lang),
		"error_fr": msg.Fr,
		"error_mg": msg.Mg,
		"error_en": msg.En,
		"details":  utils.ProcessValidationErrors(err),
	})
}
