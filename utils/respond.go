package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondError writes the multilingual error payload: `error` carries the
// copy in the request language, the per-language fields let clients switch
// without a round trip.
func RespondError(c *gin.Context, status int, msg Message, lang string) {
	c.JSON(status, gin.H{
		"error":    msg.ForLanguage(lang),
		"error_fr": msg.Fr,
		"error_mg": msg.Mg,
		"error_en": msg.En,
	})
}

// AbortError is RespondError plus request abort, for middlewares.
func AbortError(c *gin.Context, status int, msg Message, lang string) {
	RespondError(c, status, msg, lang)
	c.Abort()
}
