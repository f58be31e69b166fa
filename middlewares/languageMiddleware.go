package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/miharina-tech/miharina_backend/models"
	"github.com/miharina-tech/miharina_backend/utils"
)

// LanguageMiddleware resolves the request language from X-User-Language,
// then Accept-Language, defaulting to French.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := requestLanguage(c)
		c.Request = c.Request.WithContext(
			utils.SetLanguageInContext(c.Request.Context(), lang))
		c.Next()
	}
}

func requestLanguage(c *gin.Context) string {
	if lang, ok := utils.GetLanguageFromContext(c.Request.Context()); ok {
		return lang
	}

	if v := c.GetHeader("X-User-Language"); v != "" {
		if l := normalizeLanguage(v); l != "" {
			return l
		}
	}

	// Accept-Language: take the first supported tag
	for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if l := normalizeLanguage(tag); l != "" {
			return l
		}
	}

	return string(models.LanguageFrench)
}

func normalizeLanguage(tag string) string {
	tag = strings.ToLower(tag)
	if i := strings.Index(tag, "-"); i > 0 {
		tag = tag[:i]
	}
	if models.Language(tag).Valid() {
		return tag
	}
	return ""
}
