package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/miharina-tech/miharina_backend/models"
)

func ListRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regions": models.MadagascarRegions})
}

func ListBusinessTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"business_types": models.MadagascarBusinessTypes})
}
