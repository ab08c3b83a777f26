package controllers

import (
	"fmt"
	"net/http"

	"backend/utils"

	"github.com/gin-gonic/gin"
)

type PhotoUploadInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// UploadPhoto stores a log-entry photo and returns its public URL, which
// the client then attaches to the entry when it logs the food.
func UploadPhoto(c *gin.Context) {
	uid := c.GetUint("userID")

	var input PhotoUploadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	image, contentType, err := utils.DecodeBase64Image(input.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := utils.UploadFoodPhoto(image, contentType, fmt.Sprintf("user-%d", uid))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
