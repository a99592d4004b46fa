package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uxdsrini/studio-api/services"
	"github.com/uxdsrini/studio-api/utils"
)

// UploadCaseStudyImage handles POST /api/v1/admin/case-studies/:id/image -
// uploads a PNG image for a case study and records its storage key
func UploadCaseStudyImage(c *gin.Context) {
	id := c.Param("id")

	content := services.GetContentService()
	if _, ok := content.GetCaseStudy(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CASE_STUDY_NOT_FOUND",
				"message": "Case Study Not Found",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "An image file is required",
			},
		})
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOADS_DISABLED",
				"message": "Image uploads are not configured",
			},
		})
		return
	}

	imageKey, err := imageService.UploadImage(fileHeader)
	if err != nil {
		// Validation errors carry their own code; everything else is a
		// storage failure
		if uploadErr, ok := err.(*utils.FileUploadError); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to upload image",
			},
		})
		return
	}

	if err := content.SetCaseStudyImage(id, imageKey); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONTENT_UPDATE_FAILED",
				"message": "Failed to attach image to case study",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"image_key": imageKey,
		},
	})
}
