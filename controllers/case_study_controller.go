package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uxdsrini/studio-api/services"
)

// GetSiteContent handles GET /api/v1/content/site - the marketing sections
// for the home view plus the case-study summaries
func GetSiteContent(c *gin.Context) {
	content := services.GetContentService()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"site":         content.GetSiteContent(),
			"case_studies": content.ListCaseStudies(),
		},
	})
}

// ListCaseStudies handles GET /api/v1/case-studies - all case studies in
// display order
func ListCaseStudies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.GetContentService().ListCaseStudies(),
	})
}

// GetCaseStudy handles GET /api/v1/case-studies/:id - one case study by id.
// An unknown id is a terminal not-found state, answered with a link home.
func GetCaseStudy(c *gin.Context) {
	id := c.Param("id")

	study, ok := services.GetContentService().GetCaseStudy(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CASE_STUDY_NOT_FOUND",
				"message": "Case Study Not Found",
			},
			"links": gin.H{
				"home": "/",
			},
		})
		return
	}

	// An uploaded image overrides the stock thumbnail
	if study.ImageKey != "" {
		if imageService := services.GetImageService(); imageService != nil {
			url, err := imageService.GetImageURL(study.ImageKey)
			if err != nil {
				log.Printf("failed to resolve case study image %s: %v", study.ImageKey, err)
			} else if url != "" {
				study.Thumbnail = url
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    study,
	})
}
