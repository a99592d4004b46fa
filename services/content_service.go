package services

// CaseStudy is one portfolio entry. The detail page is rendered entirely
// from this record; ImageKey, when set, points at an uploaded image in S3
// that overrides Thumbnail.
type CaseStudy struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Client    string   `json:"client"`
	Duration  string   `json:"duration"`
	Impact    string   `json:"impact"`
	Thumbnail string   `json:"thumbnail"`
	ImageKey  string   `json:"-"`
	Challenge string   `json:"challenge"`
	Solution  string   `json:"solution"`
	Process   []string `json:"process"`
	Results   []string `json:"results"`
	Images    []string `json:"images"`
	Tags      []string `json:"tags"`
}

// SiteService is one entry of the services marketing section
type SiteService struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SiteContent is the marketing content for the home view
type SiteContent struct {
	HeroTitle    string        `json:"hero_title"`
	AboutHeading string        `json:"about_heading"`
	AboutText    string        `json:"about_text"`
	Services     []SiteService `json:"services"`
}

// ContentService owns the site's editorial content: the marketing sections
// and the keyed case-study mapping. Views never hold content literals.
type ContentService interface {
	// GetSiteContent returns the marketing sections for the home view
	GetSiteContent() SiteContent

	// ListCaseStudies returns all case studies in display order
	ListCaseStudies() []CaseStudy

	// GetCaseStudy looks up a case study by id; ok is false for unknown ids
	GetCaseStudy(id string) (CaseStudy, bool)

	// SetCaseStudyImage records the uploaded image key for a case study
	SetCaseStudyImage(id, imageKey string) error
}

var contentServiceInstance ContentService

// GetContentService returns the initialized content service instance
func GetContentService() ContentService {
	return contentServiceInstance
}

// SetContentService sets the content service instance (primarily for testing)
func SetContentService(service ContentService) {
	contentServiceInstance = service
}
