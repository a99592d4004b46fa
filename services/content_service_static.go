package services

import (
	"fmt"
	"sync"
)

// StaticContentService implements ContentService from an in-memory keyed
// mapping seeded at startup.
type StaticContentService struct {
	mu          sync.RWMutex
	site        SiteContent
	order       []string
	caseStudies map[string]CaseStudy
}

// InitContentService initializes the content service with the studio's
// default content.
func InitContentService() ContentService {
	contentServiceInstance = NewStaticContentService(defaultSiteContent, defaultCaseStudies)
	return contentServiceInstance
}

// NewStaticContentService builds a content service from explicit content.
// Case studies keep the given display order.
func NewStaticContentService(site SiteContent, caseStudies []CaseStudy) *StaticContentService {
	s := &StaticContentService{
		site:        site,
		caseStudies: make(map[string]CaseStudy, len(caseStudies)),
	}
	for _, cs := range caseStudies {
		s.order = append(s.order, cs.ID)
		s.caseStudies[cs.ID] = cs
	}
	return s
}

// GetSiteContent returns the marketing sections for the home view
func (s *StaticContentService) GetSiteContent() SiteContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.site
}

// ListCaseStudies returns all case studies in display order
func (s *StaticContentService) ListCaseStudies() []CaseStudy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	studies := make([]CaseStudy, 0, len(s.order))
	for _, id := range s.order {
		studies = append(studies, s.caseStudies[id])
	}
	return studies
}

// GetCaseStudy looks up a case study by id
func (s *StaticContentService) GetCaseStudy(id string) (CaseStudy, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cs, ok := s.caseStudies[id]
	return cs, ok
}

// SetCaseStudyImage records the uploaded image key for a case study
func (s *StaticContentService) SetCaseStudyImage(id, imageKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs, ok := s.caseStudies[id]
	if !ok {
		return fmt.Errorf("case study not found: %s", id)
	}
	cs.ImageKey = imageKey
	s.caseStudies[id] = cs
	return nil
}

var defaultSiteContent = SiteContent{
	HeroTitle:    "UX Design Excellence",
	AboutHeading: "About Me",
	AboutText: "I'm a passionate UX designer with over 8 years of experience in creating " +
		"intuitive and engaging digital experiences. My approach combines user-centered " +
		"design with business goals.",
	Services: []SiteService{
		{
			Title:       "UX Design",
			Description: "Creating intuitive user experiences through research, wireframing, and prototyping.",
		},
		{
			Title:       "Graphic Design",
			Description: "Crafting visually appealing designs that communicate your brand message effectively.",
		},
		{
			Title:       "Share Thoughts & Ideas",
			Description: "Collaborative sessions to brainstorm and develop innovative solutions for your projects.",
		},
	},
}

var defaultCaseStudies = []CaseStudy{
	{
		ID:        "ecommerce-redesign",
		Title:     "E-commerce Redesign",
		Client:    "Fashion Retailer",
		Duration:  "3 months",
		Impact:    "40% conversion increase",
		Thumbnail: "https://images.unsplash.com/photo-1460925895917-afdab827c52f?auto=format&fit=crop&q=80",
		Challenge: "The client's e-commerce platform had a high cart abandonment rate and poor mobile experience, leading to lost sales and customer frustration.",
		Solution:  "We conducted extensive user research and redesigned the entire shopping experience with a focus on mobile-first design, streamlined checkout process, and improved product discovery.",
		Process: []string{
			"User Research & Analysis",
			"Information Architecture",
			"Wireframing & Prototyping",
			"Usability Testing",
			"Visual Design",
			"Implementation Support",
		},
		Results: []string{
			"40% increase in conversion rate",
			"65% reduction in cart abandonment",
			"85% increase in mobile sales",
			"92% positive user feedback",
		},
		Images: []string{
			"https://images.unsplash.com/photo-1432888622747-4eb9a8efeb07?auto=format&fit=crop&q=80",
			"https://images.unsplash.com/photo-1507238691740-187a5b1d37b8?auto=format&fit=crop&q=80",
		},
		Tags: []string{"UX Design", "UI Design", "Research"},
	},
	{
		ID:        "banking-app",
		Title:     "Banking App UI",
		Client:    "FinTech Startup",
		Duration:  "4 months",
		Impact:    "85% user satisfaction",
		Thumbnail: "https://images.unsplash.com/photo-1563986768609-322da13575f3?auto=format&fit=crop&q=80",
		Challenge: "The existing banking app was complex and difficult to navigate, resulting in poor user satisfaction and increased support calls.",
		Solution:  "We simplified the interface and implemented intuitive navigation patterns while maintaining robust security features.",
		Process: []string{
			"User Research",
			"Security Analysis",
			"UI/UX Design",
			"Prototyping",
			"User Testing",
			"Implementation",
		},
		Results: []string{
			"85% user satisfaction score",
			"50% reduction in support calls",
			"90% task completion rate",
			"95% security compliance",
		},
		Images: []string{
			"https://images.unsplash.com/photo-1563986768494-4dee9056b3c7?auto=format&fit=crop&q=80",
			"https://images.unsplash.com/photo-1563986768517-527195c3c5fc?auto=format&fit=crop&q=80",
		},
		Tags: []string{"Mobile App", "FinTech", "UI Design"},
	},
	{
		ID:        "healthcare-platform",
		Title:     "Healthcare Platform",
		Client:    "Medical Services",
		Duration:  "6 months",
		Impact:    "92% task completion",
		Thumbnail: "https://images.unsplash.com/photo-1576091160399-112ba8d25d1d?auto=format&fit=crop&q=80",
		Challenge: "Healthcare providers needed a more efficient way to manage patient data and appointments while ensuring HIPAA compliance.",
		Solution:  "We developed a comprehensive platform that streamlines patient management while maintaining strict security and privacy standards.",
		Process: []string{
			"Stakeholder Interviews",
			"Workflow Analysis",
			"HIPAA Compliance Review",
			"UX Design",
			"Security Testing",
			"Staff Training",
		},
		Results: []string{
			"92% task completion rate",
			"75% reduction in paperwork",
			"99.9% uptime",
			"100% HIPAA compliance",
		},
		Images: []string{
			"https://images.unsplash.com/photo-1576091160550-2173dba999ef?auto=format&fit=crop&q=80",
			"https://images.unsplash.com/photo-1576091160291-258c4c2d2e76?auto=format&fit=crop&q=80",
		},
		Tags: []string{"Healthcare", "UX Research", "Design System"},
	},
}
