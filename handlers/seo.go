package handlers

import "softmatrices_site_go/models"

const (
	landingTitle       = "Softmatrices - IT Consulting, Cloud & Software Development"
	landingDescription = "Softmatrices helps businesses grow with cloud solutions, custom app development, security consulting and AI/ML integration, backed by 24/7 support."
	landingKeywords    = "IT consulting, cloud solutions, app development, security consulting, AI integration, machine learning"
)

// GetLandingSEO returns the landing page metadata for the site served at appURL.
// Only production deployments are indexable.
func GetLandingSEO(appURL, environment string) *models.SEO {
	return models.DefaultSEO(landingTitle, landingDescription).
		WithKeywords(landingKeywords).
		WithCanonical(appURL + "/").
		Indexable(environment == "production")
}
