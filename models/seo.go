package models

// SEO holds the head metadata rendered on the landing page
type SEO struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	Locale      string
	// NoIndex keeps non-production deployments out of search results
	NoIndex bool
}

// DefaultSEO returns metadata for an indexable English page
func DefaultSEO(title, description string) *SEO {
	return &SEO{Title: title, Description: description, Locale: "en"}
}

func (s *SEO) WithCanonical(url string) *SEO {
	s.Canonical = url
	return s
}

func (s *SEO) WithKeywords(keywords string) *SEO {
	s.Keywords = keywords
	return s
}

// Indexable sets NoIndex from whether the deployment should be crawled
func (s *SEO) Indexable(indexable bool) *SEO {
	s.NoIndex = !indexable
	return s
}

// OGType is always "website"; the site has a single page
func (s *SEO) OGType() string { return "website" }

// Robots returns the robots meta directive
func (s *SEO) Robots() string {
	if s.NoIndex {
		return "noindex, nofollow"
	}
	return "index, follow"
}
