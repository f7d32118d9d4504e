package models

// SiteContent is everything the landing page renders
type SiteContent struct {
	Brand      string        `json:"brand"`
	Navigation []NavLink     `json:"navigation"`
	Hero       Hero          `json:"hero"`
	About      About         `json:"about"`
	Services   []Feature     `json:"services"`
	Process    []ProcessStep `json:"process"`
	WhyUs      []Feature     `json:"why_us"`
	Contact    ContactInfo   `json:"contact"`
}

// NavLink is an in-page anchor
type NavLink struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// Hero is the top section; RotatingWords cycle after the headline
type Hero struct {
	Headline      string   `json:"headline"`
	RotatingWords []string `json:"rotating_words"`
	Subheadline   string   `json:"subheadline"`
	Stats         []Stat   `json:"stats"`
}

// Stat is a counter such as "99.9%" / "Uptime"
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type About struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Stats       []Stat    `json:"stats"`
	Values      []Feature `json:"values"`
}

// Feature is a titled card used by services, values and differentiators
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ProcessStep struct {
	Number      string `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ContactInfo struct {
	Email      string `json:"email"`
	EmailNote  string `json:"email_note"`
	Phone      string `json:"phone"`
	PhoneHref  string `json:"phone_href"`
	PhoneHours string `json:"phone_hours"`
	// Endpoint is where the contact form posts its JSON submission
	Endpoint string `json:"endpoint"`
}
