package services

import "softmatrices_site_go/models"

// ContactEndpoint is the path the landing page form posts to
const ContactEndpoint = "/api/contact"

var serviceFeatures = []models.Feature{
	{Title: "Cloud Solutions", Description: "Scalable and secure cloud infrastructure management to optimize your business operations and reduce costs."},
	{Title: "App Development", Description: "Custom application development for web and mobile platforms using cutting-edge technologies."},
	{Title: "Security Consulting", Description: "Comprehensive security assessments and solutions to protect your business from cyber threats."},
	{Title: "AI/ML Integration", Description: "Advanced AI and machine learning integration to automate processes and gain valuable insights."},
}

// SiteContent returns a fresh copy of the landing page content
func SiteContent() models.SiteContent {
	services := make([]models.Feature, len(serviceFeatures))
	copy(services, serviceFeatures)

	return models.SiteContent{
		Brand: "Softmatrices",
		Navigation: []models.NavLink{
			{Name: "Home", Href: "#home"},
			{Name: "About", Href: "#about"},
			{Name: "Services", Href: "#services"},
			{Name: "Process", Href: "#process"},
			{Name: "Why Us", Href: "#why-us"},
			{Name: "Contact", Href: "#contact"},
		},
		Hero: models.Hero{
			Headline:      "Technology that empowers",
			RotatingWords: []string{"businesses", "startups", "enterprises", "innovation"},
			Subheadline:   "IT consulting, cloud and software delivery for teams that need results they can rely on.",
			Stats: []models.Stat{
				{Value: "99.9%", Label: "Uptime"},
				{Value: "24/7", Label: "Support"},
				{Value: "10+", Label: "Technologies"},
				{Value: "100%", Label: "Commitment"},
			},
		},
		About: models.About{
			Title:       "About Softmatrices",
			Description: "We partner with organisations to design, build and run the technology behind their growth.",
			Stats: []models.Stat{
				{Value: "10+", Label: "Technologies"},
				{Value: "100%", Label: "Commitment"},
				{Value: "99.9%", Label: "Uptime Guarantee"},
				{Value: "24/7", Label: "Support Available"},
			},
			Values: []models.Feature{
				{Title: "Innovation", Description: "We stay at the forefront of technology, constantly exploring new solutions to deliver cutting-edge results."},
				{Title: "Collaboration", Description: "We work closely with our clients as partners, ensuring every solution is tailored to their unique needs."},
				{Title: "Excellence", Description: "We maintain the highest standards in everything, from initial consultation to final delivery and ongoing support."},
			},
		},
		Services: services,
		Process: []models.ProcessStep{
			{Number: "01", Title: "Discovery", Description: "Understanding your business needs, challenges, and goals through comprehensive analysis."},
			{Number: "02", Title: "Strategy", Description: "Developing a customized strategy aligned with your business objectives and technical requirements."},
			{Number: "03", Title: "Development", Description: "Implementing solutions using best practices, agile methodologies, and continuous QA."},
			{Number: "04", Title: "Launch", Description: "Ensuring smooth deployment and providing ongoing support to maximize your IT investment."},
		},
		WhyUs: []models.Feature{
			{Title: "Expert Team", Description: "Certified professionals with years of industry experience and cutting-edge technical expertise."},
			{Title: "Fast Delivery", Description: "Our agile approach ensures rapid delivery without compromising quality."},
			{Title: "Quality Assurance", Description: "Highest standards through rigorous testing, code reviews, and industry best practices."},
			{Title: "24/7 Support", Description: "Dedicated support team available around the clock for smooth operations."},
		},
		Contact: models.ContactInfo{
			Email:      "info@softmatrices.com",
			EmailNote:  "We usually reply within 24 hours",
			Phone:      "+91 97664 76600",
			PhoneHref:  "tel:+919766476600",
			PhoneHours: "Mon–Sat, 10 AM – 7 PM IST",
			Endpoint:   ContactEndpoint,
		},
	}
}
