package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSiteContent(t *testing.T) {
	content := SiteContent()

	assert.Equal(t, "Softmatrices", content.Brand)
	assert.Len(t, content.Services, 4)
	assert.Len(t, content.Process, 4)
	assert.Len(t, content.WhyUs, 4)
	assert.Equal(t, ContactEndpoint, content.Contact.Endpoint)

	for _, link := range content.Navigation {
		assert.True(t, strings.HasPrefix(link.Href, "#"), link.Name)
	}

	// Callers get their own copy
	content.Services[0].Title = "changed"
	assert.Equal(t, "Cloud Solutions", SiteContent().Services[0].Title)
}
