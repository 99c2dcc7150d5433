package aggregator

import "techpulse/internal/models"

const DefaultCategory = "technology"

var categories = []models.Category{
	{ID: "technology", Name: "Technology", Native: "technology"},
	{ID: "ai", Name: "AI & ML", Query: "artificial intelligence OR machine learning OR GPT OR ChatGPT"},
	{ID: "startups", Name: "Startups", Query: "startup funding OR venture capital OR unicorn"},
	{ID: "crypto", Name: "Crypto", Query: "cryptocurrency OR bitcoin OR ethereum OR blockchain"},
	{ID: "programming", Name: "Programming", Query: "programming OR software development OR javascript OR python"},
	{ID: "cybersecurity", Name: "Cybersecurity", Query: "cybersecurity OR hacking OR data breach"},
	{ID: "gadgets", Name: "Gadgets", Query: "gadgets OR smartphone OR iPhone OR laptop"},
}

// resolveCategory falls back to technology for unknown ids.
func resolveCategory(id string) models.Category {
	for _, c := range categories {
		if c.ID == id {
			return c
		}
	}
	return categories[0]
}

func queryFor(c models.Category, page int) models.Query {
	if c.Query != "" {
		return models.Query{Text: c.Query, Page: page}
	}
	return models.Query{Category: c.Native, Page: page}
}
