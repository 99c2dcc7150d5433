package sources

// Endpoint is one request shape of a provider. Param receives the category
// token or the search text; Fixed is sent unchanged.
type Endpoint struct {
	Path  string
	Param string
	Fixed map[string]string
}

// FieldMapping holds dotted paths into one raw result object. An empty path
// means the provider never reports that field. Numeric segments index arrays.
type FieldMapping struct {
	Title       string
	Description string
	Content     string
	URL         string
	Image       string
	PublishedAt string
	SourceName  string
	SourceID    string
	SourceURL   string
	Author      string
	Category    string
	Keywords    string

	FallbackSourceName string
}

// ProviderSpec is the complete description of a news provider. Adding a
// provider means adding a row to ProviderSpecs.
type ProviderSpec struct {
	Key      string
	Name     string
	Label    string
	BaseURL  string
	KeyParam string

	Headlines Endpoint
	Search    Endpoint
	PageParam string

	StatusPath  string
	StatusOK    string
	ResultsPath string
	TotalPath   string

	Fields FieldMapping

	DropRemoved  bool
	RequireImage bool
}

const (
	KeyNewsAPI  = "newsapi"
	KeyGNews    = "gnews"
	KeyCurrents = "currents"
	KeyNewsData = "newsdata"

	removedTitle = "[Removed]"
	noneSentinel = "None"
)

// ProviderSpecs is in canonical provider order. Aggregation output, stats and
// the dedup survivor all follow this order.
var ProviderSpecs = []ProviderSpec{
	{
		Key:      KeyNewsAPI,
		Name:     "NewsAPI",
		Label:    "NewsAPI",
		BaseURL:  "https://newsapi.org/v2",
		KeyParam: "apiKey",
		Headlines: Endpoint{
			Path:  "/top-headlines",
			Param: "category",
			Fixed: map[string]string{"country": "us", "pageSize": "15"},
		},
		Search: Endpoint{
			Path:  "/everything",
			Param: "q",
			Fixed: map[string]string{"sortBy": "publishedAt", "language": "en", "pageSize": "15"},
		},
		PageParam:   "page",
		StatusPath:  "status",
		StatusOK:    "ok",
		ResultsPath: "articles",
		TotalPath:   "totalResults",
		Fields: FieldMapping{
			Title:              "title",
			Description:        "description",
			Content:            "content",
			URL:                "url",
			Image:              "urlToImage",
			PublishedAt:        "publishedAt",
			SourceName:         "source.name",
			SourceID:           "source.id",
			Author:             "author",
			FallbackSourceName: "NewsAPI",
		},
		DropRemoved:  true,
		RequireImage: true,
	},
	{
		Key:      KeyGNews,
		Name:     "GNews",
		Label:    "GNews",
		BaseURL:  "https://gnews.io/api/v4",
		KeyParam: "apikey",
		Headlines: Endpoint{
			Path:  "/top-headlines",
			Param: "category",
			Fixed: map[string]string{"lang": "en", "max": "10"},
		},
		Search: Endpoint{
			Path:  "/search",
			Param: "q",
			Fixed: map[string]string{"lang": "en", "max": "10"},
		},
		ResultsPath: "articles",
		TotalPath:   "totalArticles",
		Fields: FieldMapping{
			Title:              "title",
			Description:        "description",
			Content:            "content",
			URL:                "url",
			Image:              "image",
			PublishedAt:        "publishedAt",
			SourceName:         "source.name",
			SourceURL:          "source.url",
			FallbackSourceName: "GNews",
		},
	},
	{
		Key:      KeyCurrents,
		Name:     "Currents",
		Label:    "Currents API",
		BaseURL:  "https://api.currentsapi.services/v1",
		KeyParam: "apiKey",
		Headlines: Endpoint{
			Path:  "/latest-news",
			Param: "category",
			Fixed: map[string]string{"language": "en"},
		},
		Search: Endpoint{
			Path:  "/search",
			Param: "keywords",
			Fixed: map[string]string{"language": "en"},
		},
		StatusPath:  "status",
		StatusOK:    "ok",
		ResultsPath: "news",
		Fields: FieldMapping{
			Title:              "title",
			Description:        "description",
			Content:            "description",
			URL:                "url",
			Image:              "image",
			PublishedAt:        "published",
			SourceName:         "author",
			Author:             "author",
			Category:           "category",
			FallbackSourceName: "Currents",
		},
		RequireImage: true,
	},
	{
		Key:      KeyNewsData,
		Name:     "NewsData",
		Label:    "NewsData.io",
		BaseURL:  "https://newsdata.io/api/1",
		KeyParam: "apikey",
		Headlines: Endpoint{
			Path:  "/news",
			Param: "category",
			Fixed: map[string]string{"language": "en"},
		},
		Search: Endpoint{
			Path:  "/news",
			Param: "q",
			Fixed: map[string]string{"language": "en"},
		},
		StatusPath:  "status",
		StatusOK:    "success",
		ResultsPath: "results",
		TotalPath:   "totalResults",
		Fields: FieldMapping{
			Title:              "title",
			Description:        "description",
			Content:            "content",
			URL:                "link",
			Image:              "image_url",
			PublishedAt:        "pubDate",
			SourceName:         "source_id",
			Author:             "creator.0",
			Keywords:           "keywords",
			FallbackSourceName: "NewsData",
		},
		RequireImage: true,
	},
}

func SpecByKey(key string) (ProviderSpec, bool) {
	for _, s := range ProviderSpecs {
		if s.Key == key {
			return s, true
		}
	}
	return ProviderSpec{}, false
}
