package sources

import (
	"html"
	"regexp"
	"strings"
	"techpulse/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/cast"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	spaceRe      = regexp.MustCompile(`\s+`)
)

// lookup walks a dotted path through decoded JSON.
func lookup(raw interface{}, path string) interface{} {
	if path == "" {
		return nil
	}
	cur := raw
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]interface{}:
			cur = node[seg]
		case []interface{}:
			idx, err := cast.ToIntE(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil
			}
			cur = node[idx]
		default:
			return nil
		}
	}
	return cur
}

func text(raw interface{}, path string) *string {
	v := lookup(raw, path)
	if v == nil {
		return nil
	}
	return models.StringPtr(strings.TrimSpace(cast.ToString(v)))
}

// plainText strips markup and decodes entities.
func plainText(s *string) *string {
	if s == nil {
		return nil
	}
	out := html.UnescapeString(strictPolicy.Sanitize(*s))
	out = strings.TrimSpace(spaceRe.ReplaceAllString(out, " "))
	return models.StringPtr(out)
}

func stringList(raw interface{}, path string) []string {
	v := lookup(raw, path)
	if v == nil {
		return nil
	}
	var out []string
	for _, s := range cast.ToStringSlice(v) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseTimestamp(s *string) *time.Time {
	if s == nil {
		return nil
	}
	return models.ParseTimestamp(*s)
}

// normalize maps one raw result into an Article. The second return value is
// false when a row filter rejects the result.
func (s ProviderSpec) normalize(raw interface{}, fetchedAt time.Time) (models.Article, bool) {
	f := s.Fields

	title := text(raw, f.Title)
	if s.DropRemoved && title != nil && *title == removedTitle {
		return models.Article{}, false
	}

	image := text(raw, f.Image)
	if image != nil && *image == noneSentinel {
		image = nil
	}
	if s.RequireImage && image == nil {
		return models.Article{}, false
	}

	link := models.Deref(text(raw, f.URL))
	idPart := link
	if idPart == "" {
		idPart = uuid.NewString()
	}

	sourceName := models.Deref(text(raw, f.SourceName))
	if sourceName == "" {
		sourceName = f.FallbackSourceName
	}

	return models.Article{
		ID:          s.Key + "-" + idPart,
		Title:       title,
		Description: plainText(text(raw, f.Description)),
		Content:     plainText(text(raw, f.Content)),
		URL:         link,
		ImageURL:    image,
		PublishedAt: parseTimestamp(text(raw, f.PublishedAt)),
		Source: models.ArticleSource{
			Name: sourceName,
			ID:   text(raw, f.SourceID),
			URL:  text(raw, f.SourceURL),
		},
		ProviderName: s.Name,
		Author:       text(raw, f.Author),
		Category:     stringList(raw, f.Category),
		Keywords:     stringList(raw, f.Keywords),
		FetchedAt:    fetchedAt,
	}, true
}
