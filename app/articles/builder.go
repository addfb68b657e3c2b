package articles

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/fabriziochiappini/adseo/app/ai"
	"github.com/fabriziochiappini/adseo/app/database"
)

const excerptMaxLen = 200

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Build maps a generated article into a database row, filling in the
// slug, excerpt and image URL when the model left them out.
func Build(campaignID string, gen *ai.GeneratedArticle, publishedAt time.Time) database.Article {
	slug := strings.TrimSpace(gen.Slug)
	if slug == "" {
		slug = Slugify(gen.Title)
	}

	excerpt := strings.TrimSpace(gen.Excerpt)
	if excerpt == "" {
		excerpt = Excerpt(gen.Content, excerptMaxLen)
	}

	return database.Article{
		CampaignID:  campaignID,
		Title:       gen.Title,
		Slug:        slug,
		Excerpt:     excerpt,
		Content:     gen.Content,
		Category:    gen.Category,
		Tags:        gen.Tags,
		ImageURL:    ImageURL(gen.ImageSearchTerm),
		PublishedAt: publishedAt,
	}
}

// Slugify lowercases a title and collapses anything non-alphanumeric
// into single dashes.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Excerpt extracts the leading text of an HTML body, truncated at a
// word boundary.
func Excerpt(htmlContent string, maxLen int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	text := strings.Join(strings.Fields(doc.Text()), " ")
	if len(text) <= maxLen {
		return text
	}

	cut := text[:maxLen]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	} else {
		// No word boundary; drop any partial trailing rune.
		for len(cut) > 0 && !utf8.ValidString(cut) {
			cut = cut[:len(cut)-1]
		}
	}
	return cut + "…"
}

// ImageURL builds a stock-photo URL from the article's image search term.
func ImageURL(searchTerm string) string {
	term := strings.TrimSpace(searchTerm)
	if term == "" {
		return ""
	}
	return fmt.Sprintf("https://source.unsplash.com/featured/?%s", url.QueryEscape(term))
}
