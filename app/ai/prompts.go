package ai

import (
	"fmt"
	"strings"
)

func longTailKeywordsPrompt(topic, description, language string) string {
	return fmt.Sprintf(`You are an SEO keyword researcher. Generate 40 long-tail keyword phrases in language %q for the topic %q.
Business description: %q.
Each phrase must be 3 to 6 words long and biased toward high commercial intent (people ready to buy or hire).
Return ONLY a JSON array of strings, no commentary.`, language, topic, description)
}

func broadVariationsPrompt(phrases []string, language string) string {
	return fmt.Sprintf(`The following keyword phrases in language %q returned no search volume:
%s
Generate 20 broader, shorter variations of these phrases that real people are more likely to search for.
Return ONLY a JSON array of strings, no commentary.`, language, strings.Join(phrases, "\n"))
}

func estimateMetricsPrompt(topic, description, language string) string {
	return fmt.Sprintf(`You are an SEO analyst. For the topic %q (business: %q, language %q), generate 40 long-tail keyword phrases with estimated search metrics.
Return ONLY a JSON array of objects with this exact shape:
[{"keyword": string, "search_volume": integer, "competition": number between 0 and 1, "cpc": number}]
Each keyword must be 3 to 6 words. Estimate realistic monthly search volumes.`, topic, description, language)
}

func estimateMetricsForPhrasesPrompt(phrases []string, language string) string {
	return fmt.Sprintf(`You are an SEO analyst. Estimate search metrics for these exact keyword phrases (language %q):
%s
Return ONLY a JSON array of objects with this exact shape, one per input phrase, keeping the phrases verbatim:
[{"keyword": string, "search_volume": integer, "competition": number between 0 and 1, "cpc": number}]`, language, strings.Join(phrases, "\n"))
}

func domainNamesPrompt(topic string, keywords []string, language string) string {
	return fmt.Sprintf(`Suggest 20 brandable or exact-match domain names for an SEO lander network about %q in language %q.
Top keywords: %s.
Mix the TLDs: .com, .it, .net, .org, .io.
Return ONLY a JSON array of domain name strings (e.g. "example.com"), no commentary.`, topic, strings.Join(keywords, ", "), language)
}

func landingContentPrompt(domain, keyword, language string) string {
	return fmt.Sprintf(`Write landing page branding content in language %q for the domain %q targeting the keyword %q.
Return ONLY a JSON object with this exact shape:
{"brandName": string, "heroTitle": string, "heroSubtitle": string, "serviceDescription": string, "ctaText": string, "keyword": string}
The brand name must fit the domain. Keep the hero title under 70 characters.`, language, domain, keyword)
}

func longFormArticlePrompt(keyword, language string) string {
	return fmt.Sprintf(`Write a high-quality, SEO-optimized long-form article in language %q for the keyword %q.
At least 1200 words. Use HTML with <h2> and <h3> section headings, <p> paragraphs and <ul> lists where useful.
Return ONLY a JSON object with this exact shape:
{"title": string, "slug": string, "excerpt": string, "content": string, "category": string, "tags": [string], "imageSearchTerm": string}
The slug must be lowercase with dashes. The excerpt must be under 200 characters. The content field holds the full HTML body.`, language, keyword)
}
