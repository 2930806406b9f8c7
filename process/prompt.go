package process

import (
	"fmt"

	"go-mod.ewintr.nl/vid2blog/model"
)

const (
	transcriptLimit = 10000
	seoExcerptLimit = 2000
)

const blogPrompt = `Write a well-structured blog post based on the YouTube video below.

Title: "%s"
Description: "%s"
Transcript: "%s"

Requirements for the blog post:
- Use a %s tone
- Aim for about %d words
- Write for a %s audience
- Start with a compelling title, followed by an introduction, and end with a conclusion
- Structure the text with clear headings and subheadings
- Optimize it for search engines
- Cover the key points and insights from the video
- Quote the transcript where that adds value

Return the blog post formatted as Markdown.`

const seoPrompt = `Generate SEO metadata for the blog post below, which was written based on a YouTube video.

Original video title: "%s"

Blog post:
"%s"

Provide:
1. An SEO optimized title of at most %d characters
2. A meta description of at most %d characters
3. Between %d and %d relevant keywords or key phrases

Answer with JSON only, using this structure:
{
  "title": "SEO title",
  "description": "Meta description that summarizes the content and invites a click.",
  "keywords": ["keyword1", "keyword2", "keyword3", "keyword4", "keyword5"]
}`

func truncateWithMarker(s string, n int) string {
	t := model.Truncate(s, n)
	if t == s {
		return s
	}
	return t + "..."
}

func BlogPrompt(transcript string, md model.Metadata, opts model.GenerationOptions) string {
	return fmt.Sprintf(blogPrompt,
		md.Title,
		md.Description,
		truncateWithMarker(transcript, transcriptLimit),
		opts.Tone,
		opts.WordCount,
		opts.Audience,
	)
}

func SEOPrompt(post, title string) string {
	return fmt.Sprintf(seoPrompt,
		title,
		truncateWithMarker(post, seoExcerptLimit),
		model.SEOTitleMax,
		model.SEODescriptionMax,
		model.SEOKeywordsMin,
		model.SEOKeywordsMax,
	)
}
