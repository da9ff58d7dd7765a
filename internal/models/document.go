package models

import "strings"

// ContentType represents the long-form document format to generate
type ContentType string

const (
	ContentTypeGuide      ContentType = "guide"
	ContentTypeBlogPost   ContentType = "blog_post"
	ContentTypeHowTo      ContentType = "how_to"
	ContentTypeListicle   ContentType = "listicle"
	ContentTypeComparison ContentType = "comparison"
)

// KnownContentTypes lists every supported content type
var KnownContentTypes = []ContentType{
	ContentTypeGuide,
	ContentTypeBlogPost,
	ContentTypeHowTo,
	ContentTypeListicle,
	ContentTypeComparison,
}

// NormalizeContentType maps arbitrary input to a known content type,
// defaulting to the comprehensive guide
func NormalizeContentType(s string) ContentType {
	ct := ContentType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range KnownContentTypes {
		if ct == known {
			return known
		}
	}
	return ContentTypeGuide
}

// GeneratedDocument is the terminal content artifact of a pipeline run
type GeneratedDocument struct {
	ContentType ContentType `json:"content_type"`
	BodyText    string      `json:"body_text"`
	WordCount   int         `json:"word_count"`
}

// NewGeneratedDocument builds a document with its derived word count
func NewGeneratedDocument(contentType ContentType, bodyText string) GeneratedDocument {
	return GeneratedDocument{
		ContentType: contentType,
		BodyText:    bodyText,
		WordCount:   CountWords(bodyText),
	}
}

// CountWords counts whitespace-delimited tokens. WordCount on a document
// is always exactly this function applied to its body.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountHeadings counts Markdown heading lines in a document body
func CountHeadings(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			count++
		}
	}
	return count
}
