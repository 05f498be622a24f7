package visionai

import (
	"fmt"
	"strings"
)

// TagStyle selects the wording of the generated tags.
type TagStyle string

const (
	// TagStyleNeutral asks for factual, objective terms.
	TagStyleNeutral TagStyle = "neutral"
	// TagStylePlayful asks for expressive, informal terms; short phrases are allowed.
	TagStylePlayful TagStyle = "playful"
	// TagStyleSEO asks for search-oriented keywords including long-tail phrases.
	TagStyleSEO TagStyle = "seo"
)

// TagCount is the number of tags the model is asked for.
const TagCount = 5

// ParseTagStyle maps v to a TagStyle. Unknown values fall back to TagStyleNeutral.
func ParseTagStyle(v string) TagStyle {
	switch s := TagStyle(strings.ToLower(strings.TrimSpace(v))); s {
	case TagStyleNeutral, TagStylePlayful, TagStyleSEO:
		return s
	default:
		return TagStyleNeutral
	}
}

//nolint:gochecknoglobals // static prompt presets
var tagInstructions = map[TagStyle]string{
	TagStyleNeutral: "Tags must be factual, objective single words or short terms describing " +
		"the main subjects, setting, colors and mood visible in the image.",
	TagStylePlayful: "Tags should be fun, expressive and informal, the way people tag posts on " +
		"social media. Short phrases of up to three words are welcome.",
	TagStyleSEO: "Tags must be search keywords a person would type to find this image, " +
		"mixing broad terms with specific long-tail phrases.",
}

// BuildPrompt returns the instruction sent with the image for the given style.
// Unknown styles use the neutral preset.
func BuildPrompt(style TagStyle) string {
	instruction, ok := tagInstructions[style]
	if !ok {
		instruction = tagInstructions[TagStyleNeutral]
	}

	return fmt.Sprintf(
		"Analyze this image and respond with a JSON object of the form "+
			`{"description": "...", "tags": ["...", "..."]}`+". "+
			"The description must be 1-2 sentences. "+
			"Provide exactly %d tags. %s "+
			"Respond with the JSON object only.",
		TagCount,
		instruction,
	)
}
