// Package visionai defines the contract for describing and tagging images with
// a vision-language model, together with the backend-independent pieces every
// implementation shares: tag-style prompts, URL validation, and tolerant
// extraction of the JSON answer from the model's free text.
//
// Implementations never return Go errors from analysis calls. Every failure
// (invalid URL, transport error, unparseable answer) is reported through the
// Success flag and Error message of the result, so callers treat annotation as
// best-effort.
package visionai

import (
	"context"
)

// Service analyzes one image per call.
type Service interface {
	// AnalyzeImage asks the model for a description and tags of the image at imageURL.
	AnalyzeImage(ctx context.Context, imageURL string, style TagStyle) Analysis

	// GenerateTags returns the tag part of AnalyzeImage.
	GenerateTags(ctx context.Context, imageURL string, style TagStyle) TagsResult

	// GenerateDescription returns the description part of AnalyzeImage with the neutral style.
	GenerateDescription(ctx context.Context, imageURL string) DescriptionResult
}

// Analysis is the outcome of AnalyzeImage.
type Analysis struct {
	Success     bool     `json:"success"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	TagStyle    TagStyle `json:"tagStyle,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// TagsResult is the outcome of GenerateTags.
type TagsResult struct {
	Success  bool     `json:"success"`
	Tags     []string `json:"tags"`
	TagStyle TagStyle `json:"tagStyle,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// DescriptionResult is the outcome of GenerateDescription.
type DescriptionResult struct {
	Success     bool    `json:"success"`
	Description *string `json:"description"`
	Error       string  `json:"error,omitempty"`
}

// Failed builds the result of a failed analysis.
func Failed(msg string) Analysis {
	return Analysis{
		Success:     false,
		Description: nil,
		Tags:        []string{},
		Error:       msg,
	}
}

// Succeeded builds the result of a successful analysis.
func Succeeded(answer Answer, style TagStyle) Analysis {
	desc := answer.Description
	return Analysis{
		Success:     true,
		Description: &desc,
		Tags:        answer.Tags,
		TagStyle:    style,
	}
}

// TagsResult projects a onto TagsResult.
func (a Analysis) TagsResult() TagsResult {
	return TagsResult{
		Success:  a.Success,
		Tags:     a.Tags,
		TagStyle: a.TagStyle,
		Error:    a.Error,
	}
}

// DescriptionResult projects a onto DescriptionResult.
func (a Analysis) DescriptionResult() DescriptionResult {
	return DescriptionResult{
		Success:     a.Success,
		Description: a.Description,
		Error:       a.Error,
	}
}
