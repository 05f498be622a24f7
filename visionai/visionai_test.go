package visionai_test

import (
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danyloborovskyi/caption-studio-back-sub003/visionai"
)

func TestParseTagStyle(t *testing.T) {
	tests := []struct {
		in   string
		want visionai.TagStyle
	}{
		{in: "neutral", want: visionai.TagStyleNeutral},
		{in: "playful", want: visionai.TagStylePlayful},
		{in: " SEO ", want: visionai.TagStyleSEO},
		{in: "", want: visionai.TagStyleNeutral},
		{in: "poetic", want: visionai.TagStyleNeutral},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, visionai.ParseTagStyle(tc.in))
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	neutral := visionai.BuildPrompt(visionai.TagStyleNeutral)

	assert.Contains(t, neutral, "exactly 5 tags")
	assert.Contains(t, neutral, `"description"`)
	assert.NotEqual(t, neutral, visionai.BuildPrompt(visionai.TagStylePlayful))
	assert.NotEqual(t, neutral, visionai.BuildPrompt(visionai.TagStyleSEO))
	assert.Equal(t, neutral, visionai.BuildPrompt(visionai.TagStyle("unknown")))
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantDesc string
		wantTags []string
		wantErr  bool
	}{
		{
			name:     "wrapped in prose",
			text:     `Here you go: {"description":"A cat.","tags":["a","b","c","d","e"]} thanks`,
			wantDesc: "A cat.",
			wantTags: []string{"a", "b", "c", "d", "e"},
		},
		{
			name:     "markdown fence",
			text:     "```json\n{\"description\": \"Sunset.\", \"tags\": [\"sky\"]}\n```",
			wantDesc: "Sunset.",
			wantTags: []string{"sky"},
		},
		{
			name:     "braces inside strings",
			text:     `{"description":"A sign reading {open}.","tags":["sign"]}`,
			wantDesc: "A sign reading {open}.",
			wantTags: []string{"sign"},
		},
		{
			name:     "skips invalid candidate",
			text:     `{not json} then {"description":"Dog.","tags":["dog"]}`,
			wantDesc: "Dog.",
			wantTags: []string{"dog"},
		},
		{
			name:     "tags normalized",
			text:     `{"description":" Tree. ","tags":[" oak ","", "oak", "leaf"]}`,
			wantDesc: "Tree.",
			wantTags: []string{"oak", "leaf"},
		},
		{
			name:     "missing tags",
			text:     `{"description":"Empty."}`,
			wantDesc: "Empty.",
			wantTags: []string{},
		},
		{name: "no json", text: "I cannot see the image.", wantErr: true},
		{name: "unbalanced", text: `{"description":"cut`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := visionai.ParseAnswer(tc.text)

			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), visionai.MsgUnparseableResponse)
				assert.True(t, errx.IsCodeIn(err, visionai.CodeUnparseableResponse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantDesc, got.Description)
			assert.Equal(t, tc.wantTags, got.Tags)
		})
	}
}

func TestURLGuard(t *testing.T) {
	guard := visionai.NewURLGuard([]string{"storage.example.com", ".cdn.example.org"})

	tests := []struct {
		name     string
		url      string
		wantCode string
	}{
		{name: "exact host", url: "https://storage.example.com/a.png"},
		{name: "subdomain", url: "https://eu.storage.example.com/a.png"},
		{name: "trimmed domain", url: "http://img.cdn.example.org/x.jpg"},
		{name: "empty", url: "  ", wantCode: visionai.CodeImageURLRequired},
		{name: "foreign host", url: "https://evil.com/a.png", wantCode: visionai.CodeInvalidImageURL},
		{name: "suffix lookalike", url: "https://notstorage.example.com.evil.com/a.png", wantCode: visionai.CodeInvalidImageURL},
		{name: "userinfo trick", url: "https://storage.example.com@evil.com/a.png", wantCode: visionai.CodeInvalidImageURL},
		{name: "not http", url: "file:///etc/passwd", wantCode: visionai.CodeInvalidImageURL},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := guard.Validate(tc.url)

			if tc.wantCode == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errx.IsCodeIn(err, tc.wantCode))
			assert.Equal(t, errx.T_Validation, errx.GetType(err))
		})
	}
}

func TestAnalysisProjections(t *testing.T) {
	ok := visionai.Succeeded(visionai.Answer{Description: "A cat.", Tags: []string{"cat"}}, visionai.TagStyleSEO)

	require.NotNil(t, ok.Description)
	assert.True(t, ok.TagsResult().Success)
	assert.Equal(t, []string{"cat"}, ok.TagsResult().Tags)
	assert.Equal(t, visionai.TagStyleSEO, ok.TagsResult().TagStyle)
	assert.Equal(t, "A cat.", *ok.DescriptionResult().Description)

	failed := visionai.Failed("boom")

	assert.False(t, failed.Success)
	assert.Nil(t, failed.Description)
	assert.Equal(t, []string{}, failed.Tags)
	assert.Equal(t, "boom", failed.TagsResult().Error)
	assert.Nil(t, failed.DescriptionResult().Description)
}
