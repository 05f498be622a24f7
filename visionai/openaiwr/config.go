package openaiwr

// Config defines the configuration options for the OpenAI vision client.
type Config struct {
	// APIKey authenticates requests to the chat completions endpoint.
	APIKey string `yaml:"api_key" validate:"required" mask:"true"`

	// BaseURL overrides the API origin for OpenAI-compatible gateways.
	// Empty keeps the library default.
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`

	// Model is the vision-capable model identifier.
	Model string `yaml:"model" default:"gpt-4o"`

	// MaxTokens caps the length of the model reply.
	MaxTokens int `yaml:"max_tokens" default:"500" validate:"min=1"`

	// AllowedDomains lists the storage hosts image URLs may point to.
	// Subdomains of each entry are accepted as well.
	AllowedDomains []string `yaml:"allowed_domains" validate:"required,min=1"`
}
