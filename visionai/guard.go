package visionai

import (
	"net/url"
	"strings"

	"github.com/code19m/errx"
	"github.com/samber/lo"
)

const (
	CodeImageURLRequired = "IMAGE_URL_REQUIRED"
	CodeInvalidImageURL  = "INVALID_IMAGE_URL"
)

// URLGuard restricts the image URLs that may be sent to a model.
type URLGuard struct {
	domains []string
}

// NewURLGuard builds a guard accepting hosts equal to, or subdomains of, domains.
func NewURLGuard(domains []string) URLGuard {
	return URLGuard{
		domains: lo.FilterMap(domains, func(d string, _ int) (string, bool) {
			d = strings.ToLower(strings.Trim(strings.TrimSpace(d), "."))
			return d, d != ""
		}),
	}
}

// Validate returns an error unless raw is an absolute http(s) URL on an allowed host.
func (g URLGuard) Validate(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errx.New(
			"image URL is required",
			errx.WithCode(CodeImageURLRequired),
			errx.WithType(errx.T_Validation),
		)
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return errx.New(
			"invalid image URL",
			errx.WithCode(CodeInvalidImageURL),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"url": raw}),
		)
	}

	if !g.allows(strings.ToLower(u.Hostname())) {
		return errx.New(
			"invalid image URL domain",
			errx.WithCode(CodeInvalidImageURL),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"url": raw, "host": u.Hostname()}),
		)
	}
	return nil
}

func (g URLGuard) allows(host string) bool {
	return lo.ContainsBy(g.domains, func(d string) bool {
		return host == d || strings.HasSuffix(host, "."+d)
	})
}
