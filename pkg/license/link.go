package license

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Media types this core reads or negotiates.
const (
	MediaTypeLicenseDocument = "application/vnd.readium.lcp.license.v1.0+json"
	MediaTypeStatusDocument  = "application/vnd.readium.license.status.v1.0+json"
	MediaTypeHTML            = "text/html"
	MediaTypeXHTML           = "application/xhtml+xml"
)

var ErrInvalidLink = errors.New("invalid link")

// Link is a hypermedia link carried by a license or status document. Href
// may be an RFC 6570 URI template; only the simple `{var}` and query
// `{?var1,var2}` forms used by LCP servers are supported.
type Link struct {
	Rel       string `json:"rel"`
	Href      string `json:"href"`
	Type      string `json:"type,omitempty"`
	Title     string `json:"title,omitempty"`
	Profile   string `json:"profile,omitempty"`
	Templated bool   `json:"templated,omitempty"`
}

var templateGroup = regexp.MustCompile(`\{([^}]*)\}`)

// TemplateParameters returns the variable names of a templated href, in
// order of appearance.
func (l Link) TemplateParameters() []string {
	if !l.Templated {
		return nil
	}

	var names []string
	for _, group := range templateGroup.FindAllStringSubmatch(l.Href, -1) {
		inner := strings.TrimLeft(group[1], "?&")
		for _, name := range strings.Split(inner, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// HasTemplateParameter reports whether the templated href declares the
// given variable.
func (l Link) HasTemplateParameter(name string) bool {
	for _, p := range l.TemplateParameters() {
		if p == name {
			return true
		}
	}
	return false
}

// URL resolves the link to a concrete URL. Template variables are expanded
// from params (missing variables expand to nothing); on a plain href the
// params are appended as query parameters.
func (l Link) URL(params map[string]string) (string, error) {
	href := l.Href
	if href == "" {
		return "", fmt.Errorf("%w: empty href", ErrInvalidLink)
	}

	if l.Templated {
		return expandTemplate(href, params)
	}

	u, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	if len(params) > 0 {
		query := u.Query()
		for name, value := range params {
			query.Set(name, value)
		}
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// IsHTML reports whether the link targets an HTML page, meaning it must be
// presented to the user instead of fetched programmatically.
func (l Link) IsHTML() bool {
	mediaType, _, _ := strings.Cut(l.Type, ";")
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case MediaTypeHTML, MediaTypeXHTML:
		return true
	default:
		return false
	}
}

func expandTemplate(href string, params map[string]string) (string, error) {
	expanded := templateGroup.ReplaceAllStringFunc(href, func(group string) string {
		inner := group[1 : len(group)-1]

		var sep, first string
		switch {
		case strings.HasPrefix(inner, "?"):
			inner, sep, first = inner[1:], "&", "?"
		case strings.HasPrefix(inner, "&"):
			inner, sep, first = inner[1:], "&", "&"
		default:
			// Simple expansion of the first declared variable.
			name := strings.TrimSpace(strings.Split(inner, ",")[0])
			return url.QueryEscape(params[name])
		}

		var pairs []string
		for _, name := range strings.Split(inner, ",") {
			name = strings.TrimSpace(name)
			if value, ok := params[name]; ok {
				pairs = append(pairs, url.QueryEscape(name)+"="+url.QueryEscape(value))
			}
		}
		if len(pairs) == 0 {
			return ""
		}
		return first + strings.Join(pairs, sep)
	})

	if _, err := url.Parse(expanded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	return expanded, nil
}

// Links is the ordered link list of a document.
type Links []Link

// Find returns the first link with the given relation, restricted to the
// given content type when one is passed.
func (links Links) Find(rel string, types ...string) *Link {
	for i, l := range links {
		if l.Rel != rel {
			continue
		}
		if len(types) == 0 {
			return &links[i]
		}
		for _, t := range types {
			if l.Type == t {
				return &links[i]
			}
		}
	}
	return nil
}

// FindWithNoType returns the first link with the given relation and no
// declared content type.
func (links Links) FindWithNoType(rel string) *Link {
	for i, l := range links {
		if l.Rel == rel && l.Type == "" {
			return &links[i]
		}
	}
	return nil
}
