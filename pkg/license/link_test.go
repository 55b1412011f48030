package license_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readium/kotlin-toolkit-sub011/pkg/license"
)

func TestLinkTemplateParameters(t *testing.T) {
	t.Parallel()

	t.Run("query form", func(t *testing.T) {
		t.Parallel()

		link := license.Link{
			Href:      "https://lsd.example.com/licenses/1/renew{?end,id,name}",
			Templated: true,
		}
		assert.Equal(t, []string{"end", "id", "name"}, link.TemplateParameters())
		assert.True(t, link.HasTemplateParameter("end"))
		assert.False(t, link.HasTemplateParameter("start"))
	})

	t.Run("simple form", func(t *testing.T) {
		t.Parallel()

		link := license.Link{
			Href:      "https://lsd.example.com/licenses/{id}/status",
			Templated: true,
		}
		assert.Equal(t, []string{"id"}, link.TemplateParameters())
	})

	t.Run("not templated", func(t *testing.T) {
		t.Parallel()

		link := license.Link{Href: "https://lsd.example.com/renew{?end}"}
		assert.Empty(t, link.TemplateParameters())
	})
}

func TestLinkURL(t *testing.T) {
	t.Parallel()

	t.Run("expands query template", func(t *testing.T) {
		t.Parallel()

		link := license.Link{
			Href:      "https://lsd.example.com/licenses/1/renew{?end,id,name}",
			Templated: true,
		}
		url, err := link.URL(map[string]string{
			"id":   "device-1",
			"name": "My Reader",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://lsd.example.com/licenses/1/renew?id=device-1&name=My+Reader", url)
	})

	t.Run("missing variables expand to nothing", func(t *testing.T) {
		t.Parallel()

		link := license.Link{
			Href:      "https://lsd.example.com/renew{?end}",
			Templated: true,
		}
		url, err := link.URL(nil)
		require.NoError(t, err)
		assert.Equal(t, "https://lsd.example.com/renew", url)
	})

	t.Run("expands simple template", func(t *testing.T) {
		t.Parallel()

		link := license.Link{
			Href:      "https://lsd.example.com/licenses/{id}/status",
			Templated: true,
		}
		url, err := link.URL(map[string]string{"id": "lic 1"})
		require.NoError(t, err)
		assert.Equal(t, "https://lsd.example.com/licenses/lic+1/status", url)
	})

	t.Run("appends params to plain href", func(t *testing.T) {
		t.Parallel()

		link := license.Link{Href: "https://lsd.example.com/licenses/1/return"}
		url, err := link.URL(map[string]string{"id": "device-1"})
		require.NoError(t, err)
		assert.Equal(t, "https://lsd.example.com/licenses/1/return?id=device-1", url)
	})

	t.Run("plain href untouched without params", func(t *testing.T) {
		t.Parallel()

		link := license.Link{Href: "https://lsd.example.com/status"}
		url, err := link.URL(nil)
		require.NoError(t, err)
		assert.Equal(t, "https://lsd.example.com/status", url)
	})

	t.Run("empty href fails", func(t *testing.T) {
		t.Parallel()

		_, err := license.Link{}.URL(nil)
		assert.ErrorIs(t, err, license.ErrInvalidLink)
	})
}

func TestLinkIsHTML(t *testing.T) {
	t.Parallel()

	assert.True(t, license.Link{Type: license.MediaTypeHTML}.IsHTML())
	assert.True(t, license.Link{Type: license.MediaTypeXHTML}.IsHTML())
	assert.True(t, license.Link{Type: "text/html; charset=utf-8"}.IsHTML())
	assert.False(t, license.Link{Type: license.MediaTypeStatusDocument}.IsHTML())
	assert.False(t, license.Link{}.IsHTML())
}

func TestLinksFind(t *testing.T) {
	t.Parallel()

	links := license.Links{
		{Rel: "renew", Href: "https://example.com/renew-page", Type: license.MediaTypeHTML},
		{Rel: "renew", Href: "https://example.com/renew", Type: license.MediaTypeStatusDocument},
		{Rel: "return", Href: "https://example.com/return"},
	}

	t.Run("first match without type filter", func(t *testing.T) {
		t.Parallel()

		link := links.Find("renew")
		require.NotNil(t, link)
		assert.Equal(t, "https://example.com/renew-page", link.Href)
	})

	t.Run("type filter", func(t *testing.T) {
		t.Parallel()

		link := links.Find("renew", license.MediaTypeStatusDocument)
		require.NotNil(t, link)
		assert.Equal(t, "https://example.com/renew", link.Href)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, links.Find("register"))
		assert.Nil(t, links.Find("return", license.MediaTypeHTML))
	})

	t.Run("no declared type", func(t *testing.T) {
		t.Parallel()

		link := links.FindWithNoType("return")
		require.NotNil(t, link)
		assert.Equal(t, "https://example.com/return", link.Href)
		assert.Nil(t, links.FindWithNoType("renew"))
	})
}
