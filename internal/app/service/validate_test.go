package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://example.com", NormalizeURL("example.com"))
	assert.Equal(t, "http://example.com", NormalizeURL("http://example.com"))
	assert.Equal(t, "https://example.com", NormalizeURL("https://example.com"))
	assert.Equal(t, "https://ftp://example.com", NormalizeURL("ftp://example.com"))
}

func TestIsValidURL(t *testing.T) {
	valid := []string{
		"https://example.com",
		"http://example.com:8080/path?q=1#frag",
		"https://sub.domain.example.co.uk/a/b",
		"https://пример.рф/страница",
		"https://münchen.de",
		"https://xn--e1afmkfd.xn--p1ai",
		"http://localhost:7071/api",
		"http://127.0.0.1/",
		"http://[::1]:8080/",
	}
	for _, u := range valid {
		assert.True(t, IsValidURL(u), u)
	}

	invalid := []string{
		"",
		"https://",
		"https://not a url",
		"https://-bad-.com",
		"https://exa_mple.com",
		"https://example..com",
		"https://example",
		"https://example.123",
		"mailto:someone@example.com",
		"https://ftp://example.com",
	}
	for _, u := range invalid {
		assert.False(t, IsValidURL(u), u)
	}
}
