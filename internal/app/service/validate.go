package service

import (
	"net"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/idna"
)

var validate = validator.New()

// NormalizeURL добавляет https://, если у строки нет префикса http:// или https://.
// Другие схемы не распознаются: "ftp://host" превратится в "https://ftp://host"
// и не пройдёт проверку формата.
func NormalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// IsValidURL проверяет, что строка — абсолютный http(s) URL с корректным хостом.
func IsValidURL(input string) bool {
	if err := validate.Var(input, "required,http_url"); err != nil {
		return false
	}

	parsed, err := url.Parse(input)
	if err != nil || parsed.Host == "" || parsed.Opaque != "" {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	return isValidHost(parsed.Hostname())
}

func isValidHost(host string) bool {
	if host == "" {
		return false
	}
	if net.ParseIP(host) != nil || strings.EqualFold(host, "localhost") {
		return true
	}

	ascii, err := idna.Lookup.ToASCII(strings.TrimSuffix(host, "."))
	if err != nil {
		return false
	}

	labels := strings.Split(ascii, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" || len(label) > 63 {
			return false
		}
	}

	tld := labels[len(labels)-1]
	if strings.HasPrefix(tld, "xn--") {
		return true
	}
	for _, r := range tld {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(tld) >= 2
}
