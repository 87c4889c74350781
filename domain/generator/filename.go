package generator

import (
	"strings"
	"time"
)

const (
	schemeHTTP  = "http://"
	schemeHTTPS = "https://"

	filenameTimeLayout = "20060102_150405"
	galleryTimeLayout  = "2006-01-02 15:04:05"
)

// NormalizeURL trims the input and prepends https:// when no http(s) scheme is present
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" || hasScheme(u) {
		return u
	}
	return schemeHTTPS + u
}

func hasScheme(u string) bool {
	lower := strings.ToLower(u)
	return strings.HasPrefix(lower, schemeHTTP) || strings.HasPrefix(lower, schemeHTTPS)
}

// DeriveFilename builds qr_{host}_{YYYYMMDD_HHMMSS}.png. Two URLs with the same
// host in the same second map to the same name and the later write wins.
func DeriveFilename(targetURL string, now time.Time) string {
	return "qr_" + sanitizeHost(extractHost(targetURL)) + "_" + now.Format(filenameTimeLayout) + ".png"
}

func extractHost(targetURL string) string {
	host := targetURL
	if hasScheme(host) {
		host = host[strings.Index(host, "://")+3:]
	}
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	return host
}

func sanitizeHost(host string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(host) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "link"
	}
	return b.String()
}
