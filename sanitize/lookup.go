package sanitize

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// AuthorLookup recovers display names through best-effort network requests
// against the original URL. It never follows redirects: TikTok short links
// answer with a 302 whose Location header carries the canonical
// /@user/video/... URL, which is all we need.
type AuthorLookup struct {
	client *http.Client
}

// NewAuthorLookup builds a lookup client with a strict total timeout. The
// timeout must stay well under the interaction acknowledgement deadline.
func NewAuthorLookup(timeout time.Duration) *AuthorLookup {
	return &AuthorLookup{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// TikTokAuthor resolves the author handle behind a TikTok share link by
// inspecting the redirect Location header. Returns "" on any failure.
func (a *AuthorLookup) TikTokAuthor(ctx context.Context, url string) string {
	resp := a.get(ctx, url)
	if resp == nil {
		return ""
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	if location == "" {
		return ""
	}
	m := tiktokAuthorPath.FindStringSubmatch(pathOf(location))
	if m == nil {
		return ""
	}
	return m[1]
}

// TwitchAuthor resolves a clip author from the page's og:title meta tag,
// which Twitch formats as "ClipTitle - Username". Returns "" on any failure.
func (a *AuthorLookup) TwitchAuthor(ctx context.Context, url string) string {
	resp := a.get(ctx, url)
	if resp == nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	title := ogTitle(resp)
	if title == "" {
		return ""
	}
	idx := strings.LastIndex(title, " - ")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(title[idx+len(" - "):])
}

func (a *AuthorLookup) get(ctx context.Context, url string) *http.Response {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	resp, err := a.client.Do(req)
	if err != nil {
		log.Printf("Author lookup failed for %s: %v", url, err)
		return nil
	}
	return resp
}

// ogTitle walks the response HTML for <meta property="og:title" content=...>.
func ogTitle(resp *http.Response) string {
	doc, err := html.Parse(resp.Body)
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "meta" {
			var property, content string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "property":
					property = attr.Val
				case "content":
					content = attr.Val
				}
			}
			if property == "og:title" {
				title = content
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}

// pathOf strips the scheme and host from an absolute URL, leaving the path.
func pathOf(url string) string {
	if idx := strings.Index(url, "://"); idx >= 0 {
		url = url[idx+len("://"):]
	}
	if idx := strings.Index(url, "/"); idx >= 0 {
		return url[idx:]
	}
	return ""
}
