package sanitize

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// ParsedLink is the result of a successful detection and extraction.
type ParsedLink struct {
	Platform     Platform
	OriginalURL  string
	RewrittenURL string
	// Username is the display handle when one could be recovered; empty
	// otherwise. PostType is set for Instagram (p/reel) and carries the
	// subreddit for Reddit.
	Username string
	PostType string
}

// Caption renders the markdown reply body for the link.
func (l *ParsedLink) Caption() string {
	switch l.Platform {
	case PlatformInstagram:
		word := "Post"
		switch strings.ToLower(l.PostType) {
		case "reel", "reels":
			word = "Reel"
		}
		return fmt.Sprintf("[%s via %s](%s)", word, l.Platform.DisplayName(), l.RewrittenURL)
	default:
		if l.Username != "" {
			return fmt.Sprintf("[@%s via %s](%s)", l.Username, l.Platform.DisplayName(), l.RewrittenURL)
		}
		return fmt.Sprintf("[Post via %s](%s)", l.Platform.DisplayName(), l.RewrittenURL)
	}
}

// tiktokAuthorPath extracts the handle from a canonical /@user/video/... path.
var tiktokAuthorPath = regexp.MustCompile(`^/@([\w.-]+)/`)

// Rewriter turns matched text into a ParsedLink, optionally enriching the
// display name through the author lookup client.
type Rewriter struct {
	lookup *AuthorLookup
}

// NewRewriter creates a Rewriter. lookup may be nil to disable enrichment.
func NewRewriter(lookup *AuthorLookup) *Rewriter {
	return &Rewriter{lookup: lookup}
}

// Rewrite detects a platform link in text and produces its proxy rewrite.
// Returns nil when nothing matched or the fine-grained extraction failed;
// neither case is an error.
func (r *Rewriter) Rewrite(ctx context.Context, text string) *ParsedLink {
	platform, ok := Detect(text)
	if !ok {
		return nil
	}
	link := extract(text, platform)
	if link == nil {
		return nil
	}
	r.enrich(ctx, link)
	return link
}

// extract re-parses the matched span with the platform's named captures and
// builds the replacement URL.
func extract(text string, platform Platform) *ParsedLink {
	re := captureRegexes[platform]
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	group := func(name string) string {
		idx := re.SubexpIndex(name)
		if idx < 0 || idx >= len(m) {
			return ""
		}
		return m[idx]
	}

	link := &ParsedLink{Platform: platform, OriginalURL: m[0]}

	switch platform {
	case PlatformInstagram:
		link.PostType = group("type")
		link.RewrittenURL = fmt.Sprintf("https://%s/%s%s", platform.ProxyDomain(), link.PostType, group("data"))
	case PlatformReddit:
		link.PostType = group("subreddit")
		link.RewrittenURL = fmt.Sprintf("https://%s%s/r/%s%s",
			group("subdomain"), platform.ProxyDomain(), link.PostType, group("data"))
	case PlatformTikTok:
		// The short-link form must survive character for character: mobile
		// share links encode state in the subdomain and path.
		link.RewrittenURL = fmt.Sprintf("https://%s%s%s", group("subdomain"), platform.ProxyDomain(), group("data"))
		if author := tiktokAuthorPath.FindStringSubmatch(group("data")); author != nil {
			link.Username = author[1]
		}
	case PlatformTwitch:
		link.Username = group("username")
		if link.Username != "" {
			link.RewrittenURL = fmt.Sprintf("https://%s/%s/clip/%s", platform.ProxyDomain(), link.Username, group("clip"))
		} else {
			// Short clips.twitch.tv form; may be normalized later if the
			// author lookup recovers a handle.
			link.RewrittenURL = fmt.Sprintf("https://clips.%s/%s", platform.ProxyDomain(), group("clip"))
		}
	case PlatformTwitter:
		link.Username = group("username")
		link.RewrittenURL = fmt.Sprintf("https://%s/%s%s", platform.ProxyDomain(), link.Username, group("data"))
	}

	return link
}

// enrich fills in the display name for platforms whose URL form does not
// expose it, using a bounded network lookup. Every failure degrades to an
// empty username; it never fails the rewrite.
func (r *Rewriter) enrich(ctx context.Context, link *ParsedLink) {
	if r.lookup == nil || link.Username != "" {
		return
	}

	switch link.Platform {
	case PlatformTikTok:
		link.Username = r.lookup.TikTokAuthor(ctx, link.OriginalURL)
	case PlatformTwitch:
		username := r.lookup.TwitchAuthor(ctx, link.OriginalURL)
		if username == "" {
			return
		}
		link.Username = username
		// With the handle known the short clip form can be normalized to
		// the full-URL shape on the proxy domain.
		if clip := captureRegexes[PlatformTwitch].FindStringSubmatch(link.OriginalURL); clip != nil {
			idx := captureRegexes[PlatformTwitch].SubexpIndex("clip")
			if idx > 0 && idx < len(clip) {
				link.RewrittenURL = fmt.Sprintf("https://%s/%s/clip/%s",
					link.Platform.ProxyDomain(), username, clip[idx])
			}
		}
	}
}
