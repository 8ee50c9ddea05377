package sanitize

import (
	"regexp"
	"strings"
)

// Platform is one of the supported source sites. The value order is the
// detection priority order and must not change: it is what breaks ties
// when a message matches more than one pattern.
type Platform int

const (
	PlatformInstagram Platform = iota
	PlatformReddit
	PlatformTikTok
	PlatformTwitch
	PlatformTwitter
)

var allPlatforms = []Platform{
	PlatformInstagram,
	PlatformReddit,
	PlatformTikTok,
	PlatformTwitch,
	PlatformTwitter,
}

// DisplayName returns the platform name used in captions.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformInstagram:
		return "Instagram"
	case PlatformReddit:
		return "Reddit"
	case PlatformTikTok:
		return "TikTok"
	case PlatformTwitch:
		return "Twitch"
	default:
		return "Twitter"
	}
}

// ProxyDomain returns the embed-friendly replacement domain.
func (p Platform) ProxyDomain() string {
	switch p {
	case PlatformInstagram:
		return "kkinstagram.com"
	case PlatformReddit:
		return "rxddit.com"
	case PlatformTikTok:
		return "kktiktok.com"
	case PlatformTwitch:
		return "fxtwitch.tv"
	default:
		return "fxtwitter.com"
	}
}

// Per-platform capture patterns. Indexed by Platform.
const (
	instagramPattern = `(?i)https?://(?:www\.)?instagram\.com/(?P<type>reels?|p)(?P<data>/[^/\s?]+)`
	redditPattern    = `(?i)https?://(?P<subdomain>(?:\w+\.)?)reddit\.com/r/(?P<subreddit>\w+)(?P<data>/[^?\s]*)?`
	tiktokPattern    = `(?i)https?://(?P<subdomain>(?:\w{1,3}\.)?)tiktok\.com(?P<data>/\S+)`
	twitchPattern    = `(?i)https?://(?:(?:www\.)?twitch\.tv/(?P<username>\w+)/clip/|clips\.twitch\.tv/)(?P<clip>[\w-]+)`
	twitterPattern   = `(?i)https?://(?:www\.)?(?:twitter|x)\.com/(?P<username>\w+)(?P<data>/status/[^?\s]*)`
)

var captureRegexes = [...]*regexp.Regexp{
	PlatformInstagram: regexp.MustCompile(instagramPattern),
	PlatformReddit:    regexp.MustCompile(redditPattern),
	PlatformTikTok:    regexp.MustCompile(tiktokPattern),
	PlatformTwitch:    regexp.MustCompile(twitchPattern),
	PlatformTwitter:   regexp.MustCompile(twitterPattern),
}

// detectionRegex is the single multi-pattern matcher run once per message.
// Capture-free alternatives of the patterns above, joined in priority order.
var detectionRegex = regexp.MustCompile(`(?i)` + strings.Join([]string{
	`https?://(?:www\.)?instagram\.com/(?:reels?|p)/[^/\s?]+`,
	`https?://(?:\w+\.)?reddit\.com/r/\w+\S*`,
	`https?://(?:\w{1,3}\.)?tiktok\.com/\S+`,
	`https?://(?:(?:www\.)?twitch\.tv/\w+/clip/|clips\.twitch\.tv/)[\w-]+`,
	`https?://(?:www\.)?(?:twitter|x)\.com/\w+/status/[^?\s]*`,
}, `|`))

// domainHints short-circuits the common no-link case before the regex runs.
var domainHints = []string{
	"instagram.com",
	"reddit.com",
	"tiktok.com",
	"twitch.tv",
	"twitter.com",
	"x.com",
}

// ContainsLink is a cheap substring pre-check for a candidate URL.
func ContainsLink(input string) bool {
	input = strings.ToLower(input)
	for _, hint := range domainHints {
		if strings.Contains(input, hint) {
			return true
		}
	}
	return false
}

// Detect classifies the text against the known platform URL shapes.
// The second return is false when no platform matches.
func Detect(input string) (Platform, bool) {
	if !ContainsLink(input) {
		return 0, false
	}
	if !detectionRegex.MatchString(input) {
		return 0, false
	}
	// A candidate exists; resolve which platform in fixed priority order.
	for _, p := range allPlatforms {
		if captureRegexes[p].MatchString(input) {
			return p, true
		}
	}
	return 0, false
}
