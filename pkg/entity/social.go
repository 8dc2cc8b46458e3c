package entity

import "sort"

// Network names a social-network slot on the dossier.
type Network string

// String returns the string representation of a Network.
func (n Network) String() string {
	return string(n)
}

// Fixed social-network slots.
const (
	NetworkLinkedIn  Network = "linkedin"
	NetworkTwitter   Network = "twitter"
	NetworkFacebook  Network = "facebook"
	NetworkInstagram Network = "instagram"
	NetworkYouTube   Network = "youtube"
	NetworkTikTok    Network = "tiktok"
)

// Networks returns the fixed slots in canonical display order. The
// order drives the sameAs projection and the outer diagram ring.
func Networks() []Network {
	return []Network{
		NetworkLinkedIn,
		NetworkTwitter,
		NetworkFacebook,
		NetworkInstagram,
		NetworkYouTube,
		NetworkTikTok,
	}
}

// KnownNetwork reports whether n is one of the fixed slots.
func KnownNetwork(n Network) bool {
	for _, known := range Networks() {
		if n == known {
			return true
		}
	}
	return false
}

// SocialLinks maps a network slot to its profile URL. The six fixed
// slots always exist; imported state may carry extra networks, which
// keep working but render with fallback styling.
type SocialLinks map[Network]string

// NewSocialLinks returns a link set with every fixed slot empty.
func NewSocialLinks() SocialLinks {
	links := make(SocialLinks, len(Networks()))
	for _, n := range Networks() {
		links[n] = ""
	}
	return links
}

// Present returns the networks with a non-empty URL: fixed slots in
// canonical order first, then any extra networks sorted by name.
func (s SocialLinks) Present() []Network {
	var out []Network
	for _, n := range Networks() {
		if s[n] != "" {
			out = append(out, n)
		}
	}
	var extra []Network
	for n, url := range s {
		if url != "" && !KnownNetwork(n) {
			extra = append(extra, n)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// URLs returns the non-empty profile URLs in Present order.
func (s SocialLinks) URLs() []string {
	var out []string
	for _, n := range s.Present() {
		out = append(out, s[n])
	}
	return out
}

// Count returns the number of non-empty links.
func (s SocialLinks) Count() int {
	return len(s.Present())
}

// Clone returns an independent copy of the link set.
func (s SocialLinks) Clone() SocialLinks {
	if s == nil {
		return nil
	}
	out := make(SocialLinks, len(s))
	for n, url := range s {
		out[n] = url
	}
	return out
}
