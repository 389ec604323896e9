package hoyolab

import "net/http"

// Two header profiles exist and must never be conflated: the portal API
// rejects calls without the authenticated profile, and the asset CDN
// wants no cookie at all.
const (
	portalOrigin = "https://act.hoyolab.com"

	apiUserAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	assetUserAgent = "Mozilla/5.0 (Linux; Android 6.0; Nexus 5 Build/MRA58N) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Mobile Safari/537.36"
)

// APIHeaders builds the authenticated profile for portal API calls.
// signGame is the game's short name; the portal checks it against the
// endpoint being hit.
func APIHeaders(cookie, signGame string) http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Cookie", cookie)
	h.Set("Origin", portalOrigin)
	h.Set("Referer", portalOrigin+"/")
	h.Set("Sec-Fetch-Dest", "empty")
	h.Set("Sec-Fetch-Mode", "cors")
	h.Set("Sec-Fetch-Site", "same-site")
	h.Set("User-Agent", apiUserAgent)
	h.Set("x-rpc-signgame", signGame)
	return h
}

// AssetHeaders builds the unauthenticated profile used for CDN and
// reward-icon fetches.
func AssetHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "image/avif,image/webp,image/apng,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("User-Agent", assetUserAgent)
	return h
}
