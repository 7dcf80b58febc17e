package layouts

import "strings"

// MediaPrefix is the path of the API's static area. Files under it are
// served through the /media/ proxy.
var MediaPrefix = "/static"

// MediaURL maps an image reference from the API to a URL the browser can
// load. Absolute URLs are kept.
func MediaURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	prefix := strings.TrimRight(MediaPrefix, "/") + "/"
	return "/media/" + strings.TrimPrefix(strings.TrimPrefix(ref, prefix), "/")
}
