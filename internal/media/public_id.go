package media

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

var versionSegment = regexp.MustCompile(`^v\d+$`)

// PublicIDFromURL derives the Cloudinary public id from a delivery URL:
//
//	https://res.cloudinary.com/<cloud>/image/upload/[<transformations>/]v<version>/<public id>.<ext>
//
// Everything after the version segment is the public id, minus the file
// extension for image and video assets. URLs without a version segment are
// taken to have no transformations. Returns false for URLs that are not
// Cloudinary delivery URLs.
func PublicIDFromURL(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" || !strings.HasSuffix(u.Host, "cloudinary.com") {
		return "", false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	upload := -1
	for i, seg := range segments {
		if seg == "upload" && i > 0 {
			upload = i
			break
		}
	}
	if upload < 0 {
		return "", false
	}

	resourceType := segments[upload-1]
	rest := segments[upload+1:]
	for i, seg := range rest {
		if versionSegment.MatchString(seg) {
			rest = rest[i+1:]
			break
		}
	}

	id := strings.Join(rest, "/")
	if resourceType != "raw" {
		id = strings.TrimSuffix(id, path.Ext(id))
	}
	if id == "" {
		return "", false
	}
	return id, true
}
