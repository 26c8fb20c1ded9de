package flatfreeze

import "strings"

// AbsoluteURL joins a site-relative path onto domain, which ends in "/".
func AbsoluteURL(domain, rel string) string {
	return domain + strings.TrimPrefix(rel, "/")
}
