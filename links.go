package main

import (
	"regexp"
	"strings"
)

var contentLinkRe = regexp.MustCompile(`https://(1024terabox|freeterabox|teraboxapp)\.com/s/[^\s]+`)

// mentionsContentHost is the cheap trigger: any mention of terabox makes
// the message a link-resolution request, even if no valid share link is
// ultimately found.
func mentionsContentHost(text string) bool {
	return strings.Contains(text, "terabox")
}

// extractContentLink pulls the first recognized share link out of text.
func extractContentLink(text string) (string, bool) {
	link := contentLinkRe.FindString(text)
	return link, link != ""
}
