package http

import "strings"

// botMarkers are substrings seen in automation user agents, matched lowercase
var botMarkers = []string{
	"bot", "crawl", "spider", "slurp", "scrapy",
	"curl/", "wget/", "httpie/", "python-requests", "python-urllib", "aiohttp",
	"go-http-client", "okhttp", "java/", "apache-httpclient", "libwww-perl", "axios/", "node-fetch",
	"headlesschrome", "phantomjs", "selenium", "puppeteer", "playwright",
}

// IsBotUserAgent reports whether ua is empty or carries a known automation marker
func IsBotUserAgent(ua string) bool {
	ua = strings.ToLower(strings.TrimSpace(ua))
	if ua == "" {
		return true
	}
	for _, m := range botMarkers {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}
