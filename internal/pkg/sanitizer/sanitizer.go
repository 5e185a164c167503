package sanitizer

import (
	"net/url"
	"regexp"
	"strings"
)

// 形如 user:pass@host 的憑據片段 (url.Parse 失敗時的兜底)
var userinfoRegex = regexp.MustCompile(`(?i)(://)([^/@\s:]+)(:[^/@\s]*)?@`)

// URL 去除地址中的密碼，保留用戶名便於排查
func URL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return userinfoRegex.ReplaceAllString(raw, "${1}${2}:***@")
	}

	if u.User != nil {
		if _, hasPwd := u.User.Password(); hasPwd {
			u.User = url.UserPassword(u.User.Username(), "xxx")
			return strings.Replace(u.String(), ":xxx@", ":***@", 1)
		}
	}
	return u.String()
}

// Password 密碼全脫敏
func Password(s string) string {
	if s == "" {
		return ""
	}
	return "***MASKED***"
}
