package validator

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// 長度限制
const (
	MaxSubclusterLength = 128
	MaxKeyPrefixLength  = 64
	MinPort             = 1
	MaxPort             = 65535
)

// 預編譯正則表達式，避免在熱路徑中重複編譯
var (
	rePort = regexp.MustCompile(`^\d+$`)
)

// ValidationError 驗證錯誤
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateLength 驗證字符串長度
func ValidateLength(input string, maxLen int, field string) error {
	if len(input) > maxLen {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("長度超過限制（最大 %d 字符，當前 %d 字符）", maxLen, len(input)),
		}
	}
	return nil
}

// ValidateSubcluster 子集群名稱：非空、不含控制字符
// 名稱作為查詢參數發送，空格等字符由 URL 編碼處理
func ValidateSubcluster(name string) error {
	const field = "endpoint.subcluster_name"

	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: field, Message: "不能為空"}
	}
	if err := ValidateLength(name, MaxSubclusterLength, field); err != nil {
		return err
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return &ValidationError{Field: field, Message: "包含控制字符"}
	}
	return nil
}

// ValidateHostPort 驗證 host:port，host 可為空 (如 ":8080")
func ValidateHostPort(addr, field string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return &ValidationError{Field: field, Message: "地址不能為空"}
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return &ValidationError{Field: field, Message: fmt.Sprintf("格式應為 host:port (%v)", err)}
	}
	if strings.ContainsAny(host, " /") {
		return &ValidationError{Field: field, Message: "主機名無效"}
	}

	if !rePort.MatchString(portStr) {
		return &ValidationError{Field: field, Message: "端口必須是純數字"}
	}
	port, _ := strconv.Atoi(portStr)
	if port < MinPort || port > MaxPort {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("端口必須在 %d-%d 之間", MinPort, MaxPort),
		}
	}
	return nil
}

// ValidateKeyPrefix Redis 鍵前綴：不含空白與控制字符
func ValidateKeyPrefix(prefix string) error {
	const field = "redis.key_prefix"

	if err := ValidateLength(prefix, MaxKeyPrefixLength, field); err != nil {
		return err
	}
	if strings.IndexFunc(prefix, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0 {
		return &ValidationError{Field: field, Message: "不能包含空白字符"}
	}
	return nil
}
