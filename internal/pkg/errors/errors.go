package errors

import (
	"errors"
	"fmt"
)

// 預定義錯誤類型
var (
	// 配置相關
	ErrConfigInvalid     = errors.New("configuration is invalid")
	ErrConfigParseFailed = errors.New("failed to parse configuration")

	// 刷新相關
	ErrFetchFailed      = errors.New("failed to fetch snapshot")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrMalformedPayload = errors.New("malformed snapshot payload")

	// 鏡像相關
	ErrMirrorFailed = errors.New("failed to mirror snapshot")
)

// 錯誤代碼
const (
	CodeConfig  = "CONFIG"
	CodeFetch   = "FETCH"
	CodeStatus  = "HTTP_STATUS"
	CodePayload = "PAYLOAD"
	CodeMirror  = "MIRROR"
)

// Error 自定義錯誤類型
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New 創建新錯誤
func New(code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap 包裝錯誤
func Wrap(err error, code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrapf 包裝哨兵錯誤並附帶底層原因，errors.Is 對兩者都成立
func Wrapf(sentinel error, code string, cause error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if cause == nil {
		return &Error{Code: code, Message: msg, Err: sentinel}
	}
	return &Error{Code: code, Message: msg, Err: &chain{sentinel: sentinel, cause: cause}}
}

// CodeOf 取出錯誤鏈中第一個 *Error 的代碼
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is 轉發標準庫
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// chain 同時暴露哨兵錯誤與原因
type chain struct {
	sentinel error
	cause    error
}

func (c *chain) Error() string {
	return fmt.Sprintf("%v: %v", c.sentinel, c.cause)
}

func (c *chain) Unwrap() []error {
	return []error{c.sentinel, c.cause}
}
