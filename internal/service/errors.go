package service

import "github.com/pkg/errors"

// Kind classifies request failures.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindNotFound
	KindDownload
	KindDecode
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindDownload:
		return "download"
	case KindDecode:
		return "decode"
	case KindTimeout:
		return "timeout"
	}
	return "internal"
}

// Error is a request failure with a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return e.Message
	case e.Message == "":
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// User-facing messages.
const (
	MsgNoInput  = "未提供图像数据"
	MsgNotFound = "文件不存在"
	MsgTimeout  = "请求处理超时"
)

var (
	ErrNoInput = &Error{Kind: KindInvalidInput, Message: MsgNoInput}
	ErrTimeout = &Error{Kind: KindTimeout, Message: MsgTimeout}
)

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind of err, KindInternal for errors not produced by
// this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
