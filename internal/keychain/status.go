package keychain

import (
	stderrors "errors"
	"fmt"
)

// Status 是平台凭据存储返回的状态码。取值沿用 Security framework 的编号，
// 其他后端的错误会被映射到这些值；未知码是合法的（开放集合）。
type Status int32

const (
	StatusSuccess               Status = 0
	StatusUnimplemented         Status = -4
	StatusIO                    Status = -36
	StatusParam                 Status = -50
	StatusUserCanceled          Status = -128
	StatusNotAvailable          Status = -25291
	StatusAuthFailed            Status = -25293
	StatusDuplicateItem         Status = -25299
	StatusItemNotFound          Status = -25300
	StatusDataTooLarge          Status = -25302
	StatusInteractionNotAllowed Status = -25308
	StatusDecode                Status = -26275
)

var statusMessages = map[Status]string{
	StatusSuccess:               "No error.",
	StatusUnimplemented:         "Function or operation not implemented.",
	StatusIO:                    "I/O error.",
	StatusParam:                 "One or more parameters passed to a function were not valid.",
	StatusUserCanceled:          "User canceled the operation.",
	StatusNotAvailable:          "No keychain is available.",
	StatusAuthFailed:            "The user name or passphrase you entered is not correct.",
	StatusDuplicateItem:         "The specified item already exists in the keychain.",
	StatusItemNotFound:          "The specified item could not be found in the keychain.",
	StatusDataTooLarge:          "The item is too large to be stored.",
	StatusInteractionNotAllowed: "User interaction is not allowed.",
	StatusDecode:                "Unable to decode the provided data.",
}

// StatusMessage 返回状态码的可读描述；未知码返回 "code: <n>"。
// 这是状态码到文本的唯一查表入口。
func StatusMessage(s Status) string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return fmt.Sprintf("code: %d", int32(s))
}

func (s Status) String() string { return StatusMessage(s) }

// StatusError 是 Store 实现返回的错误类型。
type StatusError struct {
	Op     string
	Status Status
	Err    error // 后端原始错误（可选）
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("keychain %s: %s (%d)", e.Op, e.Status, int32(e.Status))
	}
	return fmt.Sprintf("keychain %s: %s (%d): %v", e.Op, e.Status, int32(e.Status), e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

func newStatusError(op string, s Status, err error) error {
	if s == StatusSuccess {
		return nil
	}
	return &StatusError{Op: op, Status: s, Err: err}
}

// StatusOf 提取 err 中的平台状态：nil→Success，StatusError→其状态，其他→IO。
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var se *StatusError
	if stderrors.As(err, &se) {
		return se.Status
	}
	return StatusIO
}
