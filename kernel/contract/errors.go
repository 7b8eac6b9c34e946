package contract

import (
	"fmt"
)

const (
	// 处理成功类
	ErrStatusSucc = 200
	// 拒绝处理类错误状态
	ErrStatusRefused = 400
	// 内部错误类错误状态
	ErrStatusInternalErr = 500
)

// Error is returned by contracts and by the host.
type Error struct {
	// 用于统计和监控的错误分类（类似http的2xx、4xx、5xx）
	Status int
	// 用于标识具体错误的详细错误码
	Code int
	// 用于说明具体错误的说明信息
	Msg string
}

func CastError(err error) *Error {
	return CastErrorDefault(err, ErrInternal)
}

func CastErrorDefault(err error, defaultErr *Error) *Error {
	if err == nil {
		return nil
	}
	if defErr, ok := err.(*Error); ok {
		return defErr
	}

	return defaultErr.More(err.Error())
}

func (t *Error) Error() string {
	return fmt.Sprintf("Err:%d-%d-%s", t.Status, t.Code, t.Msg)
}

func (t *Error) More(format string, args ...interface{}) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	return &Error{t.Status, t.Code, t.Msg + "+" + msg}
}

// Is lets errors.Is match errors derived with More by code.
func (t *Error) Is(target error) bool {
	e, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Equal(e)
}

func (t *Error) Equal(rhs *Error) bool {
	if rhs == nil {
		return false
	}

	return t.Code == rhs.Code
}

var (
	ErrSuccess          = &Error{ErrStatusSucc, 0, "success"}
	ErrParameter        = &Error{ErrStatusRefused, 40001, "param error"}
	ErrOutOfGas         = &Error{ErrStatusRefused, 40020, "resource limit exceeded"}
	ErrTooManyMessages  = &Error{ErrStatusRefused, 40021, "too many messages"}
	ErrTxDuplicate      = &Error{ErrStatusRefused, 40030, "tx duplicate"}
	ErrUnauthorized     = &Error{ErrStatusRefused, 40100, "unauthorized"}
	ErrForbidden        = &Error{ErrStatusRefused, 40300, "forbidden"}
	ErrContractNotFound = &Error{ErrStatusRefused, 40401, "contract not found"}
	ErrCodeNotFound     = &Error{ErrStatusRefused, 40402, "code not found"}
	ErrMethodNotFound   = &Error{ErrStatusRefused, 40403, "method not found"}
	ErrInternal         = &Error{ErrStatusInternalErr, 50000, "internal error"}
	ErrUnknown          = &Error{ErrStatusInternalErr, 50001, "unknown error"}
)
