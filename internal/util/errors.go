package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrQuestionNotFound = errors.New("question not found")
	ErrLedgerConflict   = errors.New("gamification ledger conflict")
	ErrPermissionDenied = errors.New("permission denied")
)

// ShapeError 表示提交的答案与题型要求的结构不符，携带字段级的提示信息
type ShapeError struct {
	Detail string
}

func (e *ShapeError) Error() string {
	return e.Detail
}

func InvalidAnswerShape(format string, args ...interface{}) error {
	return &ShapeError{Detail: fmt.Sprintf(format, args...)}
}

func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}
