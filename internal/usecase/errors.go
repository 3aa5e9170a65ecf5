package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// handlerでステータスに変換するエラー。
// Errには原因（ストアのエラーなど）を残す。
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 永続化の失敗は500
func newStorageError(op string, err error) error {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "storage error",
		Err:     fmt.Errorf("%s: %w", op, err),
	}
}
