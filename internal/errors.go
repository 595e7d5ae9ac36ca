package internal

import "fmt"

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

func ValidationError(msg string) *AppError {
	return NewAppError(400, msg)
}

func NotFoundError(msg string) *AppError {
	return NewAppError(404, msg)
}

func UnauthorizedError(msg string) *AppError {
	return NewAppError(401, msg)
}
