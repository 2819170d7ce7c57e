package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error HTTP koduna eşlenebilen uygulama hatası
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is aynı kod ve mesaja sahip hataları eşit sayar, böylece Wrap ile sarılmış
// hatalar errors.Is(err, ErrNotFound) ile yakalanabilir.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Wrap mevcut bir hata tipini alttaki sebeple birlikte yeniden üretir
func Wrap(base *Error, err error) *Error {
	return &Error{Code: base.Code, Message: base.Message, Err: err}
}

// Detail hata tipini ek açıklamayla yeniden üretir
func Detail(base *Error, format string, args ...any) *Error {
	return &Error{Code: base.Code, Message: base.Message, Err: fmt.Errorf(format, args...)}
}

// StatusCode hatanın HTTP karşılığını döndürür, tanınmayan hatalar 500
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

var (
	ErrNotFound        = New(http.StatusNotFound, "Kayıt bulunamadı", nil)
	ErrInvalidInput    = New(http.StatusBadRequest, "Geçersiz veri", nil)
	ErrInvalidRate     = New(http.StatusBadRequest, "Geçersiz dolar kuru", nil)
	ErrUnknownPlatform = New(http.StatusBadRequest, "Bilinmeyen platform", nil)
	ErrStorage         = New(http.StatusInternalServerError, "Depolama hatası", nil)
)
