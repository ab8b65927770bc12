package apperr

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Kind classifies an error so handlers can map it to an HTTP status
// in exactly one place.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindTenantUnavailable
	KindForbidden
	KindNotFound
	KindInvalidReference
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
	Code    string                 // machine-readable code (e.g. USUARIO_BLOQUEADO)
	Fields  map[string]interface{} // extra payload fields (e.g. suspendido/activo flags)
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func InvalidReference(msg string) *Error {
	return &Error{Kind: KindInvalidReference, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "error interno del servidor", Err: err}
}

// UserBlocked is the login failure for an inactive user account.
func UserBlocked() *Error {
	return &Error{
		Kind:    KindForbidden,
		Message: "usuario bloqueado, contacta al administrador",
		Code:    "USUARIO_BLOQUEADO",
	}
}

// TenantUnavailable reports a suspended or deactivated negocio. The
// suspendido/activo flags travel in the response body so the frontend
// can distinguish the two.
func TenantUnavailable(suspendido, activo bool) *Error {
	code := "NEGOCIO_INACTIVO"
	msg := "el negocio está inactivo"
	if suspendido {
		code = "NEGOCIO_SUSPENDIDO"
		msg = "el negocio está suspendido por falta de pago"
	}
	return &Error{
		Kind:    KindTenantUnavailable,
		Message: msg,
		Code:    code,
		Fields:  map[string]interface{}{"suspendido": suspendido, "activo": activo},
	}
}

// From normalizes arbitrary errors into the taxonomy. gorm sentinel
// errors become NotFound/Conflict; an *Error passes through unchanged.
func From(err error, notFoundMsg string) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(notFoundMsg)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
		return Conflict("el registro ya existe")
	}
	return Internal(err)
}

// Respond writes the error as JSON. Every handler funnels through here
// so status mapping lives in one place.
func Respond(c *gin.Context, err error) {
	ae := From(err, "registro no encontrado")

	status := http.StatusInternalServerError
	switch ae.Kind {
	case KindValidation, KindInvalidReference, KindConflict:
		status = http.StatusBadRequest
	case KindUnauthenticated:
		status = http.StatusUnauthorized
	case KindForbidden, KindTenantUnavailable:
		status = http.StatusForbidden
	case KindNotFound:
		status = http.StatusNotFound
	case KindInternal:
		log.Printf("❌ %s %s -> %v", c.Request.Method, c.Request.URL.Path, ae.Err)
	}

	body := gin.H{"error": ae.Message}
	if ae.Code != "" {
		body["codigo"] = ae.Code
	}
	for k, v := range ae.Fields {
		body[k] = v
	}
	c.AbortWithStatusJSON(status, body)
}
