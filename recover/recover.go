// file: rtrie/recover/recover.go
package recover

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/rskv-p/rtrie/constant"
	"github.com/rskv-p/rtrie/pkg/x_log"
)

const (
	tagService  = "service"
	tagFunction = "function"
	tagContext  = "context"
	tagLabel    = "label"
)

// ----------------------------------------------------
// Global panic hook (optional)
// ----------------------------------------------------

var OnPanic func(service, function string, recovered any)

func current() *zerolog.Logger {
	l := x_log.New("recover")
	return &l
}

// ----------------------------------------------------
// Panic recovery functions
// ----------------------------------------------------

// RecoverWithContext captures and logs a panic with metadata and optional data.
// It must be called directly by defer.
func RecoverWithContext(service, function string, data any) {
	if r := recover(); r != nil {
		report(service, function, r, data)
	}
}

// RecoverExplicit logs a known recovered panic with metadata and context.
func RecoverExplicit(service, function string, recovered any, data any) {
	if recovered == nil {
		return
	}
	report(service, function, recovered, data)
}

func report(service, function string, recovered, data any) {
	ev := current().Error().
		Str(tagService, service).
		Str(tagFunction, function).
		Bytes("stack", debug.Stack())
	if data != nil {
		ev = ev.Str(tagContext, fmt.Sprintf("%+v", data))
	}
	ev.Msgf("panic: %v", recovered)

	if OnPanic != nil {
		OnPanic(service, function, recovered)
	}
}

// Safe runs the given function safely, recovering and logging any panic with label.
func Safe(label string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			current().Error().
				Str(tagLabel, label).
				Bytes("stack", debug.Stack()).
				Msgf("panic: %v", r)
			if OnPanic != nil {
				OnPanic("Safe", label, r)
			}
		}
	}()
	fn()
}

// RecoverFunc runs fn and turns a panic into an error wrapping constant.ErrPanic.
func RecoverFunc(label string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			RecoverExplicit("RecoverFunc", label, r, nil)
			err = fmt.Errorf("%w in %s: panic: %v", constant.ErrPanic, label, r)
		}
	}()
	return fn()
}

// ----------------------------------------------------
// HTTP middleware
// ----------------------------------------------------

// Middleware recovers panics from next, logs them and answers 500.
func Middleware(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					RecoverExplicit(service, r.Method+" "+r.URL.Path, rec, nil)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// ----------------------------------------------------
// Universal wrapper
// ----------------------------------------------------

// RecoverableFunc is a context-aware function that may panic.
type RecoverableFunc func(ctx context.Context) error

// WrapRecover wraps a context-aware function with panic protection.
func WrapRecover(service, function string, f RecoverableFunc) RecoverableFunc {
	return func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				RecoverExplicit(service, function, r, nil)
				err = fmt.Errorf("%w in %s.%s: %v", constant.ErrPanic, service, function, r)
			}
		}()
		return f(ctx)
	}
}
