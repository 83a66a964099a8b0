package sentry

import (
	"os"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// FlushTime bounds how long buffered events are waited for on exit.
const FlushTime = 2 * time.Second

// Sentry collects the event data before it is sent to the hub of the
// request, or the current hub outside a request.
type Sentry struct {
	context echo.Context
	error   error
	level   sentrygo.Level
	extras  map[string]interface{}
	tags    map[string]string
}

func WithContext(c echo.Context) *Sentry {
	return new(Sentry).WithContext(c)
}

func WithTags(tags map[string]string) *Sentry {
	return new(Sentry).WithTags(tags)
}

func (s *Sentry) WithContext(c echo.Context) *Sentry {
	s.context = c
	return s
}

func (s *Sentry) WithExtras(extras map[string]interface{}) *Sentry {
	s.extras = extras
	return s
}

func (s *Sentry) WithTags(tags map[string]string) *Sentry {
	s.tags = tags
	return s
}

func (s *Sentry) Error(err error) {
	s.error = err
	s.level = sentrygo.LevelError
	s.send()
}

// Fatal reports err and waits for delivery. It does not exit; callers decide
// how to terminate.
func (s *Sentry) Fatal(err error) {
	s.error = err
	s.level = sentrygo.LevelFatal
	s.send()
	sentrygo.Flush(FlushTime)
}

func enabled() bool {
	return os.Getenv("APP_ENV") != "local" && os.Getenv("SENTRY_DSN") != ""
}

func (s *Sentry) send() {
	if !enabled() || s.error == nil {
		return
	}

	hub := s.getHub()
	hub.WithScope(func(scope *sentrygo.Scope) {
		s.configScope(scope)
		hub.CaptureException(s.error)
	})
}

func (s *Sentry) getHub() *sentrygo.Hub {
	if s.context != nil {
		if hub := sentryecho.GetHubFromContext(s.context); hub != nil {
			return hub
		}
	}
	return sentrygo.CurrentHub()
}

func (s *Sentry) configScope(scope *sentrygo.Scope) {
	scope.SetLevel(s.level)
	if len(s.extras) > 0 {
		scope.SetExtras(s.extras)
	}
	if len(s.tags) > 0 {
		scope.SetTags(s.tags)
	}
	if s.context != nil && s.context.Request() != nil {
		scope.SetRequest(s.context.Request())
	}
}
