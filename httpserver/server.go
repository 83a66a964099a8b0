package httpserver

import (
	"context"
	"errors"
	"fmt"
	"moviehub/errs"
	"moviehub/movie"
	"moviehub/pkg/config"
	"moviehub/pkg/jwt"
	"moviehub/pkg/sentry"
	"net/http"
	"strings"

	sentryecho "github.com/getsentry/sentry-go/echo"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Importer runs a reconciliation on demand.
type Importer interface {
	Reconcile(ctx context.Context) (movie.ImportStats, error)
}

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	MovieService movie.Service

	Importer Importer

	// Ready reports whether storage is reachable; nil skips the check
	Ready func(ctx context.Context) error

	JWTSecret string
}

func Default(cfg *config.Config) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: parseOrigins(cfg.AllowOrigins),
		JWTSecret:    cfg.Auth.JWTSecret,
	}
	if cfg.Port != 0 {
		s.Addr = fmt.Sprintf(":%d", cfg.Port)
	}

	s.Router.HideBanner = true
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = customHTTPErrorHandler
	s.RegisterGlobalMiddlewares()
	api := s.Router.Group("/api")

	// PUBLIC
	public := api.Group("")
	s.RegisterPublicRoutes(public)

	// PRIVATE, only when a signing secret is configured
	if tokens, err := jwt.NewJWTProvider(s.JWTSecret, 0); err == nil {
		private := api.Group("")
		private.Use(echojwt.WithConfig(echojwt.Config{
			ParseTokenFunc: adminTokenParser(tokens),
		}))
		s.RegisterPrivateRoutes(private)
	}
	s.RegisterHealthRoutes()
	s.RegisterMetricsRoutes()
	s.RegisterSwaggerRoutes()
	return &s
}

// adminTokenParser accepts only unexpired HS256 tokens of the admin type.
// The token subject is stored in the context by echojwt.
func adminTokenParser(tokens *jwt.JWTProvider) func(c echo.Context, auth string) (interface{}, error) {
	return func(c echo.Context, auth string) (interface{}, error) {
		return tokens.ParseAdminToken(auth)
	}
}

func parseOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// customHTTPErrorHandler maps application errors to appropriate HTTP status codes
func customHTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	// Check if it's an Echo HTTPError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		// Map application error codes to HTTP status codes
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			code = http.StatusBadRequest
			message = errs.ErrorMessage(err)
		case errs.ENOTFOUND:
			code = http.StatusNotFound
			message = errs.ErrorMessage(err)
		case errs.ECONFLICT:
			code = http.StatusConflict
			message = errs.ErrorMessage(err)
		case errs.EUNAUTHORIZED:
			code = http.StatusUnauthorized
			message = errs.ErrorMessage(err)
		case errs.ENOTIMPLEMENTED:
			code = http.StatusNotImplemented
			message = errs.ErrorMessage(err)
		}
	}

	if code >= http.StatusInternalServerError {
		c.Logger().Error(err)
		sentry.WithContext(c).
			WithExtras(map[string]interface{}{"request_id": c.Response().Header().Get(echo.HeaderXRequestID)}).
			Error(err)
	}

	// Don't write response if already committed
	if !c.Response().Committed {
		if werr := writeError(c, code, message, "", err); werr != nil {
			c.Logger().Error(werr)
		}
	}
}

func (s *Server) RegisterPublicRoutes(g *echo.Group) {
	s.RegisterPublicMovieRoutes(g)
}

func (s *Server) RegisterPrivateRoutes(g *echo.Group) {
	s.RegisterPrivateImportRoutes(g)
}
