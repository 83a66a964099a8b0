package httpserver

import (
	"moviehub/errs"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
}

// healthCheck godoc
// @Summary Health Check
// @Description Check if server is alive and storage is reachable
// @Tags health
// @Success 200 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /healthcheck [get]
func (s *Server) healthCheck(c echo.Context) error {
	if s.Ready != nil {
		if err := s.Ready(c.Request().Context()); err != nil {
			c.Logger().Error(err)
			return writeError(c, http.StatusServiceUnavailable, "storage unavailable", "",
				errs.Wrap(errs.EINTERNAL, err, "storage ping failed"))
		}
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"status": "OK",
	})
}
