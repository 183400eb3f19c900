package main_test

import (
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	infra_provider "github.com/amirasaad/kambialo/infra/provider"
	"github.com/amirasaad/kambialo/pkg/config"
	"github.com/amirasaad/kambialo/pkg/history"
	"github.com/amirasaad/kambialo/pkg/service/rates"
	"github.com/amirasaad/kambialo/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	exitVal := m.Run()
	os.Exit(exitVal)
}

type MainTestSuite struct {
	suite.Suite
	app *fiber.App
}

func (s *MainTestSuite) SetupTest() {
	svc := rates.New(infra_provider.NewStaticOfficialRate(8), infra_provider.NewStaticMarketRate(9), nil)
	s.app = webapi.NewApp(svc, history.NewSessions(time.Minute), &config.App{Env: "test"})
}

func TestMainTestSuite(t *testing.T) {
	suite.Run(t, new(MainTestSuite))
}

func (s *MainTestSuite) TestStartServer_RootRoute() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := s.app.Test(req)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *MainTestSuite) TestNotFoundRoute() {
	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	resp, err := s.app.Test(req)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *MainTestSuite) TestQuoteRoute() {
	req := httptest.NewRequest(http.MethodPost, "/api/quote", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}
