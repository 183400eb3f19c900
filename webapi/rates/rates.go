package rates

import (
	"errors"
	"time"

	"github.com/amirasaad/kambialo/pkg/domain"
	"github.com/amirasaad/kambialo/pkg/history"
	ratesvc "github.com/amirasaad/kambialo/pkg/service/rates"
	"github.com/amirasaad/kambialo/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Routes registers HTTP routes for rates, quotations and session history.
func Routes(
	app *fiber.App,
	ratesSvc *ratesvc.Service,
	sessions *history.Sessions,
	store *session.Store,
) {
	api := app.Group("/api")
	api.Get("/rates", GetRates(ratesSvc))
	api.Post("/quote", Quote(ratesSvc, sessions, store))
	api.Get("/history", GetHistory(sessions, store))
	api.Delete("/history", ClearHistory(sessions, store))
}

// GetRates returns the current official and market rates. A rate that could
// not be fetched is null and flagged for manual entry.
func GetRates(ratesSvc *ratesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap := ratesSvc.Rates(c.UserContext())
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rates fetched successfully", RatesResponse{
			Official:            snap.Official,
			Market:              snap.Market,
			NeedsManualOfficial: snap.NeedsManualOfficial(),
			NeedsManualMarket:   snap.NeedsManualMarket(),
		})
	}
}

// Quote computes the local currency total for a USD price.
func Quote(ratesSvc *ratesvc.Service, sessions *history.Sessions, store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[QuoteRequest](c)
		if input == nil {
			return err // error response already written
		}

		req := ratesvc.QuoteRequest{
			PriceUSD:       *input.PriceUSD,
			ManualOfficial: input.OfficialRate,
			ManualMarket:   input.MarketRate,
			Record:         input.Save,
		}
		if input.Save {
			tracker, err := sessionTracker(c, sessions, store)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Session unavailable", err, fiber.StatusInternalServerError)
			}
			req.History = tracker
		}

		q, err := ratesSvc.Quote(c.UserContext(), req)
		if err != nil {
			var missing *domain.MissingRatesError
			if errors.As(err, &missing) {
				return common.ProblemDetailsJSON(c, "Rate required", err, missingRates(missing))
			}
			return common.ProblemDetailsJSON(c, "Failed to compute quote", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Quote computed successfully", ToQuoteResponse(q))
	}
}

// GetHistory returns the calculations saved in the caller's session, newest first.
func GetHistory(sessions *history.Sessions, store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tracker, err := sessionTracker(c, sessions, store)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Session unavailable", err, fiber.StatusInternalServerError)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "History fetched successfully", tracker.List())
	}
}

// ClearHistory empties the caller's session history.
func ClearHistory(sessions *history.Sessions, store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tracker, err := sessionTracker(c, sessions, store)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Session unavailable", err, fiber.StatusInternalServerError)
		}
		tracker.Clear()
		return common.SuccessResponseJSON(c, fiber.StatusOK, "History cleared", []domain.HistoryEntry{})
	}
}

// sessionTracker resolves the history of the session cookie, starting a new
// session when the request carries none.
func sessionTracker(c *fiber.Ctx, sessions *history.Sessions, store *session.Store) (*history.Tracker, error) {
	sess, err := store.Get(c)
	if err != nil {
		return nil, err
	}
	id := sess.ID()
	if sess.Fresh() {
		sess.Set("started_at", time.Now().Unix())
	}
	// Save refreshes the cookie and releases sess
	if err := sess.Save(); err != nil {
		return nil, err
	}
	return sessions.Get(id), nil
}
