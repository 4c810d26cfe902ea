// Package httpapi assembles the chi router for the minting service.
package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"nftdesigner/internal/http/handlers"
	"nftdesigner/internal/middleware"
)

func NewRouter(app *handlers.App, logger zerolog.Logger, allowedOrigins []string) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(allowedOrigins),
	)

	r.Get("/health", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/mint-nft", app.MintNFT)
		r.Post("/mint-nft-legacy", app.MintNFTLegacy)
		r.Get("/health", app.Health)
	})

	return r
}
