// Package handlers exposes the minting pipeline over HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"nftdesigner/internal/domain"
)

// MintService runs the minting pipeline for one request.
type MintService interface {
	Mint(ctx context.Context, req domain.MintingRequest) (*domain.MintResult, error)
}

// App is the handler container; all collaborators are injected at startup.
type App struct {
	Logger  zerolog.Logger
	Service MintService
}

func NewApp(logger zerolog.Logger, service MintService) *App {
	return &App{Logger: logger, Service: service}
}

type envelope struct {
	Success bool               `json:"success"`
	Data    *domain.MintResult `json:"data,omitempty"`
	Message string             `json:"message,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) success(w http.ResponseWriter, data *domain.MintResult, message string) {
	a.json(w, http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

func (a *App) error(w http.ResponseWriter, code int, errMsg, message string) {
	a.json(w, code, envelope{Success: false, Error: errMsg, Message: message})
}
