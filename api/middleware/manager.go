package middleware

import (
	"ravvio_server/database"
	"ravvio_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	cfg    *structs.Config
	logger *gecho.Logger
	db     *database.DB
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, db *database.DB) *Middleware {
	return &Middleware{
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
}
