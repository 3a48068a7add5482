package services

import (
	"ravvio_server/database"
	"ravvio_server/storage"
	"ravvio_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService      *AuthService
	HealthService    *HealthService
	CategoryService  *CategoryService
	AttributeService *AttributeService
	ProductService   *ProductService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB, store storage.ObjectStore) *ServiceManager {
	return &ServiceManager{
		AuthService:      NewAuthService(cfg, logger, db),
		HealthService:    NewHealthService(logger, db),
		CategoryService:  NewCategoryService(logger, db),
		AttributeService: NewAttributeService(logger, db),
		ProductService:   NewProductService(logger, cfg, db, store),
	}
}
