package handlers

import (
	"github.com/jmoiron/sqlx"

	"stockroom/internal/config"
	"stockroom/internal/repos"
	"stockroom/internal/services"
)

type Deps struct {
	ProductHandler  *ProductHandler
	SellerHandler   *SellerHandler
	SaleHandler     *SaleHandler
	PurchaseHandler *PurchaseHandler
	ReportHandler   *ReportHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	sellerRepo := repos.NewSellerRepo(db)
	purchaseRepo := repos.NewPurchaseRepo(db)
	saleRepo := repos.NewSaleRepo(db)
	reportRepo := repos.NewReportRepo(db)
	userRepo := repos.NewUserRepo(db)

	prodSvc := services.NewProductService(db, prodRepo, purchaseRepo, sellerRepo, cfg.LowStockLevel)
	sellerSvc := services.NewSellerService(sellerRepo)
	saleSvc := services.NewSaleService(db, prodRepo, saleRepo)
	reportSvc := services.NewReportService(reportRepo)

	return &Deps{
		ProductHandler:  &ProductHandler{Products: prodSvc},
		SellerHandler:   &SellerHandler{Sellers: sellerSvc},
		SaleHandler:     &SaleHandler{Sales: saleSvc},
		PurchaseHandler: &PurchaseHandler{Purchases: purchaseRepo},
		ReportHandler:   &ReportHandler{Reports: reportSvc},
		AdminHandler: &AdminHandler{
			Users:         userRepo,
			Products:      prodRepo,
			SaleRepo:      saleRepo,
			LowStockLevel: cfg.LowStockLevel,
		},
	}
}
