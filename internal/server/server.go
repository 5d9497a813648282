package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Product       *handler.ProductHandler
	Supplier      *handler.SupplierHandler
	Sale          *handler.SaleHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	Return        *handler.ReturnHandler
	Report        *handler.ReportHandler
	Chatbot       *handler.ChatbotHandler
}

func Start(addr string, cfg config.Config, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	h.Auth.RegisterRoutes(e)
	h.User.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e)
	h.Supplier.RegisterRoutes(e)
	h.Sale.RegisterRoutes(e)
	h.PurchaseOrder.RegisterRoutes(e)
	h.Return.RegisterRoutes(e)
	h.Report.RegisterRoutes(e, cfg)
	h.Chatbot.RegisterRoutes(e)

	return e.Start(addr)
}
