package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-pos-api/internal/application/billing"
	"github.com/jhoicas/ventas-pos-api/internal/application/usecase"
)

// Roles emitidos por el backend en el claim "role".
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleCashier    = "cajero"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	ReceiptUC   *billing.ReceiptUseCase
	PDFUC       *billing.PDFUseCase
	CartUC      *usecase.CartUseCase
	ProductUC   *usecase.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	ComboUC     *usecase.ComboUseCase
	BranchUC    *usecase.BranchUseCase
	JWTSecret   string
	// RequestLogger y Metrics son opcionales.
	RequestLogger  fiber.Handler
	Metrics        fiber.Handler
	MetricsHandler fiber.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.RequestLogger != nil {
		app.Use(deps.RequestLogger)
	}
	if deps.Metrics != nil {
		app.Use(deps.Metrics)
	}

	// Salud (público)
	health := NewHealthHandler(deps.ServiceName, deps.ReceiptUC)
	app.Get("/health", health.Health)
	app.Get("/health/upstream", health.Upstream)
	if deps.MetricsHandler != nil {
		app.Get("/metrics", deps.MetricsHandler)
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	catalogWrite := RequireRole(RoleAdmin, RoleSupervisor)

	// Ventas: recibo, ticket PDF y anulación
	sales := protected.Group("/sales")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC, deps.PDFUC)
	sales.Get("/:id/receipt", receiptHandler.GetReceipt)
	sales.Get("/:id/receipt/pdf", receiptHandler.DownloadPDF)
	sales.Post("/:id/annul", catalogWrite, receiptHandler.AnnulSale)

	// Carrito del usuario
	cart := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.CartUC)
	cart.Get("/", cartHandler.Get)
	cart.Delete("/", cartHandler.Clear)
	cart.Get("/summary", cartHandler.Summary)
	cart.Post("/items", cartHandler.AddItem)
	cart.Put("/items/:product_id", cartHandler.SetQuantity)
	cart.Delete("/items/:product_id", cartHandler.Remove)
	cart.Post("/items/:product_id/increment", cartHandler.Increment)
	cart.Post("/items/:product_id/decrement", cartHandler.Decrement)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", catalogWrite, productHandler.Create)
	products.Put("/:id", catalogWrite, productHandler.Update)

	// Suppliers (name-check antes de /:id)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/name-check", supplierHandler.CheckName)
	suppliers.Get("/name-check/last", supplierHandler.LastNameCheck)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", catalogWrite, supplierHandler.Create)
	suppliers.Put("/:id", catalogWrite, supplierHandler.Update)

	// Combos
	combos := protected.Group("/combos")
	comboHandler := NewComboHandler(deps.ComboUC)
	combos.Get("/", comboHandler.List)
	combos.Get("/:id", comboHandler.GetByID)
	combos.Get("/:id/quote", comboHandler.Quote)
	combos.Post("/", catalogWrite, comboHandler.Create)

	// Sucursal y caja de trabajo
	branchHandler := NewBranchHandler(deps.BranchUC)
	protected.Get("/branches", branchHandler.List)
	protected.Get("/cash-registers/:id/status", branchHandler.RegisterStatus)
	session := protected.Group("/session")
	session.Get("/branch", branchHandler.Current)
	session.Put("/branch", branchHandler.Select)
	session.Delete("/branch", branchHandler.Clear)
}
