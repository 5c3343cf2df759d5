package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retailflow-api/internal/application/auth"
	"github.com/jhoicas/retailflow-api/internal/application/ordering"
	"github.com/jhoicas/retailflow-api/internal/application/payroll"
	"github.com/jhoicas/retailflow-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	BranchUC         *usecase.BranchUseCase
	CartUC           *usecase.CartUseCase
	OrderUC          *ordering.OrderUseCase
	DocumentUC       *usecase.DocumentUseCase
	EmployeeUC       *usecase.EmployeeUseCase
	PayrollUC        *payroll.PayrollUseCase
	ProductRequestUC *usecase.ProductRequestUseCase
	JWTSecret        string
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret)
	admin := RequireAdmin()
	employee := RequireEmployee()

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Products: lectura pública, escritura solo admin
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authMW, admin, productHandler.Create)
	products.Put("/:id/discount", authMW, admin, productHandler.SetDiscount)
	products.Delete("/:id", authMW, admin, productHandler.Delete)

	// Branches (las rutas fijas van antes de /:id)
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches := api.Group("/branches", authMW)
	branches.Get("/", branchHandler.List)
	branches.Post("/", admin, branchHandler.Create)
	branches.Get("/requests/all", admin, branchHandler.ListRequests)
	branches.Put("/requests/:branchId/:requestId", admin, branchHandler.DecideRequest)
	branches.Get("/compare/:id1/:id2", admin, branchHandler.Compare)
	branches.Get("/compare/:id1/:id2/report", admin, branchHandler.CompareReport)
	branches.Get("/:id", branchHandler.Get)
	branches.Post("/:id/product-request", employee, branchHandler.SubmitRequest)

	// Cart
	cartHandler := NewCartHandler(deps.CartUC)
	cart := api.Group("/cart", authMW)
	cart.Get("/", cartHandler.Get)
	cart.Post("/add", cartHandler.Add)
	cart.Put("/update", cartHandler.Update)
	cart.Delete("/remove/:productId", cartHandler.Remove)
	cart.Delete("/clear", cartHandler.Clear)

	// Orders
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := api.Group("/orders", authMW)
	orders.Post("/create", orderHandler.Create)
	orders.Get("/my-orders", orderHandler.ListMine)
	orders.Get("/:id", orderHandler.Get)

	// Documents
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	documents := api.Group("/documents", authMW)
	documents.Post("/submit", documentHandler.Submit)
	documents.Get("/my-documents", documentHandler.ListMine)
	documents.Get("/pending", admin, documentHandler.ListPending)
	documents.Put("/review/:id", admin, documentHandler.Review)
	documents.Delete("/:id", admin, documentHandler.Delete)

	// Employees
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, deps.PayrollUC)
	employees := api.Group("/employees", authMW)
	employees.Get("/", admin, employeeHandler.List)
	employees.Get("/salary-info", employee, employeeHandler.SalaryInfo)
	employees.Get("/my-branch", employee, employeeHandler.MyBranch)
	employees.Put("/:employeeId/assign-branch", admin, employeeHandler.AssignBranch)
	employees.Post("/:employeeId/send-salary", admin, employeeHandler.SendSalary)

	// Product requests
	requestHandler := NewProductRequestHandler(deps.ProductRequestUC)
	requests := api.Group("/product-requests", authMW)
	requests.Post("/", employee, requestHandler.Create)
	requests.Get("/my-requests", employee, requestHandler.ListMine)
	requests.Get("/stats", admin, requestHandler.Stats)
	requests.Get("/", admin, requestHandler.List)
	requests.Put("/:requestId/status", admin, requestHandler.Decide)
}
