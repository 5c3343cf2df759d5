package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailflow-api/internal/application/apptest"
	"github.com/jhoicas/retailflow-api/internal/application/auth"
	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/application/ordering"
	"github.com/jhoicas/retailflow-api/internal/application/payroll"
	"github.com/jhoicas/retailflow-api/internal/application/usecase"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/internal/infrastructure/pdf"
	"github.com/jhoicas/retailflow-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/retailflow-api/internal/interfaces/http"
	"github.com/jhoicas/retailflow-api/pkg/logger"
)

const pdfBody = "%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n"

type memGuard struct{ keys map[string]bool }

func (g *memGuard) Acquire(_ context.Context, key string) (bool, error) {
	if g.keys[key] {
		return false, nil
	}
	g.keys[key] = true
	return true, nil
}

func (g *memGuard) Release(_ context.Context, key string) error {
	delete(g.keys, key)
	return nil
}

type testServer struct {
	t   *testing.T
	app *fiber.App
	s   *apptest.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := apptest.NewStore()
	tx := apptest.TxRunner{S: s}
	files, err := storage.NewLocalStore(t.TempDir(), 1024*1024)
	require.NoError(t, err)

	branchUC := usecase.NewBranchUseCase(s.BranchRepo(), s.UserRepo(), s.ProductRepo(), s.ProductRequestRepo(), pdf.NewBranchReport("test"))
	deps := apphttp.RouterDeps{
		AuthUC:           auth.NewAuthUseCase(s.UserRepo(), s.BranchRepo(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ProductUC:        usecase.NewProductUseCase(s.ProductRepo(), s.BranchRepo(), files),
		BranchUC:         branchUC,
		CartUC:           usecase.NewCartUseCase(tx, s.CartRepo()),
		OrderUC:          ordering.NewOrderUseCase(tx, s.OrderRepo(), s.ProductRepo(), s.BranchRepo(), &memGuard{keys: map[string]bool{}}, nil),
		DocumentUC:       usecase.NewDocumentUseCase(s.DocumentRepo(), tx, files, nil),
		EmployeeUC:       usecase.NewEmployeeUseCase(s.UserRepo(), s.BranchRepo(), branchUC),
		PayrollUC:        payroll.NewPayrollUseCase(tx, s.UserRepo(), nil),
		ProductRequestUC: usecase.NewProductRequestUseCase(s.ProductRequestRepo(), s.UserRepo(), s.BranchRepo()),
		JWTSecret:        testJWTSecret,
	}
	app := fiber.New(fiber.Config{Immutable: true, ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	apphttp.Router(app, deps)
	return &testServer{t: t, app: app, s: s}
}

func (ts *testServer) do(method, path, token string, body any, headers ...string) *http.Response {
	ts.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(ts.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.send(req, token, headers...)
}

func (ts *testServer) send(req *http.Request, token string, headers ...string) *http.Response {
	ts.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(ts.t, err)
	return resp
}

// multipartReq arma un multipart con campos de texto y un archivo opcional.
func multipartReq(t *testing.T, path string, fields map[string]string, fileField, fileName, contentType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, fileName))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func errorCode(t *testing.T, resp *http.Response) string {
	return decode[dto.ErrorResponse](t, resp).Code
}

func (ts *testServer) tokenOf(u *entity.User) string {
	return tokenFor(ts.t, u.ID, string(u.Role))
}

// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ProductosRBAC(t *testing.T) {
	ts := newTestServer(t)
	b := ts.s.AddBranch("Norte")
	admin := ts.s.AddUser("admin", entity.RoleAdmin)
	customer := ts.s.AddUser("cli", entity.RoleCustomer)
	fields := map[string]string{"name": "Café", "originalPrice": "12.50", "branchId": b.ID, "stock": "3"}

	resp := ts.send(multipartReq(t, "/api/products", fields, "", "", "", nil), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = ts.send(multipartReq(t, "/api/products", fields, "", "", "", nil), ts.tokenOf(customer))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = ts.send(multipartReq(t, "/api/products", fields, "image", "cafe.txt", "text/plain", []byte("no soy imagen")), ts.tokenOf(admin))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED_FILE", errorCode(t, resp))

	resp = ts.send(multipartReq(t, "/api/products", fields, "", "", "", nil), ts.tokenOf(admin))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProductResponse](t, resp)
	assert.True(t, created.FinalPrice.Equal(decimal.RequireFromString("12.50")))

	resp = ts.do(http.MethodPut, "/api/products/"+created.ID+"/discount", ts.tokenOf(admin), map[string]any{"discountPercentage": 150})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = ts.do(http.MethodPut, "/api/products/"+created.ID+"/discount", ts.tokenOf(admin), map[string]any{"discountPercentage": 20})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.ProductResponse](t, resp).FinalPrice.Equal(decimal.NewFromInt(10)))

	resp = ts.do(http.MethodGet, "/api/products?search=caf", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ProductResponse](t, resp), 1)

	resp = ts.do(http.MethodDelete, "/api/products/"+created.ID, ts.tokenOf(admin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/products/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestRouter_RegistroCarritoYPedido(t *testing.T) {
	ts := newTestServer(t)
	b1 := ts.s.AddBranch("Norte")
	b2 := ts.s.AddBranch("Sur")
	p1 := ts.s.AddProduct("Arroz", b1.ID, decimal.NewFromInt(10))
	p2 := ts.s.AddProduct("Aceite", b2.ID, decimal.NewFromInt(5))

	resp := ts.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Name: "Ana", Email: "ana@retail.test", Password: "secreto1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	reg := decode[dto.AuthResponse](t, resp)
	assert.Equal(t, "customer", reg.User.Role)

	resp = ts.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@retail.test", Password: "secreto1", Role: "admin"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "rol declarado distinto al de la cuenta")
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, resp))

	resp = ts.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@retail.test", Password: "secreto1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := "Bearer " + decode[dto.AuthResponse](t, resp).Token

	resp = ts.do(http.MethodPost, "/api/orders/create", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EMPTY_CART", errorCode(t, resp))

	resp = ts.do(http.MethodPost, "/api/cart/add", token, dto.CartItemRequest{ProductID: p1.ID, Quantity: 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/api/cart/add", token, dto.CartItemRequest{ProductID: p2.ID, Quantity: 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cart := decode[dto.CartResponse](t, resp)
	assert.True(t, cart.TotalAmount.Equal(decimal.NewFromInt(25)))

	resp = ts.do(http.MethodPost, "/api/orders/create", token, nil, apphttp.HeaderIdempotencyKey, "k-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := decode[dto.OrderResponse](t, resp)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, "cash_on_delivery", order.PaymentMethod)
	assert.True(t, ts.s.TotalSales(b1.ID).Equal(decimal.NewFromInt(20)))
	assert.True(t, ts.s.TotalSales(b2.ID).Equal(decimal.NewFromInt(5)))

	resp = ts.do(http.MethodPost, "/api/orders/create", token, nil, apphttp.HeaderIdempotencyKey, "k-1")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.CartResponse](t, resp).Items)

	resp = ts.do(http.MethodGet, "/api/orders/my-orders", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.OrderResponse](t, resp), 1)

	other := ts.s.AddUser("otro", entity.RoleCustomer)
	resp = ts.do(http.MethodGet, "/api/orders/"+order.ID, ts.tokenOf(other), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_Documentos(t *testing.T) {
	ts := newTestServer(t)
	customer := ts.s.AddUser("cli", entity.RoleCustomer)
	admin := ts.s.AddUser("admin", entity.RoleAdmin)
	tok := ts.tokenOf(customer)

	resp := ts.send(multipartReq(t, "/api/documents/submit", nil, "document", "foto.pdf", "application/pdf", []byte("texto plano")), tok)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "contenido no PDF")

	resp = ts.send(multipartReq(t, "/api/documents/submit", nil, "", "", "", nil), tok)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "sin archivo")

	resp = ts.send(multipartReq(t, "/api/documents/submit", nil, "document", "cedula.pdf", "application/pdf", []byte(pdfBody)), tok)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doc := decode[dto.DocumentResponse](t, resp)

	resp = ts.send(multipartReq(t, "/api/documents/submit", nil, "document", "cedula.pdf", "application/pdf", []byte(pdfBody)), tok)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DOCUMENT_OUTSTANDING", errorCode(t, resp))

	resp = ts.do(http.MethodGet, "/api/documents/pending", tok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = ts.do(http.MethodPut, "/api/documents/review/"+doc.ID, ts.tokenOf(admin), dto.DecisionRequest{Status: "approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(http.MethodPut, "/api/documents/review/"+doc.ID, ts.tokenOf(admin), dto.DecisionRequest{Status: "rejected"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "solo se revisan documentos pendientes")

	resp = ts.do(http.MethodGet, "/api/auth/me", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.UserResponse](t, resp).IsVerified)
}

func TestRouter_SucursalesYEmpleados(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.s.AddUser("admin", entity.RoleAdmin)
	emp := ts.s.AddUser("emp", entity.RoleEmployee)
	adminTok, empTok := ts.tokenOf(admin), ts.tokenOf(emp)

	resp := ts.do(http.MethodPost, "/api/branches", empTok, dto.CreateBranchRequest{Name: "Norte", Location: "Av. 1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = ts.do(http.MethodPost, "/api/branches", adminTok, dto.CreateBranchRequest{Name: "Norte", Location: "Av. 1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	norte := decode[dto.BranchResponse](t, resp)
	resp = ts.do(http.MethodPost, "/api/branches", adminTok, dto.CreateBranchRequest{Name: "Sur", Location: "Calle 2"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sur := decode[dto.BranchResponse](t, resp)

	resp = ts.do(http.MethodPost, "/api/branches", adminTok, dto.CreateBranchRequest{Name: "  Norte ", Location: "Otra"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/employees/my-branch", empTok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(http.MethodPut, "/api/employees/"+emp.ID+"/assign-branch", adminTok, dto.AssignBranchRequest{BranchID: norte.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(http.MethodPost, "/api/branches/"+sur.ID+"/product-request", empTok, dto.BranchProductRequestInput{ProductName: "Sal", Quantity: 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "otra sucursal")

	resp = ts.do(http.MethodPost, "/api/branches/"+norte.ID+"/product-request", empTok, dto.BranchProductRequestInput{ProductName: "Sal", Quantity: 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(http.MethodPost, "/api/employees/"+emp.ID+"/send-salary", adminTok, dto.SendSalaryRequest{Amount: decimal.NewFromInt(500)})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/employees/salary-info", empTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	info := decode[dto.SalaryInfoResponse](t, resp)
	assert.True(t, info.WalletAmount.Equal(decimal.NewFromInt(500)))
	require.Len(t, info.SalaryHistory, 1)

	resp = ts.do(http.MethodGet, "/api/branches/compare/"+norte.ID+"/"+sur.ID+"/report", adminTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = ts.do(http.MethodGet, "/api/branches/compare/"+norte.ID+"/"+sur.ID, adminTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cmp := decode[dto.BranchComparisonResponse](t, resp)
	assert.Equal(t, 1, cmp.Branch1.EmployeeCount)
}

func TestRouter_SolicitudesDeProducto(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.s.AddUser("admin", entity.RoleAdmin)
	emp := ts.s.AddUser("emp", entity.RoleEmployee)
	b := ts.s.AddBranch("Norte")

	in := dto.CreateProductRequestInput{ProductName: "Harina", Quantity: 4, Urgency: "high"}
	resp := ts.do(http.MethodPost, "/api/product-requests", ts.tokenOf(emp), in)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "sin sucursal asignada")

	require.NoError(t, ts.s.UserRepo().SetAssignedBranch(context.Background(), emp.ID, b.ID))
	resp = ts.do(http.MethodPost, "/api/product-requests", ts.tokenOf(emp), in)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProductRequestResponse](t, resp)

	resp = ts.do(http.MethodGet, "/api/product-requests?status=pending&urgency=high", ts.tokenOf(admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ProductRequestResponse](t, resp), 1)

	resp = ts.do(http.MethodPut, "/api/product-requests/"+created.ID+"/status", ts.tokenOf(admin), dto.DecisionRequest{Status: "fulfilled", AdminResponse: "listo"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/product-requests/stats", ts.tokenOf(admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[dto.ProductRequestStatsResponse](t, resp)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Fulfilled)
}

func TestRouter_IDMalformadoEs400(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.s.AddUser("admin", entity.RoleAdmin)
	emp := ts.s.AddUser("emp", entity.RoleEmployee)
	b := ts.s.AddBranch("Norte")
	adminTok := ts.tokenOf(admin)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
	}{
		{"producto", http.MethodGet, "/api/products/abc", "", nil},
		{"filtro sucursal", http.MethodGet, "/api/products?branch=x", "", nil},
		{"descuento", http.MethodPut, "/api/products/abc/discount", adminTok, map[string]any{"discountPercentage": 10}},
		{"sucursal", http.MethodGet, "/api/branches/abc", adminTok, nil},
		{"comparación", http.MethodGet, "/api/branches/compare/" + b.ID + "/abc", adminTok, nil},
		{"carrito", http.MethodPost, "/api/cart/add", adminTok, dto.CartItemRequest{ProductID: "x", Quantity: 1}},
		{"quitar del carrito", http.MethodDelete, "/api/cart/remove/x", adminTok, nil},
		{"pedido", http.MethodGet, "/api/orders/abc", adminTok, nil},
		{"documento", http.MethodDelete, "/api/documents/abc", adminTok, nil},
		{"asignar sucursal", http.MethodPut, "/api/employees/" + emp.ID + "/assign-branch", adminTok, dto.AssignBranchRequest{BranchID: "x"}},
		{"salario", http.MethodPost, "/api/employees/abc/send-salary", adminTok, dto.SendSalaryRequest{Amount: decimal.NewFromInt(1)}},
		{"solicitud", http.MethodPut, "/api/product-requests/abc/status", adminTok, dto.DecisionRequest{Status: "approved"}},
		{"filtro solicitudes", http.MethodGet, "/api/product-requests?branch=x", adminTok, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := ts.do(tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION", errorCode(t, resp))
		})
	}

	fields := map[string]string{"name": "Café", "originalPrice": "1", "branchId": "x"}
	resp := ts.send(multipartReq(t, "/api/products", fields, "", "", "", nil), adminTok)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestRouter_HistorialDeSalarioConservaElEmpleado(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.s.AddUser("admin", entity.RoleAdmin)
	emp := ts.s.AddUser("emp", entity.RoleEmployee)

	for _, amount := range []int64{100, 250} {
		resp := ts.do(http.MethodPost, "/api/employees/"+emp.ID+"/send-salary", ts.tokenOf(admin), dto.SendSalaryRequest{Amount: decimal.NewFromInt(amount)})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	// Otra request con una ruta distinta reutiliza el buffer de la anterior.
	resp := ts.do(http.MethodGet, "/api/branches", ts.tokenOf(admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/employees/salary-info", ts.tokenOf(emp), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	info := decode[dto.SalaryInfoResponse](t, resp)
	assert.True(t, info.WalletAmount.Equal(decimal.NewFromInt(350)))
	assert.Len(t, info.SalaryHistory, 2)
}

func TestErrorHandler_InternoNoFiltraDetalles(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("pq: password authentication failed for user postgres")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "postgres")
}
