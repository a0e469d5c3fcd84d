package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/internal/agent"
	"github.com/invoicetradeai-create/bizzauto-project/internal/client"
	clientdomain "github.com/invoicetradeai-create/bizzauto-project/internal/client/domain"
	"github.com/invoicetradeai-create/bizzauto-project/internal/company"
	companydomain "github.com/invoicetradeai-create/bizzauto-project/internal/company/domain"
	"github.com/invoicetradeai-create/bizzauto-project/internal/config"
	"github.com/invoicetradeai-create/bizzauto-project/internal/docpipe"
	"github.com/invoicetradeai-create/bizzauto-project/internal/expense"
	expensedomain "github.com/invoicetradeai-create/bizzauto-project/internal/expense/domain"
	"github.com/invoicetradeai-create/bizzauto-project/internal/invoice"
	invoicedomain "github.com/invoicetradeai-create/bizzauto-project/internal/invoice/domain"
	"github.com/invoicetradeai-create/bizzauto-project/internal/jobs"
	obsmiddleware "github.com/invoicetradeai-create/bizzauto-project/internal/observability/logger"
	obsmetrics "github.com/invoicetradeai-create/bizzauto-project/internal/observability/metrics"
	"github.com/invoicetradeai-create/bizzauto-project/internal/product"
	productdomain "github.com/invoicetradeai-create/bizzauto-project/internal/product/domain"
	"github.com/invoicetradeai-create/bizzauto-project/internal/providers/pdf"
	"github.com/invoicetradeai-create/bizzauto-project/internal/purchase"
	purchasedomain "github.com/invoicetradeai-create/bizzauto-project/internal/purchase/domain"
	"github.com/invoicetradeai-create/bizzauto-project/internal/supplier"
	supplierdomain "github.com/invoicetradeai-create/bizzauto-project/internal/supplier/domain"
	"github.com/invoicetradeai-create/bizzauto-project/internal/whatsapp"
	wadomain "github.com/invoicetradeai-create/bizzauto-project/internal/whatsapp/domain"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/repository"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	company.Module,
	client.Module,
	product.Module,
	supplier.Module,
	invoice.Module,
	purchase.Module,
	expense.Module,
	whatsapp.Module,
	agent.Module,
	pdf.Module,
	jobs.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, m *obsmetrics.Metrics, registry *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(log))
	r.Use(m.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return r
}

func registerGin(log *zap.Logger, m *obsmetrics.Metrics, registry *prometheus.Registry) *gin.Engine {
	return NewEngine(log, m, registry)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg *config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         *config.Config
	db          *gorm.DB
	log         *zap.Logger
	queue       jobs.Queue
	pdf         pdf.Provider
	docs        repository.Repository[docpipe.UploadedDoc]
	companySvc  companydomain.Service
	clientSvc   clientdomain.Service
	productSvc  productdomain.Service
	supplierSvc supplierdomain.Service
	invoiceSvc  invoicedomain.Service
	purchaseSvc purchasedomain.Service
	expenseSvc  expensedomain.Service
	whatsappSvc wadomain.Service
	sender      wadomain.Sender
	agentSvc    agent.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         *config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	Queue       jobs.Queue
	PDF         pdf.Provider
	CompanySvc  companydomain.Service
	ClientSvc   clientdomain.Service
	ProductSvc  productdomain.Service
	SupplierSvc supplierdomain.Service
	InvoiceSvc  invoicedomain.Service
	PurchaseSvc purchasedomain.Service
	ExpenseSvc  expensedomain.Service
	WhatsappSvc wadomain.Service
	Sender      wadomain.Sender
	AgentSvc    agent.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		log:         p.Log.Named("http.server"),
		queue:       p.Queue,
		pdf:         p.PDF,
		docs:        repository.ProvideStore[docpipe.UploadedDoc](p.DB),
		companySvc:  p.CompanySvc,
		clientSvc:   p.ClientSvc,
		productSvc:  p.ProductSvc,
		supplierSvc: p.SupplierSvc,
		invoiceSvc:  p.InvoiceSvc,
		purchaseSvc: p.PurchaseSvc,
		expenseSvc:  p.ExpenseSvc,
		whatsappSvc: p.WhatsappSvc,
		sender:      p.Sender,
		agentSvc:    p.AgentSvc,
	}

	svc.registerAPIRoutes()
	svc.registerWebhookRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Companies --------
	// Company creation bootstraps a tenant, so it runs outside the
	// tenant context.
	api.POST("/companies", s.CreateCompany)
	api.GET("/companies", s.ListCompanies)
	api.GET("/companies/:id", s.GetCompanyByID)
	api.PATCH("/companies/:id", s.UpdateCompany)

	tenant := api.Group("", s.CompanyContext())

	// -------- Clients --------
	tenant.GET("/clients", s.ListClients)
	tenant.POST("/clients", s.CreateClient)
	tenant.GET("/clients/:id", s.GetClientByID)
	tenant.PATCH("/clients/:id", s.UpdateClient)
	tenant.DELETE("/clients/:id", s.DeleteClient)

	// -------- Products --------
	tenant.GET("/products", s.ListProducts)
	tenant.POST("/products", s.CreateProduct)
	tenant.GET("/products/low-stock", s.ListLowStockProducts)
	tenant.GET("/products/:id", s.GetProductByID)
	tenant.PATCH("/products/:id", s.UpdateProduct)
	tenant.POST("/products/:id/stock", s.UpdateProductStock)
	tenant.DELETE("/products/:id", s.DeleteProduct)

	// -------- Suppliers --------
	tenant.GET("/suppliers", s.ListSuppliers)
	tenant.POST("/suppliers", s.CreateSupplier)
	tenant.GET("/suppliers/:id", s.GetSupplierByID)
	tenant.PATCH("/suppliers/:id", s.UpdateSupplier)
	tenant.DELETE("/suppliers/:id", s.DeleteSupplier)

	// -------- Invoices --------
	tenant.GET("/invoices", s.ListInvoices)
	tenant.POST("/invoices", s.CreateInvoice)
	tenant.GET("/invoices/:id", s.GetInvoiceByID)
	tenant.GET("/invoices/:id/render", s.RenderInvoice)
	tenant.PATCH("/invoices/:id", s.UpdateInvoice)
	tenant.DELETE("/invoices/:id", s.DeleteInvoice)

	// -------- Purchases --------
	tenant.GET("/purchases", s.ListPurchases)
	tenant.POST("/purchases", s.CreatePurchase)
	tenant.GET("/purchases/:id", s.GetPurchaseByID)
	tenant.DELETE("/purchases/:id", s.DeletePurchase)

	// -------- Expenses --------
	tenant.GET("/expenses", s.ListExpenses)
	tenant.POST("/expenses", s.CreateExpense)
	tenant.GET("/expenses/:id", s.GetExpenseByID)
	tenant.PATCH("/expenses/:id", s.UpdateExpense)
	tenant.DELETE("/expenses/:id", s.DeleteExpense)

	// -------- WhatsApp --------
	tenant.GET("/whatsapp/logs", s.ListWhatsappLogs)
	tenant.POST("/whatsapp/send", s.SendWhatsappMessage)

	// -------- Documents --------
	tenant.POST("/documents", s.UploadDocument)
	tenant.GET("/documents/:id", s.GetDocumentByID)
}

func (s *Server) registerWebhookRoutes() {
	s.engine.GET("/webhook/whatsapp", s.VerifyWhatsappWebhook)
	s.engine.POST("/webhook/whatsapp", s.ReceiveWhatsappWebhook)
}
