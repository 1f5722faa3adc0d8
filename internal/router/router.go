package router

import (
	"time"

	"github.com/adrianopessanha/blacksalon/internal/config"
	"github.com/adrianopessanha/blacksalon/internal/handler"
	"github.com/adrianopessanha/blacksalon/internal/infra"
	"github.com/adrianopessanha/blacksalon/internal/middleware"
	"github.com/adrianopessanha/blacksalon/internal/repository"
	"github.com/adrianopessanha/blacksalon/internal/service"
	"github.com/adrianopessanha/blacksalon/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns the configured Gin engine plus the
// worker pool ready to start.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, regras *service.RegrasProvider) (*gin.Engine, *worker.Pool) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	loc := cfg.Location()

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	pdfGen := infra.NewPDFGenerator(cfg.PDFStoragePath)

	var celcoin *infra.CelcoinClient
	if cfg.CelcoinURL != "" {
		celcoin = infra.NewCelcoinClient(cfg.CelcoinURL, cfg.CelcoinToken)
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	barbeiroRepo := repository.NewBarbeiroRepository(db)
	lancamentoRepo := repository.NewLancamentoRepository(db)
	fechamentoRepo := repository.NewFechamentoCaixaRepository(db)
	despesaRepo := repository.NewDespesaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(barbeiroRepo, cfg)
	lancamentoSvc := service.NewLancamentoService(lancamentoRepo, barbeiroRepo, regras, dispatcher, loc)
	extratoSvc := service.NewExtratoService(lancamentoRepo, barbeiroRepo, rdb, dispatcher, cfg.HistoricoJanela, loc)
	caixaSvc := service.NewCaixaService(fechamentoRepo, lancamentoRepo, dispatcher, loc)
	despesaSvc := service.NewDespesaService(despesaRepo)

	var receitaExterna service.ReceitaExternaClient
	if celcoin != nil {
		receitaExterna = celcoin
	}
	relatorioSvc := service.NewRelatorioService(lancamentoRepo, despesaRepo, regras, receitaExterna, pdfGen, loc)

	// ── Worker pool ──────────────────────────────────────────────────────────
	pool := worker.NewPool(rdb,
		worker.NewResumoWorker(extratoSvc),
		worker.NewEmailWorker(mailer, caixaSvc, cfg.AdminEmail),
	)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	barbeirosH := handler.NewBarbeiroHandler(authSvc)
	lancamentosH := handler.NewLancamentoHandler(lancamentoSvc)
	extratoH := handler.NewExtratoHandler(extratoSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	relatoriosH := handler.NewRelatorioHandler(relatorioSvc)
	despesasH := handler.NewDespesaHandler(despesaSvc)
	regrasH := handler.NewRegrasHandler(regras)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, celcoin))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Lançamentos — any authenticated barber writes; deletion is admin-only
		// (enforced again in the service).
		v1.POST("/lancamentos", lancamentosH.Registrar)
		v1.GET("/lancamentos", lancamentosH.Listar)
		v1.DELETE("/lancamentos/:id", middleware.RequireAdmin(), lancamentosH.Excluir)

		// Extrato — the service enforces self-or-admin access per barber.
		extrato := v1.Group("/extrato")
		{
			extrato.GET("/:barbeiroId", extratoH.Resumo)
			extrato.POST("/:barbeiroId/adiantamentos", extratoH.CriarAdiantamento)
			extrato.POST("/:barbeiroId/fechar-comissao", extratoH.FecharComissao)
		}

		caixa := v1.Group("/caixa", middleware.RequireAdmin())
		{
			caixa.POST("/fechamentos", caixaH.Fechar)
			caixa.GET("/fechamentos/:lojaId", caixaH.Historico)
			caixa.GET("/fechamentos/:lojaId/:data", caixaH.Obter)
			caixa.GET("/previa/:lojaId", caixaH.Previa)
		}

		relatorios := v1.Group("/relatorios", middleware.RequireAdmin())
		{
			relatorios.GET("/mensal", relatoriosH.Mensal)
			relatorios.GET("/mensal/pdf", relatoriosH.MensalPDF)
		}

		despesas := v1.Group("/despesas", middleware.RequireAdmin())
		{
			despesas.POST("", despesasH.Criar)
			despesas.GET("", despesasH.Listar)
			despesas.PATCH("/:id/pagar", despesasH.MarcarPaga)
			despesas.DELETE("/:id", despesasH.Excluir)
		}

		v1.GET("/regras", regrasH.Vigentes)
		v1.POST("/regras/reload", middleware.RequireAdmin(), regrasH.Recarregar)

		barbeiros := v1.Group("/barbeiros", middleware.RequireAdmin())
		{
			barbeiros.POST("", barbeirosH.Criar)
			barbeiros.GET("", barbeirosH.Listar)
			barbeiros.PUT("/:id", barbeirosH.Atualizar)
			barbeiros.DELETE("/:id", barbeirosH.Desativar)
			barbeiros.PATCH("/:id/reativar", barbeirosH.Reativar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, pool
}
