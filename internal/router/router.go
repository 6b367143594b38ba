package router

import (
	"time"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/config"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/handler"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/middleware"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/repository"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/service"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	reglaRepo := repository.NewReglaRepository(db)
	oportunidadRepo := repository.NewOportunidadRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	cierreRepo := repository.NewCierreRepository(db)
	notaCreditoRepo := repository.NewNotaCreditoRepository(db)
	actividadRepo := repository.NewActividadRepository(db)
	bonoRepo := repository.NewBonoRepository(db)
	gastoRepo := repository.NewGastoRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	productoSvc := service.NewProductoService(productoRepo, clienteRepo)
	reglaSvc := service.NewReglaService(reglaRepo)
	oportunidadSvc := service.NewOportunidadService(oportunidadRepo, clienteRepo, reglaRepo, dispatcher, cfg.CodigoPais)
	carritoStore := service.NewRedisCarritoStore(rdb)
	cobroSvc := service.NewCobroService(carritoStore, productoRepo, clienteRepo, ticketRepo, dispatcher)
	cajaSvc := service.NewCajaService(ticketRepo, cierreRepo)
	devolucionSvc := service.NewDevolucionService(ticketRepo, notaCreditoRepo)
	actividadSvc := service.NewActividadService(actividadRepo, clienteRepo, dispatcher, cfg.CodigoPais)
	bonoSvc := service.NewBonoService(bonoRepo, clienteRepo)
	gastoSvc := service.NewGastoService(gastoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	reglasH := handler.NewReglasHandler(reglaSvc)
	oportunidadesH := handler.NewOportunidadesHandler(oportunidadSvc)
	cobrosH := handler.NewCobrosHandler(cobroSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	devolucionesH := handler.NewDevolucionesHandler(devolucionSvc)
	actividadesH := handler.NewActividadesHandler(actividadSvc)
	bonosH := handler.NewBonosHandler(bonoSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

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
		// Roles: instructor, encargado, administrador — declared per-endpoint
		todos := middleware.RequireRole("instructor", "encargado", "administrador")
		gestion := middleware.RequireRole("encargado", "administrador")
		admin := middleware.RequireRole("administrador")

		// CRM
		clientes := v1.Group("/clientes", todos)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.POST("/:id/cursos", clientesH.RegistrarCurso)
		}
		v1.DELETE("/clientes/:id", gestion, clientesH.Eliminar)

		// Catálogo — lectura para todos, escritura solo administrador
		v1.GET("/productos", todos, productosH.Listar)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PUT("/:id/precio-especial", productosH.FijarPrecioEspecial)
		}

		// Reglas de venta sugerida — escritura solo administrador
		v1.GET("/reglas", todos, reglasH.Listar)
		reglas := v1.Group("/reglas", admin)
		{
			reglas.POST("", reglasH.Crear)
			reglas.PUT("/:id", reglasH.Actualizar)
			reglas.DELETE("/:id", reglasH.Eliminar)
		}

		// Oportunidades de venta
		opps := v1.Group("/oportunidades", todos)
		{
			opps.GET("", oportunidadesH.Listar)
			opps.PUT("/estado", oportunidadesH.CambiarEstado)
			opps.PUT("/comentario", oportunidadesH.Comentar)
			opps.POST("/contactar", oportunidadesH.Contactar)
		}
		v1.DELETE("/oportunidades", gestion, oportunidadesH.Eliminar)

		// Carrito de cobro — sesión por (centro, cajero)
		carrito := v1.Group("/carrito", todos)
		{
			carrito.GET("", cobrosH.VerCarrito)
			carrito.DELETE("", cobrosH.Vaciar)
			carrito.POST("/productos", cobrosH.AgregarProducto)
			carrito.POST("/lineas", cobrosH.AgregarLineaManual)
			carrito.DELETE("/lineas", cobrosH.QuitarLinea)
			carrito.PUT("/descuento", cobrosH.FijarDescuento)
			carrito.PUT("/cliente", cobrosH.AsignarCliente)
			carrito.POST("/canje", cobrosH.CanjearPuntos)
		}
		v1.POST("/cobros", todos, cobrosH.Cobrar)

		// Tickets
		v1.GET("/tickets", todos, cobrosH.ListarTickets)
		v1.GET("/tickets/:id", todos, cobrosH.ObtenerTicket)
		v1.POST("/tickets/:id/email", todos, cobrosH.EnviarTicketEmail)

		// Caja — cierre restringido a encargado/administrador
		v1.POST("/caja/cierre", gestion, cajaH.CerrarCaja)
		v1.GET("/caja/cierres", gestion, cajaH.ListarCierres)
		v1.GET("/caja/cierres/:id", gestion, cajaH.ObtenerCierre)

		// Devoluciones
		v1.POST("/devoluciones", gestion, devolucionesH.Procesar)
		v1.GET("/devoluciones", gestion, devolucionesH.Listar)

		// Agenda
		actividades := v1.Group("/actividades", todos)
		{
			actividades.POST("", actividadesH.Crear)
			actividades.GET("", actividadesH.ListarSemana)
			actividades.PUT("/:id", actividadesH.Actualizar)
			actividades.DELETE("/:id", actividadesH.Eliminar)
			actividades.POST("/:id/asistentes", actividadesH.Apuntar)
			actividades.POST("/:id/completar", actividadesH.Completar)
			actividades.POST("/recordatorios", actividadesH.Recordatorios)
		}

		// Bonos
		bonos := v1.Group("/bonos", todos)
		{
			bonos.POST("", bonosH.Crear)
			bonos.GET("", bonosH.Listar)
			bonos.POST("/:id/consumir", bonosH.Consumir)
		}

		// Gastos — solo administrador
		gastos := v1.Group("/gastos", admin)
		{
			gastos.POST("", gastosH.Crear)
			gastos.GET("", gastosH.Listar)
			gastos.GET("/total", gastosH.TotalMes)
			gastos.PUT("/:id", gastosH.Actualizar)
			gastos.DELETE("/:id", gastosH.Eliminar)
		}

		// Usuarios — solo administrador
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
