package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservation/controllers"
	"github.com/yeremiapane/restaurant-reservation/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	profileCtrl := controllers.NewCustomerProfileController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db)
	reservationCtrl := controllers.NewReservationController(db)
	chatCtrl := controllers.NewChatController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Reservasi (customer tidak perlu login)
	r.POST("/reservations", reservationCtrl.CreateReservation)
	r.GET("/reservations/:code", reservationCtrl.GetReservationByCode)

	// Lihat meja & menu
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/by-category", menuCtrl.GetMenuByCategory)

	// Checkout keranjang + pembayaran simulasi
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.POST("/orders/:order_id/pay", orderCtrl.PayOrder)

	// Widget chatbot
	r.POST("/chat", chatCtrl.SendMessage)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)

	// RESERVATIONS (staff/admin)
	auth.GET("/reservations", reservationCtrl.GetAllReservations)
	auth.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
	auth.PATCH("/reservations/:reservation_id", reservationCtrl.UpdateReservationStatus)
	auth.PUT("/reservations/:reservation_id", reservationCtrl.UpdateReservationStatus)

	// TABLES (staff/admin)
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	auth.POST("/tables/:table_id/deactivate", tableCtrl.DeactivateTable)
	auth.POST("/tables/:table_id/activate", tableCtrl.ActivateTable)

	// CUSTOMER PROFILES (staff/admin)
	auth.GET("/customers", profileCtrl.GetAllProfiles)
	auth.GET("/customers/:profile_id", profileCtrl.GetProfileByID)
	auth.PATCH("/customers/:profile_id", profileCtrl.UpdateProfile)

	// MENU CATEGORIES (staff/admin)
	auth.POST("/categories", categoryCtrl.CreateCategory)
	auth.GET("/categories/:cat_id", categoryCtrl.GetCategoryByID)
	auth.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

	// MENUS (staff/admin)
	auth.GET("/menus", menuCtrl.GetAllMenus)
	auth.POST("/menus", menuCtrl.CreateMenu)
	auth.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
	auth.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
	auth.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)

	// ORDERS (staff/admin)
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)

	// CHAT LOGS (staff/admin)
	auth.GET("/chat-logs", chatCtrl.GetChatLogs)

	// Routes khusus role admin
	adminOnly := auth.Group("/")
	adminOnly.Use(middlewares.RequireRole("admin"))
	{
		adminOnly.GET("/users", userCtrl.GetAllUsers)
		adminOnly.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
		adminOnly.GET("/reports/reservations/export", adminCtrl.ExportReservations)
	}

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/dashboard", controllers.EventsHandler)
	}

	return r
}
