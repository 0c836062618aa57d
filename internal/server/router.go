package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accounts "art-auction/internal/accountService"
	"art-auction/internal/auth"
	bidding "art-auction/internal/biddingService"
	catalog "art-auction/internal/catalogService"
	"art-auction/internal/live"
	model "art-auction/internal/models"
	payments "art-auction/internal/paymentService"
	sellers "art-auction/internal/sellerService"
	accounthandler "art-auction/services/accounts/handler"
	biddinghandler "art-auction/services/bidding/handler"
	cataloghandler "art-auction/services/catalog/handler"
	"art-auction/services/helpers"
	paymenthandler "art-auction/services/payments/handler"
	sellerhandler "art-auction/services/sellers/handler"
	"art-auction/utils"
)

// Deps bundles everything the router needs from main
type Deps struct {
	Accounts *accounts.AccountService
	Bidding  *bidding.BiddingService
	Catalog  *catalog.CatalogService
	Payments *payments.PaymentService
	Sellers  *sellers.SellerService
	Tokens   *auth.TokenManager
	Hub      *live.Hub
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(MetricsMiddleware)

	accountHandler := accounthandler.NewAccountHandler(deps.Accounts)
	biddingHandler := biddinghandler.NewBiddingHandler(deps.Bidding)
	catalogHandler := cataloghandler.NewCatalogHandler(deps.Catalog)
	paymentHandler := paymenthandler.NewPaymentHandler(deps.Payments)
	sellerHandler := sellerhandler.NewSellerHandler(deps.Sellers)

	authed := Authenticated(deps.Tokens)
	optional := OptionalAuth(deps.Tokens)
	admin := RequireRole(model.RoleAdmin)

	router.GET("/health", func(c *gin.Context) {
		utils.JSONResponse(c, 200, gin.H{"status": "up"}, "service is healthy")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", accountHandler.RegisterHandler)
		authRoutes.POST("/login", accountHandler.LoginHandler)
	}

	items := router.Group("/items")
	{
		items.GET("", catalogHandler.ListItemsHandler)
		items.GET("/:item_id", catalogHandler.GetItemHandler)
		items.GET("/:item_id/bids", biddingHandler.GetBidsByItemHandler)
		items.GET("/:item_id/winning", biddingHandler.GetWinningBidHandler)
		items.GET("/:item_id/panel", optional, biddingHandler.GetPanelHandler)
		items.GET("/:item_id/bidders", biddingHandler.GetTopBiddersHandler)

		items.POST("", authed, catalogHandler.CreateItemHandler)
		items.POST("/:item_id/chat", authed, biddingHandler.PostChatMessageHandler)
		items.PUT("/:item_id", authed, catalogHandler.UpdateItemHandler)
		items.DELETE("/:item_id", authed, catalogHandler.DeleteItemHandler)
		items.PUT("/:item_id/status", authed, admin, catalogHandler.UpdateItemStatusHandler)
		items.POST("/refresh", authed, admin, catalogHandler.RefreshAuctionStatusesHandler)
	}

	// live bid feed; anonymous watchers get a generated client ID
	router.GET("/ws/items/:item_id", optional, func(c *gin.Context) {
		clientID := helpers.CallerID(c)
		if clientID == "" {
			clientID = utils.GenerateID()
		}
		if err := deps.Hub.ServeItem(c.Writer, c.Request, clientID, c.Param("item_id")); err != nil {
			utils.Warn("ws: upgrade failed", map[string]any{
				"item_id": c.Param("item_id"),
				"error":   err.Error(),
			})
		}
	})

	bids := router.Group("/bids", authed)
	{
		bids.POST("", biddingHandler.RecordBidHandler)
	}

	users := router.Group("/users")
	{
		users.GET("", authed, admin, accountHandler.ListUsersHandler)
		users.GET("/:user_id", authed, accountHandler.GetUserHandler)
		users.PUT("/:user_id", authed, accountHandler.UpdateUserHandler)
		users.DELETE("/:user_id", authed, admin, accountHandler.DeleteUserHandler)
		users.GET("/:user_id/items", authed, biddingHandler.GetItemsByUserHandler)
		users.GET("/:user_id/bids", authed, biddingHandler.GetBidsByUserHandler)
	}

	categories := router.Group("/categories")
	{
		categories.GET("", catalogHandler.ListCategoriesHandler)
		categories.POST("", authed, admin, catalogHandler.CreateCategoryHandler)
	}

	applications := router.Group("/applications", authed)
	{
		applications.POST("", sellerHandler.ApplyHandler)
		applications.GET("", admin, sellerHandler.ListApplicationsHandler)
		applications.GET("/:application_id", admin, sellerHandler.GetApplicationHandler)
		applications.PUT("/:application_id/status", admin, sellerHandler.UpdateStatusHandler)
		applications.DELETE("/:application_id", admin, sellerHandler.DeleteApplicationHandler)
	}

	paymentRoutes := router.Group("/payments", authed)
	{
		paymentRoutes.POST("", paymentHandler.CreatePaymentHandler)
		paymentRoutes.GET("", paymentHandler.ListMyPaymentsHandler)
		paymentRoutes.GET("/:payment_id", paymentHandler.GetPaymentHandler)
	}

	router.GET("/sellers/:seller_id/payments", authed, paymentHandler.ListSellerPaymentsHandler)

	return router
}
