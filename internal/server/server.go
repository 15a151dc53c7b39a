package server

import (
	"log"
	"os"
	"strings"
	"time"

	"anoa.com/campquest/internal/handler"
	"anoa.com/campquest/internal/middleware"
	"anoa.com/campquest/internal/repository"
	"anoa.com/campquest/internal/service"
	"anoa.com/campquest/pkg/mailer"
	"anoa.com/campquest/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	marketplaceRepo := repository.NewMarketplaceRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	supportRepo := repository.NewSupportRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	mail, err := mailer.NewSMTPMailer()
	if err != nil {
		log.Printf("mailer disabled: %v", err)
		mail = nil
	}

	meiliHost := os.Getenv("MEILISEARCH_HOST")
	if meiliHost == "" {
		meiliHost = "http://localhost:7700"
	}
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(os.Getenv("MEILI_MASTER_KEY")))

	searchSvc := service.NewSearchService(meiliClient)
	searchHandler := handler.NewSearchHandler(searchSvc)

	notificationSvc := service.NewNotificationService(notificationRepo, redisClient)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	statsSvc := service.NewStatsService(statsRepo, userRepo)

	achievementSvc := service.NewAchievementService(achievementRepo, userRepo, statsSvc, notificationSvc, mail)
	achievementHandler := handler.NewAchievementHandler(achievementSvc)

	authSvc := service.NewAuthService(userRepo, achievementSvc, imageStorage, mail, redisClient)
	authHandler := handler.NewAuthHandler(authSvc)

	adminSvc := service.NewAdminService(userRepo)
	adminHandler := handler.NewAdminHandler(adminSvc)

	campaignSvc := service.NewCampaignService(campaignRepo, userRepo, achievementSvc, notificationSvc, searchSvc, imageStorage, redisClient)
	campaignHandler := handler.NewCampaignHandler(campaignSvc)

	blogSvc := service.NewBlogService(blogRepo, achievementSvc, searchSvc, redisClient)
	blogHandler := handler.NewBlogHandler(blogSvc)

	marketplaceSvc := service.NewMarketplaceService(marketplaceRepo, achievementSvc, notificationSvc)
	marketplaceHandler := handler.NewMarketplaceHandler(marketplaceSvc)

	conversationSvc := service.NewConversationService(conversationRepo, userRepo, achievementSvc, notificationSvc)
	conversationHandler := handler.NewConversationHandler(conversationSvc)

	supportSvc := service.NewSupportService(supportRepo)
	supportHandler := handler.NewSupportHandler(supportSvc)

	settingSvc := service.NewSettingService(settingRepo)
	settingHandler := handler.NewSettingHandler(settingSvc)

	leaderboardSvc := service.NewLeaderboardService(userRepo)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc)

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/otp", authHandler.RequestOTP)
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	api.GET("/posts", blogHandler.List)
	api.GET("/posts/slug/:slug", blogHandler.GetBySlug)
	api.GET("/posts/:id/comments", blogHandler.ListComments)

	api.GET("/campaigns", campaignHandler.List)
	api.GET("/campaigns/slug/:slug", campaignHandler.GetBySlug)

	api.GET("/listings", marketplaceHandler.ListListings)
	api.GET("/listings/:id", marketplaceHandler.GetListing)
	api.GET("/listings/:id/reviews", marketplaceHandler.ListReviews)

	api.GET("/leaderboard", leaderboardHandler.Get)
	api.GET("/search", searchHandler.Search)
	api.GET("/settings", settingHandler.List)
	api.GET("/settings/:key", settingHandler.Get)

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/me", authHandler.Me)
		protected.PUT("/me/profile", authHandler.UpdateProfile)
		protected.POST("/me/avatar", authHandler.UploadAvatar)

		protected.GET("/achievements", achievementHandler.List)
		protected.POST("/achievements/check", achievementHandler.Check)

		protected.POST("/posts", blogHandler.Create)
		protected.PUT("/posts/:id", authMiddleware.ResolveRole(), blogHandler.Update)
		protected.DELETE("/posts/:id", authMiddleware.ResolveRole(), blogHandler.Delete)
		protected.POST("/posts/:id/comments", blogHandler.CreateComment)
		protected.DELETE("/comments/:id", authMiddleware.ResolveRole(), blogHandler.DeleteComment)

		protected.POST("/tasks/:taskId/submissions", campaignHandler.SubmitProof)
		protected.GET("/submissions/me", campaignHandler.MySubmissions)

		protected.POST("/listings", marketplaceHandler.CreateListing)
		protected.PUT("/listings/:id", marketplaceHandler.UpdateListing)
		protected.POST("/listings/:id/offers", marketplaceHandler.MakeOffer)
		protected.GET("/listings/:id/offers", marketplaceHandler.ListOffers)
		protected.POST("/offers/:id/accept", marketplaceHandler.AcceptOffer)
		protected.POST("/listings/:id/reviews", marketplaceHandler.CreateReview)

		protected.POST("/conversations", conversationHandler.Start)
		protected.GET("/conversations", conversationHandler.List)
		protected.POST("/conversations/:id/messages", conversationHandler.SendMessage)
		protected.GET("/conversations/:id/messages", conversationHandler.ListMessages)

		protected.POST("/support/tickets", supportHandler.Create)
		protected.GET("/support/tickets/me", supportHandler.ListMine)
		protected.GET("/support/tickets/:id", authMiddleware.ResolveRole(), supportHandler.Get)
		protected.POST("/support/tickets/:id/replies", authMiddleware.ResolveRole(), supportHandler.Reply)

		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.Stream)

		protected.GET("/leaderboard/me", leaderboardHandler.MyRank)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.PUT("/users/:id/role", adminHandler.UpdateUserRole)
			adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)

			adminGroup.POST("/achievements/seed", achievementHandler.Seed)

			adminGroup.POST("/campaigns", campaignHandler.Create)
			adminGroup.PUT("/campaigns/:id", campaignHandler.Update)
			adminGroup.DELETE("/campaigns/:id", campaignHandler.Delete)

			adminGroup.GET("/submissions/pending", campaignHandler.PendingSubmissions)
			adminGroup.PUT("/submissions/:id/review", campaignHandler.ReviewSubmission)

			adminGroup.GET("/support/tickets", supportHandler.ListAll)
			adminGroup.PUT("/support/tickets/:id/close", supportHandler.Close)

			adminGroup.PUT("/settings", settingHandler.Put)
			adminGroup.DELETE("/settings/:key", settingHandler.Delete)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
