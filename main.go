package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"roomify/config"
	"roomify/database"
	blockedRepoPkg "roomify/database/repository/blocked"
	bookingRepoPkg "roomify/database/repository/booking"
	contentRepoPkg "roomify/database/repository/content"
	roomRepoPkg "roomify/database/repository/room"
	"roomify/database/seed"
	"roomify/handlers"
	"roomify/routes"
	"roomify/services/booking"
	"roomify/services/chat"
	"roomify/services/notification"
	"roomify/utils"
)

const chatSessionTTL = 30 * time.Minute

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.InitPhoneCache()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	roomRepo := roomRepoPkg.NewMongoRoomRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	blockedRepo := blockedRepoPkg.NewMongoBlockedRepo()
	contentRepo := contentRepoPkg.NewMongoContentRepo()

	setupCtx, cancelSetup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelSetup()
	if err := bookingRepo.EnsureIndexes(setupCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	if err := seed.Seed(setupCtx, roomRepo, contentRepo); err != nil {
		logger.Sugar().Fatalf("main: failed to seed database: %v", err)
	}

	// services.
	notifier := notification.NewDefaultNotificationService(notification.Channels{
		EmailEnabled: config.AppConfig.EmailEnabled,
		PushEnabled:  config.AppConfig.PushEnabled,
	}, utils.FCMClient)

	bookingService := &booking.DefaultBookingService{
		Rooms:    roomRepo,
		Bookings: bookingRepo,
		Blocked:  blockedRepo,
		Notifier: notifier,
	}

	sessionStore := chat.NewRedisSessionStore(utils.GetSessionCacheClient(), chatSessionTTL)
	phoneBook := chat.NewRedisPhoneBook(utils.GetPhoneCacheClient())
	chatService := chat.NewDefaultChatService(sessionStore, phoneBook, bookingService, roomRepo, chat.VenueHours{
		OpenHour:  config.AppConfig.VenueOpenHour,
		CloseHour: config.AppConfig.VenueCloseHour,
	})

	// handlers.
	roomHandler := handlers.NewRoomHandler(roomRepo, bookingService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	chatHandler := handlers.NewChatHandler(chatService)
	adminHandler := handlers.NewAdminHandler(roomRepo, bookingRepo, blockedRepo, contentRepo, bookingService)
	storageHandler := handlers.NewStorageHandler(cloudinaryStorageService, roomRepo)
	contentHandler := handlers.NewContentHandler(contentRepo)

	handlerBundle := &handlers.HandlerBundle{
		SiteContentHandler:      contentHandler.SiteContentHandler,
		ListRoomsHandler:        roomHandler.ListRoomsHandler,
		GetRoomHandler:          roomHandler.GetRoomHandler,
		RoomAvailabilityHandler: roomHandler.RoomAvailabilityHandler,
		CreateBookingHandler:    bookingHandler.CreateBookingHandler,
		CheckBookingHandler:     bookingHandler.CheckBookingHandler,

		ChatMessageHandler: chatHandler.MessageHandler,
		ChatFollowHandler:  chatHandler.FollowHandler,

		AdminLoginHandler:           adminHandler.LoginHandler,
		AdminListRoomsHandler:       adminHandler.ListRoomsHandler,
		AdminCreateRoomHandler:      adminHandler.CreateRoomHandler,
		AdminUpdateRoomHandler:      adminHandler.UpdateRoomHandler,
		AdminDeactivateRoomHandler:  adminHandler.DeactivateRoomHandler,
		AdminListBookingsHandler:    adminHandler.ListBookingsHandler,
		AdminCancelBookingHandler:   adminHandler.CancelBookingHandler,
		AdminCompleteBookingHandler: adminHandler.CompleteBookingHandler,
		AdminListBlackoutsHandler:   adminHandler.ListBlackoutsHandler,
		AdminCreateBlackoutHandler:  adminHandler.CreateBlackoutHandler,
		AdminDeleteBlackoutHandler:  adminHandler.DeleteBlackoutHandler,
		AdminGetContentHandler:      adminHandler.GetContentHandler,
		AdminSetContentHandler:      adminHandler.SetContentHandler,
		AdminStatsHandler:           adminHandler.StatsHandler,
		UploadRoomPhotoHandler:      storageHandler.UploadRoomPhotoHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
