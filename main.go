package main

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"sportmate_server/controllers"
	"sportmate_server/routes"
	"sportmate_server/services"
	"sportmate_server/socket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Pick the storage backend. DynamoDB is the default; STORAGE=memory runs
	// everything in-process for local development.
	var store services.Store
	if os.Getenv("STORAGE") == "memory" {
		log.Println("Using in-memory storage")
		store = services.NewMemoryStore()
	} else {
		log.Println("Initializing DynamoDB client...")
		dynamoClient := services.InitializeDynamoDBClient()
		store = services.NewDynamoStore(&services.DynamoService{Client: dynamoClient})
		log.Println("DynamoDB client initialized.")
	}

	// Initialize services around a shared lock table.
	locks := services.NewKeyedMutex()
	notificationService := services.NewNotificationService(store)
	userService := services.NewUserService(store)
	groupService := services.NewGroupService(store, store, store, notificationService, locks)
	gameService := services.NewGameService(store, store, store, userService, groupService, notificationService, locks)
	turfService := services.NewTurfService(store, store, notificationService)
	friendService := services.NewFriendService(store, store, notificationService)
	chatService := services.NewChatService(store, store, friendService)
	ratingService := services.NewRatingService(store, store, store, notificationService)

	// Start the maintenance sweep: booking expiry and group merging.
	reaper := services.NewReaper(groupService)
	reaperSpec := os.Getenv("REAPER_SPEC")
	if reaperSpec == "" {
		reaperSpec = "@every 5m"
	}
	if err := reaper.Start(reaperSpec); err != nil {
		log.Fatalf("Failed to start maintenance sweep: %v", err)
	}
	defer reaper.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s", port)

	r := mux.NewRouter()

	r.HandleFunc("/", controllers.Welcome).Methods("GET")
	healthController := controllers.NewHealthController(reaper)
	r.HandleFunc("/health", healthController.HandleHealth).Methods("GET")
	r.HandleFunc("/health/sweep", healthController.HandleSweep).Methods("POST")

	routes.RegisterUserRoutes(r, userService)
	routes.RegisterGameRoutes(r, gameService)
	routes.RegisterGroupRoutes(r, groupService)
	routes.RegisterTurfRoutes(r, turfService)
	routes.RegisterFriendRoutes(r, friendService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterRatingRoutes(r, ratingService)
	routes.RegisterNotificationRoutes(r, notificationService)

	// Realtime group chat rooms.
	socketServer := socket.NewSocketServer(groupService, chatService)
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()
	r.PathPrefix("/socket.io/").Handler(socketServer)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	log.Printf("Starting server on port %s...", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
