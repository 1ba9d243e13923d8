package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"stemchat/internal/common"
	"stemchat/internal/config"
	"stemchat/internal/dbmongo"
	"stemchat/internal/dbmysql"
	"stemchat/internal/di"
	"stemchat/internal/realtime"
)

func main() {
	cfg := config.LoadConfig()
	log.Println("configuration loaded")

	db, err := dbmysql.NewMySQL(cfg)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	mongoClient, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		log.Fatalf("failed to initialize mongodb: %v", err)
	}
	defer mongoClient.Close(context.Background())

	tokens := common.NewTokenManager(cfg)
	avatars := dbmongo.NewAvatarStorage(mongoClient)

	hub := realtime.NewHub()
	go hub.Run()

	accountHandler := di.InitializeAccountHandler(db, tokens, avatars)
	chatHandler := di.InitializeChatHandler(db, hub)
	resolver := di.InitializeResolver(db)
	log.Println("dependencies wired successfully")

	authRequired := common.AuthMiddleware(tokens, resolver)

	router := mux.NewRouter()
	router.Use(common.CORSMiddleware(cfg.Server.AllowedOrigin))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", accountHandler.Register).Methods("POST", "OPTIONS")
	api.HandleFunc("/login", accountHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/avatars/{fileID}", accountHandler.ServeAvatar).Methods("GET")

	protected := api.NewRoute().Subrouter()
	protected.Use(authRequired)
	protected.HandleFunc("/profile", accountHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/profile", accountHandler.UpdateProfile).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/profile/password", accountHandler.ChangePassword).Methods("POST", "OPTIONS")
	protected.HandleFunc("/profile/avatar", accountHandler.UploadAvatar).Methods("POST", "OPTIONS")
	protected.HandleFunc("/conversations", chatHandler.StartConversation).Methods("POST", "OPTIONS")
	protected.HandleFunc("/conversations/{conversationID}/messages", chatHandler.History).Methods("GET")
	protected.HandleFunc("/conversations/{conversationID}/participants", chatHandler.Participants).Methods("GET")
	protected.HandleFunc("/messages", chatHandler.SendMessage).Methods("POST", "OPTIONS")
	protected.HandleFunc("/messages/{messageID}/read", chatHandler.MarkRead).Methods("POST", "OPTIONS")

	router.Handle("/ws", authRequired(realtime.ServeWS(hub)))

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	log.Printf("server listening on %s", addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
