package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"

	"github.com/rahulm682/VideoAppBackend/internal/cache"
	"github.com/rahulm682/VideoAppBackend/internal/config"
	"github.com/rahulm682/VideoAppBackend/internal/database"
	"github.com/rahulm682/VideoAppBackend/internal/handler"
	"github.com/rahulm682/VideoAppBackend/internal/redis"
	"github.com/rahulm682/VideoAppBackend/internal/repository"
	"github.com/rahulm682/VideoAppBackend/internal/service"
)

func Run() error {
	ctx := context.Background()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 3. Connect to Redis
	rdb, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer rdb.Close()
	if err := rdb.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	// 4. Asset store (R2 via the S3 API)
	assets, err := service.NewMediaService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create media service: %w", err)
	}

	// 5. Repositories
	userRepo := repository.NewUserRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)

	// 6. Services
	assembler := service.NewViewAssembler(likeRepo, userRepo)
	countCache := cache.NewLikeCountCache(rdb.Client)
	engagement := service.NewEngagementService(likeRepo, videoRepo, tweetRepo, commentRepo, countCache, assembler)
	comments := service.NewCommentService(commentRepo, videoRepo, engagement, assembler, db)
	videos := service.NewVideoService(videoRepo, playlistRepo, engagement, comments, assembler, assets, db)
	tweets := service.NewTweetService(tweetRepo, engagement, assembler, db)
	playlists := service.NewPlaylistService(playlistRepo, videoRepo, assembler)

	// 7. Handlers and router
	router := NewRouter(RouterConfig{
		LikeHandler:     handler.NewLikeHandler(engagement),
		VideoHandler:    handler.NewVideoHandler(videos),
		TweetHandler:    handler.NewTweetHandler(tweets),
		CommentHandler:  handler.NewCommentHandler(comments),
		PlaylistHandler: handler.NewPlaylistHandler(playlists),
		JWTSecret:       cfg.JWTSecret,
	})

	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
