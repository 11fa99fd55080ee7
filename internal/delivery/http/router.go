package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lockchat/config"
	"lockchat/internal/channel"
	"lockchat/internal/hub"
	"lockchat/internal/user"
	"lockchat/internal/wallet"
	"lockchat/pkg/logger"
)

type RouterDeps struct {
	Config   *config.Config
	Logger   logger.Logger
	Users    user.UserUsecase
	UserRepo user.UserRepository
	Wallets  wallet.WalletUsecase
	Channels channel.ChannelUsecase
	Hub      *hub.Hub
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{deps.Config.Cors.Origin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	authHandler := NewAuthHandler(deps.Users, deps.Config, deps.Logger)
	channelHandler := NewChannelHandler(deps.Channels, deps.Logger)
	walletHandler := NewWalletHandler(deps.Wallets, deps.Logger)
	wsHandler := NewWSHandler(deps.Hub, deps.Logger)

	guard := AuthGuard(deps.Config, deps.UserRepo, deps.Logger)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	engine.POST("/auth/register", authHandler.Register)
	engine.POST("/auth/login", authHandler.Login)
	engine.GET("/auth/me", guard, authHandler.Me)
	engine.POST("/auth/logout", guard, authHandler.Logout)

	engine.GET("/channels", guard, channelHandler.ListChannels)
	engine.POST("/channels", guard, channelHandler.CreateChannel)

	// gin requires one wildcard name per segment, so both the channel
	// and message routes share :id.
	engine.GET("/messages/:id", guard, channelHandler.ListMessages)
	engine.POST("/messages/:id", guard, channelHandler.SendMessage)
	engine.POST("/messages/:id/unlock", guard, channelHandler.UnlockMessage)

	engine.GET("/wallet/balance", guard, walletHandler.Balance)
	engine.POST("/wallet/add", guard, walletHandler.AddFunds)

	engine.GET("/ws", wsHandler.Subscribe)

	return engine
}
