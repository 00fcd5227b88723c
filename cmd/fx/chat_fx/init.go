package chat_fx

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vivubot/internal/config"
	"vivubot/internal/infra"
	"vivubot/internal/repositories"
	"vivubot/internal/services"
)

var Module = fx.Provide(
	provideChatRepo, services.NewChatService)

// provideChatRepo picks the storage backend named by CHAT_STORE_DRIVER.
func provideChatRepo(lc fx.Lifecycle, cfg *config.Config, db *gorm.DB, logger *zap.Logger) (repositories.ChatRepository, error) {
	if cfg.ChatStoreDriver != config.ChatStoreMongo {
		return repositories.NewChatRepository(db, logger), nil
	}

	mdb, err := infra.InitMongo(lc, cfg, logger)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repositories.EnsureChatIndexes(ctx, mdb); err != nil {
		return nil, fmt.Errorf("create chat indexes: %w", err)
	}
	logger.Info("Chat history stored in MongoDB", zap.String("database", cfg.MongoDatabase))
	return repositories.NewChatMongoRepository(mdb), nil
}
