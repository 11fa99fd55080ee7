package storage

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"lockchat/config"
	channelmodel "lockchat/internal/channel/model"
	usermodel "lockchat/internal/user/model"
	walletmodel "lockchat/internal/wallet/model"
)

// Models enumerates every persisted model, users first so foreign
// key references resolve during schema creation.
func Models() []any {
	return []any{
		(*usermodel.User)(nil),
		(*channelmodel.Channel)(nil),
		(*channelmodel.Message)(nil),
		(*walletmodel.Transaction)(nil),
	}
}

func Connect(ctx context.Context, cfg *config.Config) (*bun.DB, error) {
	connector := pgdriver.NewConnector(pgdriver.WithDSN(cfg.Bun.DSN))
	sqlDB := sql.OpenDB(connector)
	db := bun.NewDB(sqlDB, pgdialect.New())

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// CreateSchema creates missing tables; existing tables are untouched.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`); err != nil {
		return err
	}
	for _, m := range Models() {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
