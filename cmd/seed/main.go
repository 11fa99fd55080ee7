package main

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"lockchat/config"
	channelmodel "lockchat/internal/channel/model"
	"lockchat/internal/storage"
	usermodel "lockchat/internal/user/model"
	walletmodel "lockchat/internal/wallet/model"
	"lockchat/pkg/utils"
)

type seedUser struct {
	email    string
	username string
	password string
	role     string
	balance  int64
}

var seedUsers = []seedUser{
	{"admin@example.com", "admin", "admin123", usermodel.RoleAdmin, 1000},
	{"alice@example.com", "alice", "user123", usermodel.RoleUser, 500},
	{"bob@example.com", "bob", "user123", usermodel.RoleUser, 300},
}

// Seeds demo users, channels and messages. Existing data is wiped.
func main() {
	v, err := config.LoadConfig("config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	ctx := context.Background()
	db, err := storage.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	if err := storage.CreateSchema(ctx, db); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}

	if err := seed(ctx, db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Println("seed complete")
}

func seed(ctx context.Context, db *bun.DB) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, table := range []string{"transactions", "messages", "channels", "users"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return err
			}
		}

		users := make([]*usermodel.User, 0, len(seedUsers))
		for _, s := range seedUsers {
			hash, err := utils.HashPassword(s.password)
			if err != nil {
				return err
			}
			u := &usermodel.User{
				Email:        s.email,
				Username:     s.username,
				PasswordHash: hash,
				Role:         s.role,
				Status:       usermodel.StatusActive,
				Balance:      s.balance,
			}
			if _, err := tx.NewInsert().Model(u).Returning("*").Exec(ctx); err != nil {
				return err
			}
			users = append(users, u)

			// A matching credit entry keeps the ledger reconciled
			// with the seeded balance.
			entry := &walletmodel.Transaction{
				UserID:      u.ID,
				Amount:      s.balance,
				Type:        walletmodel.TypeCredit,
				Description: "Seed balance",
			}
			if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
				return err
			}
		}
		admin, alice, bob := users[0], users[1], users[2]

		general := &channelmodel.Channel{
			Name:        "general",
			Description: "General discussion",
			CreatedBy:   admin.ID,
		}
		premium := &channelmodel.Channel{
			Name:        "premium",
			Description: "Exclusive locked content",
			CreatedBy:   admin.ID,
		}
		for _, ch := range []*channelmodel.Channel{general, premium} {
			if _, err := tx.NewInsert().Model(ch).Returning("*").Exec(ctx); err != nil {
				return err
			}
		}

		messages := []*channelmodel.Message{
			{
				ChannelID: general.ID,
				SenderID:  admin.ID,
				Content:   "Welcome to lockchat!",
			},
			{
				ChannelID: general.ID,
				SenderID:  alice.ID,
				Content:   "Hi everyone",
			},
			{
				ChannelID: premium.ID,
				SenderID:  admin.ID,
				Content:   "This insider tip costs 50 credits.",
				IsLocked:  true,
				LockPrice: 50,
			},
			{
				ChannelID: premium.ID,
				SenderID:  bob.ID,
				Content:   "Bob's secret recipe",
				IsLocked:  true,
				LockPrice: 25,
			},
		}
		for _, m := range messages {
			if _, err := tx.NewInsert().Model(m).Returning("*").Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
