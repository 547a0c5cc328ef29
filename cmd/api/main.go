package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/MuxN4/linkup/internal/model"
	"github.com/MuxN4/linkup/internal/pkg"
	"github.com/MuxN4/linkup/internal/repository/mysql"
	"github.com/MuxN4/linkup/internal/repository/redis"
	"github.com/MuxN4/linkup/internal/router"
	"github.com/MuxN4/linkup/internal/service"
)

func main() {
	dsn := envOr("LINKUP_MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/linkup?charset=utf8mb4&parseTime=True")
	if err := mysql.InitDB(dsn); err != nil {
		panic(err)
	}

	// Redis is optional: without it every read falls through to MySQL.
	if err := redis.Init(envOr("LINKUP_REDIS_ADDR", "127.0.0.1:6379"), os.Getenv("LINKUP_REDIS_PASSWORD"), 0); err != nil {
		log.Printf("redis unavailable, running without cache: %v", err)
		redis.Client = nil
	}

	if secret := os.Getenv("LINKUP_IDENTITY_SECRET"); secret != "" {
		pkg.IdentitySecret = []byte(secret)
	}

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.Follow{},
		&model.Notification{},
		&model.EngagementOutbox{},
	); err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := service.LogSender
	if brokers := os.Getenv("LINKUP_KAFKA_BROKERS"); brokers != "" {
		producer, err := pkg.NewEventProducer(pkg.KafkaConfig{
			Brokers: strings.Split(brokers, ","),
			Topic:   envOr("LINKUP_KAFKA_TOPIC", "linkup.engagement"),
		})
		if err != nil {
			panic(err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	go service.NewOutboxRelayer(mysql.DB, sender).Run(ctx)
	go service.NewFollowCountReconciler(mysql.DB).Run(ctx)

	r := router.InitRouter()
	if err := r.Run(envOr("LINKUP_ADDR", ":8080")); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
