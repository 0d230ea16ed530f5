// Job - обработка телеметрии поездок
// Опрос Kafka -> добавление событий вождения к поездкам
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	db "github.com/glkeru/safedrive/internal/db"
	kafka "github.com/glkeru/safedrive/internal/external/kafka"
	interf "github.com/glkeru/safedrive/internal/interfaces"
	services "github.com/glkeru/safedrive/internal/services"
	"go.uber.org/zap"
)

func main() {
	// log
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// kafka
	reader, err := kafka.GetNewReader("trip-events")
	if err != nil {
		panic(err)
	}
	defer reader.CloseReader()

	// database
	storage, err := db.NewSafeDB()
	if err != nil {
		panic(err)
	}
	defer storage.Close(context.Background())

	// cache
	var redis interf.CacheStorage
	redis, err = db.NewCacheService()
	if err != nil {
		logger.Error(err.Error())
		redis = nil
	}

	// services
	serv := services.NewTripService(logger, storage, storage, redis, nil)

	// start
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var semcount int
	semenv := os.Getenv("SAFEDRIVE_EVENTS_COUNT")
	if semenv == "" {
		semcount = 5
	} else {
		semcount, err = strconv.Atoi(semenv)
		if err != nil {
			semcount = 5
		}
	}
	if semcount == 0 {
		semcount = 1
	}

	wg := &sync.WaitGroup{}
	semaphore := make(chan struct{}, semcount)

loop:
	for {
		select {
		case <-interrupt:
			cancel()
			break loop
		case <-ctx.Done():
			break loop
		default:

			msg, err := reader.GetNewMessage(ctx)
			if err != nil {
				logger.Error(err.Error())
				return
			}

			semaphore <- struct{}{}
			wg.Add(1)
			go func(msg string) {
				defer wg.Done()
				defer func() { <-semaphore }()
				err := serv.ProcessEventMessage(ctx, msg)
				if err != nil {
					logger.Error(err.Error())
					return
				}
			}(msg)
		}
	}
	wg.Wait()
}
