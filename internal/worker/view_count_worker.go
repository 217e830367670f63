package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"vidshare/internal/event"
	"vidshare/internal/repository"
)

// ViewCountWorker consumes view events and folds them into the videos table,
// keeping the watch page free of synchronous counter writes.
type ViewCountWorker struct {
	conn      *amqp.Connection
	repo      *repository.VideoRepository
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewViewCountWorker(conn *amqp.Connection, repo *repository.VideoRepository, queueName string) *ViewCountWorker {
	return &ViewCountWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
	}
}

func (w *ViewCountWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var ev event.VideoView
				if err := json.Unmarshal(d.Body, &ev); err != nil {
					log.Printf("worker decode view event failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.repo.IncrementViews(ev.VideoID); err != nil {
					log.Printf("worker count view failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *ViewCountWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
