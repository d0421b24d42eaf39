package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

// Task types handled by the prediction worker.
const (
	TaskPersonalityPrediction = "personality_prediction"
	TaskEmotionAnalysis       = "emotion_analysis"
)

// Task is one unit of background prediction work. Which fields are set
// depends on Type.
type Task struct {
	Type string `json:"type"`

	EmployeeDetailsID uint   `json:"employee_details_id,omitempty"`
	Sentence          string `json:"sentence,omitempty"`

	ResumeID uint   `json:"resume_id,omitempty"`
	JobID    uint   `json:"job_id,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
}

// Publisher is what services use to hand off background work.
type Publisher interface {
	Publish(task Task) error
}

const queueName = "prediction_queue"

// RabbitMQ holds the connection, channel and declared queue.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info("Connected to RabbitMQ and declared queue ", queueName)
	return &RabbitMQ{conn: conn, channel: ch, queue: q}, nil
}

func (r *RabbitMQ) Publish(task Task) error {
	body, err := json.Marshal(task)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return r.channel.PublishWithContext(
		ctx,
		"",           // exchange
		r.queue.Name, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Consume registers the handler and processes tasks on a background
// goroutine until the channel closes.
func (r *RabbitMQ) Consume(handler func(Task)) error {
	msgs, err := r.channel.Consume(
		r.queue.Name,
		"",
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for d := range msgs {
			var task Task
			if err := json.Unmarshal(d.Body, &task); err != nil {
				log.WithError(err).Warn("invalid task payload, skipping")
				continue
			}
			handler(task)
		}
	}()
	return nil
}

func (r *RabbitMQ) Close() {
	if r.channel != nil {
		_ = r.channel.Close()
	}
	if r.conn != nil {
		_ = r.conn.Close()
	}
}
