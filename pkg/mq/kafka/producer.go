package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/ninja0404/pump-signal/pkg/logger"
)

func newProducerConfig(brokers []string, cfg KafkaProducerConfig) (*kafka.ConfigMap, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers is empty")
	}

	conf := &kafka.ConfigMap{
		"bootstrap.servers":             strings.Join(brokers, ","),
		"api.version.request":           DefaultVersionRequest,
		"message.max.bytes":             DefaultMessageMaxBytes,
		"linger.ms":                     5,
		"sticky.partitioning.linger.ms": 0,
		"retries":                       3,
		"retry.backoff.ms":              1000,
		"acks":                          "1",
		"compression.type":              "snappy",
	}

	overrides := []struct {
		key string
		set bool
		val kafka.ConfigValue
	}{
		{"api.version.request", cfg.VersionRequest != "", cfg.VersionRequest},
		{"message.max.bytes", cfg.MessageMaxBytes != 0, cfg.MessageMaxBytes},
		{"linger.ms", cfg.LingerMs != 0, cfg.LingerMs},
		{"sticky.partitioning.linger.ms", cfg.PartitionLingerMs != 0, cfg.PartitionLingerMs},
		{"retry.backoff.ms", cfg.RetryBackoffMs != 0, cfg.RetryBackoffMs},
		{"acks", cfg.RequiredAcks != 0, cfg.RequiredAcks},
		{"client.id", cfg.ClientID != "", cfg.ClientID + "-" + instanceSuffix()},
	}
	for _, o := range overrides {
		if o.set {
			_ = conf.SetKey(o.key, o.val)
		}
	}

	if err := applySecurity(conf, cfg); err != nil {
		return nil, err
	}
	return conf, nil
}

func applySecurity(conf *kafka.ConfigMap, cfg KafkaProducerConfig) error {
	protocol := strings.ToLower(cfg.SecurityProtocol)
	if protocol == "" {
		protocol = "plaintext"
	}

	var sasl, ssl bool
	switch protocol {
	case "plaintext":
	case "sasl_plaintext":
		sasl = true
	case "ssl":
		ssl = true
	case "sasl_ssl":
		sasl, ssl = true, true
	default:
		return kafka.NewError(kafka.ErrUnknownProtocol, "unknown protocol "+cfg.SecurityProtocol, true)
	}

	_ = conf.SetKey("security.protocol", protocol)
	if sasl {
		_ = conf.SetKey("sasl.username", cfg.SaslUsername)
		_ = conf.SetKey("sasl.password", cfg.SaslPassword)
		if cfg.SaslMechanism != "" {
			_ = conf.SetKey("sasl.mechanism", cfg.SaslMechanism)
		}
	}
	if ssl {
		_ = conf.SetKey("ssl.ca.location", cfg.SslCaLocation)
		_ = conf.SetKey("ssl.certificate.location", cfg.SslCertificateLocation)
		_ = conf.SetKey("ssl.key.location", cfg.SslKeyLocation)
	}
	return nil
}

// KafkaProducer 异步生产者，投递结果在事件协程里记录
type KafkaProducer struct {
	producer   *kafka.Producer
	eventsDone chan struct{}
}

func NewKafkaProducer(brokers []string, cfg KafkaProducerConfig) (*KafkaProducer, error) {
	conf, err := newProducerConfig(brokers, cfg)
	if err != nil {
		return nil, err
	}
	producer, err := kafka.NewProducer(conf)
	if err != nil {
		return nil, err
	}

	p := &KafkaProducer{
		producer:   producer,
		eventsDone: make(chan struct{}),
	}
	go p.handleEvents()
	return p, nil
}

func (p *KafkaProducer) handleEvents() {
	defer close(p.eventsDone)

	for event := range p.producer.Events() {
		switch ev := event.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				topic := ""
				if ev.TopicPartition.Topic != nil {
					topic = *ev.TopicPartition.Topic
				}
				logger.Error("❌ Kafka消息投递失败",
					logger.FieldErr(ev.TopicPartition.Error),
					logger.String("topic", topic),
					logger.ByteString("key", ev.Key))
			}
		case kafka.Error:
			logger.Error("❌ Kafka客户端错误",
				logger.String("code", ev.Code().String()),
				logger.String("message", ev.Error()))
		default:
			logger.Debug("kafka_event", logger.String("event", fmt.Sprintf("%T", ev)))
		}
	}
}

func (p *KafkaProducer) SendMessageWithKey(topic string, key string, value []byte) error {
	kafkaMsg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          value,
	}
	return p.producer.Produce(kafkaMsg, nil)
}

// Close 先flush再关闭，最多等待10秒
func (p *KafkaProducer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		remaining := p.producer.Flush(5 * 1000)
		p.producer.Close()
		<-p.eventsDone
		if remaining > 0 {
			done <- fmt.Errorf("flush incomplete: %d messages remaining", remaining)
			return
		}
		done <- nil
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close producer: %w", err)
		}
		logger.Info("✅ Kafka生产者已关闭")
		return nil
	case <-ctx.Done():
		return errors.New("close producer timeout after 10s")
	}
}
