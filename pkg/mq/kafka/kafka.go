package kafka

import (
	"sync"

	"github.com/IBM/sarama"

	"github.com/ninja0404/pump-signal/pkg/logger"
)

var startOnce sync.Once

// initKafka 把sarama的全局日志接到zap
func initKafka() {
	startOnce.Do(func() {
		sarama.Logger = newSaramaLogger(logger.DefaultL1().Named("kafka-core"), levelInfo)
		sarama.DebugLogger = newSaramaLogger(logger.DefaultL1().Named("kafka-core-debug"), levelDebug)
	})
}

// SetupKafkaProducer 初始化日志桥接并创建生产者
func SetupKafkaProducer(brokers []string, cfg KafkaProducerConfig) (*KafkaProducer, error) {
	initKafka()
	return NewKafkaProducer(brokers, cfg)
}
