package kafka

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	MB = 1 << 20

	DefaultVersionRequest  = "true"
	DefaultMessageMaxBytes = 10 * MB
)

// KafkaProducerConfig 事件生产者参数，零值使用默认
type KafkaProducerConfig struct {
	VersionRequest    string `json:"version_request"`
	MessageMaxBytes   int    `json:"message_max_bytes"`
	LingerMs          int    `json:"linger_ms"`
	PartitionLingerMs int    `json:"partition_linger_ms"`
	RetryBackoffMs    int    `json:"retry_backoff_ms"`
	RequiredAcks      int    `json:"required_acks"`
	ClientID          string `json:"client_id"`

	SecurityProtocol string `json:"security_protocol"`
	SaslUsername     string `json:"sasl_username"`
	SaslPassword     string `json:"sasl_password"`
	SaslMechanism    string `json:"sasl_mechanism"`

	SslCaLocation          string `json:"ssl_ca_location"`
	SslCertificateLocation string `json:"ssl_certificate_location"`
	SslKeyLocation         string `json:"ssl_key_location"`
}

// instanceSuffix hostname-pid-unix，多实例共用client_id时区分来源
func instanceSuffix() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return fmt.Sprintf("%s-%d-%d", strings.ReplaceAll(hostname, ".", "_"), os.Getpid(), time.Now().Unix())
}
