package kafka

import (
	"github.com/IBM/sarama"
)

const AuditTopic = "portal.audit"

type Config struct {
	Enabled bool     `envconfig:"KAFKA_ENABLED" default:"false"`
	Addrs   []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}
