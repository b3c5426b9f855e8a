package kafka

import (
	"Lighthouse/internal/api/config"
	"Lighthouse/internal/model"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// CrisisAlert 发布到告警主题的消息体
type CrisisAlert struct {
	OrganizationID string   `json:"organization_id"`
	NegativeRatio  float64  `json:"negative_ratio"`
	AngerRatio     float64  `json:"anger_ratio"`
	Reasons        []string `json:"reasons"`
	Source         string   `json:"source"`
	Timestamp      string   `json:"timestamp"`
}

// AlertProducer 向Kafka发布危机告警，未启用时为空操作
type AlertProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewAlertProducer 按配置构造告警生产者，enable 为假时返回空实现
func NewAlertProducer(cfg config.KafkaConfig) (*AlertProducer, error) {
	if !cfg.Enable {
		return &AlertProducer{}, nil
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, err
	}
	return &AlertProducer{producer: producer, topic: cfg.AlertTopic}, nil
}

// PublishCrisis 同步发布一条危机告警消息
func (p *AlertProducer) PublishCrisis(ctx context.Context, organizationID string, source string, report *model.CrisisReport) error {
	if p.producer == nil || report == nil || !report.Crisis {
		return nil
	}

	alert := CrisisAlert{
		OrganizationID: organizationID,
		NegativeRatio:  report.NegativeRatio,
		AngerRatio:     report.AngerRatio,
		Reasons:        report.Reasons,
		Source:         source,
		Timestamp:      time.Now().Format(time.RFC3339),
	}
	payload, err := json.Marshal(alert)
	if err != nil {
		return err
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(organizationID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		log.ErrorContext(ctx, "危机告警消息发送失败", "org", organizationID, "err", err)
		return err
	}

	log.InfoContext(ctx, "危机告警消息已发送", "org", organizationID, "partition", partition, "offset", offset)
	return nil
}

// Close 关闭底层生产者
func (p *AlertProducer) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
