package services

import (
	"encoding/json"

	"passkey_auth_ms/config"
	"passkey_auth_ms/dtos/request"

	"github.com/IBM/sarama"
)

type ICeremonyEventService interface {
	PublishPasskeyRegistered(event *request.PasskeyRegisteredEvent) error
	PublishPasskeyAuthenticated(event *request.PasskeyAuthenticatedEvent) error
}

type CeremonyEventService struct {
	brokers []string
}

func NewCeremonyEventService() ICeremonyEventService {
	return &CeremonyEventService{brokers: config.Conf.Application.Kafka.Brokers}
}

func (s *CeremonyEventService) PublishPasskeyRegistered(event *request.PasskeyRegisteredEvent) error {
	return s.publish("PasskeyRegisteredEvent", event)
}

func (s *CeremonyEventService) PublishPasskeyAuthenticated(event *request.PasskeyAuthenticatedEvent) error {
	return s.publish("PasskeyAuthenticatedEvent", event)
}

func (s *CeremonyEventService) publish(topic string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	producer, err := sarama.NewSyncProducer(s.brokers, nil)
	if err != nil {
		return err
	}
	defer producer.Close()

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.StringEncoder(data),
	}
	if _, _, err := producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}
