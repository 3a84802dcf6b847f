package handlers

import (
	"fmt"

	"github.com/companieshouse/chs.go/avro"
	"github.com/companieshouse/chs.go/avro/schema"
	"github.com/companieshouse/chs.go/kafka/producer"
	"github.com/salonkit/refunds.api.salonkit.io/config"
)

// ProducerTopic is the topic to which the refund request decided kafka message is sent
const ProducerTopic = "refund-request-decided"

// ProducerSchemaName is the schema which will be used to send the refund request decided kafka message with
const ProducerSchemaName = "refund-request-decided"

// refundRequestDecided represents the avro schema consumed by downstream
// billing and reporting services
type refundRequestDecided struct {
	RefundRequestID  string `avro:"refund_request_id"`
	Status           string `avro:"status"`
	ExternalRefundID string `avro:"external_refund_id,omitempty"`
}

func produceDecisionMessage(refundRequestID string, status string, externalRefundID string) error {
	cfg, err := config.Get()
	if err != nil {
		err = fmt.Errorf("error getting config for kafka message production: [%v]", err)
		return err
	}

	// Get a producer
	kafkaProducer, err := producer.New(&producer.Config{Acks: &producer.WaitForAll, BrokerAddrs: cfg.BrokerAddr})
	if err != nil {
		err = fmt.Errorf("error creating kafka producer: [%v]", err)
		return err
	}
	decidedSchema, err := schema.Get(cfg.SchemaRegistryURL, ProducerSchemaName)
	if err != nil {
		err = fmt.Errorf("error getting schema from schema registry: [%v]", err)
		return err
	}
	producerSchema := &avro.Schema{
		Definition: decidedSchema,
	}

	// Prepare a message with the avro schema
	message, err := prepareKafkaMessage(refundRequestID, status, externalRefundID, *producerSchema)
	if err != nil {
		err = fmt.Errorf("error preparing kafka message with schema: [%v]", err)
		return err
	}

	// Send the message
	partition, offset, err := kafkaProducer.Send(message)
	if err != nil {
		err = fmt.Errorf("failed to send message in partition: %d at offset %d", partition, offset)
		return err
	}
	return nil
}

// prepareKafkaMessage is pulled out of produceDecisionMessage() to allow unit testing of non-kafka portion of code
func prepareKafkaMessage(refundRequestID string, status string, externalRefundID string, decidedSchema avro.Schema) (*producer.Message, error) {
	decidedMessage := refundRequestDecided{
		RefundRequestID:  refundRequestID,
		Status:           status,
		ExternalRefundID: externalRefundID,
	}

	messageBytes, err := decidedSchema.Marshal(decidedMessage)
	if err != nil {
		err = fmt.Errorf("error marshalling refund request decided message: [%v]", err)
		return nil, err
	}

	producerMessage := &producer.Message{
		Value: messageBytes,
		Topic: ProducerTopic,
	}
	return producerMessage, nil
}
