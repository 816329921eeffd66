package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopinger/shopinger/internal/domain"
	"github.com/shopinger/shopinger/internal/events"
)

type recordingDeliveryService struct {
	created []int64
	err     error
}

func (s *recordingDeliveryService) CreateForReceipt(_ context.Context, receiptID int64) (*domain.Delivery, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, receiptID)
	return &domain.Delivery{ID: int64(len(s.created)), ReceiptID: receiptID, Status: domain.DeliveryPending}, nil
}

func (s *recordingDeliveryService) GetDelivery(context.Context, int64) (*domain.Delivery, error) {
	panic("not used")
}

func (s *recordingDeliveryService) ListDeliveries(context.Context, *domain.DeliveryStatus) ([]domain.Delivery, error) {
	panic("not used")
}

func (s *recordingDeliveryService) AssignDeliverer(context.Context, int64, int64) (*domain.Delivery, error) {
	panic("not used")
}

func (s *recordingDeliveryService) UpdateStatus(context.Context, int64, domain.DeliveryStatus) (*domain.Delivery, error) {
	panic("not used")
}

func saleMsg(t *testing.T, event events.SaleCommitted) *nats.Msg {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return &nats.Msg{Subject: events.SubjectSaleCommitted, Data: data}
}

func TestDeliveryIntake_SeedsOnlineSales(t *testing.T) {
	deliveries := &recordingDeliveryService{}
	w := NewDeliveryIntake(nil, deliveries, Config{}, nil)

	w.handle(context.Background(), saleMsg(t, events.SaleCommitted{
		ReceiptID: 10,
		Channel:   string(domain.ChannelOnline),
	}))

	assert.Equal(t, []int64{10}, deliveries.created)
}

func TestDeliveryIntake_IgnoresPOSSales(t *testing.T) {
	deliveries := &recordingDeliveryService{}
	w := NewDeliveryIntake(nil, deliveries, Config{}, nil)

	w.handle(context.Background(), saleMsg(t, events.SaleCommitted{
		ReceiptID: 11,
		Channel:   string(domain.ChannelPOS),
	}))

	assert.Empty(t, deliveries.created)
}

func TestDeliveryIntake_DropsMalformedEvents(t *testing.T) {
	deliveries := &recordingDeliveryService{}
	w := NewDeliveryIntake(nil, deliveries, Config{}, nil)

	w.handle(context.Background(), &nats.Msg{
		Subject: events.SubjectSaleCommitted,
		Data:    []byte("{not json"),
	})

	assert.Empty(t, deliveries.created)
}

func TestDeliveryIntake_Defaults(t *testing.T) {
	w := NewDeliveryIntake(nil, &recordingDeliveryService{}, Config{}, nil)

	assert.NotEmpty(t, w.config.WorkerID)
	assert.Equal(t, "delivery-intake", w.config.QueueGroup)
	assert.Equal(t, 64, w.config.Buffer)
}
