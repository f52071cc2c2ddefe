package mq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/storage/mq"
	"github.com/tuanvumaihuynh/shipment-dashboard/pkg/ptr"
)

func TestBuildRecord(t *testing.T) {
	t.Run("Should copy topic, payload, headers and key", func(t *testing.T) {
		r := mq.BuildRecord(mq.ProduceMsg{
			Topic:        "product.added",
			Headers:      map[string]string{"X-Correlation-ID": "c1"},
			Payload:      []byte(`{"op":"add"}`),
			PartitionKey: ptr.New("p1"),
		})

		assert.Equal(t, "product.added", r.Topic)
		assert.Equal(t, []byte(`{"op":"add"}`), r.Value)
		assert.Equal(t, []byte("p1"), r.Key)
		if assert.Len(t, r.Headers, 1) {
			assert.Equal(t, "X-Correlation-ID", r.Headers[0].Key)
			assert.Equal(t, []byte("c1"), r.Headers[0].Value)
		}
	})

	t.Run("Should leave the key empty without a partition key", func(t *testing.T) {
		r := mq.BuildRecord(mq.ProduceMsg{Topic: "t"})
		assert.Nil(t, r.Key)
		assert.Empty(t, r.Headers)
	})
}
