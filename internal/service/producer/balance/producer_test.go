package balproducer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/converter"
	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
	"github.com/nazarijbeketovv/tech-assignment-payments/internal/service/mocks"
)

func event() model.BalanceCredited {
	return model.BalanceCredited{
		EventID:        uuid.New(),
		OperationID:    uuid.New(),
		INN:            "1234567890",
		Amount:         decimal.RequireFromString("1500.5"),
		Balance:        decimal.RequireFromString("145000"),
		DocumentNumber: "PAY-328",
		DocumentDate:   time.Date(2024, 4, 27, 21, 0, 0, 0, time.UTC),
		CreditedAt:     time.Now().UTC(),
	}
}

func TestSendBalanceCredited(t *testing.T) {
	t.Parallel()

	t.Run("keyed by inn", func(t *testing.T) {
		t.Parallel()

		p := mocks.NewMockProducer(t)
		e := event()

		var sent []byte
		p.On("Send", mock.Anything, []byte("1234567890"), mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(2).([]byte) }).
			Return(nil).Once()

		err := NewBalanceProducer(p, converter.NewKafkaConverter()).SendBalanceCredited(context.Background(), e)
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, sonic.Unmarshal(sent, &got))
		assert.Equal(t, e.OperationID.String(), got["operation_id"])
		assert.Equal(t, "1500.50", got["amount"])
		assert.Equal(t, "145000.00", got["balance"])
	})

	t.Run("producer error wrapped", func(t *testing.T) {
		t.Parallel()

		p := mocks.NewMockProducer(t)
		p.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("breaker open")).Once()

		err := NewBalanceProducer(p, converter.NewKafkaConverter()).SendBalanceCredited(context.Background(), event())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "balance.credited")
	})
}
