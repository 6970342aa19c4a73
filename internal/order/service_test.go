package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kpapadakis/emporos/internal/order"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

func TestService_Create_Validation(t *testing.T) {
	type testCase struct {
		name    string
		params  order.CreateParams
		wantErr error
	}

	customerID := uuid.New()
	productID := uuid.New()

	tests := []testCase{
		{
			name:    "EmptyItems",
			params:  order.CreateParams{CustomerID: customerID},
			wantErr: order.ErrEmptyOrder,
		},
		{
			name: "ZeroQuantity",
			params: order.CreateParams{
				CustomerID: customerID,
				Items:      []order.LineParams{{ProductID: productID, Quantity: 0}},
			},
			wantErr: order.ErrInvalidQuantity,
		},
		{
			name: "NegativeShipping",
			params: order.CreateParams{
				CustomerID:   customerID,
				Items:        []order.LineParams{{ProductID: productID, Quantity: 1}},
				ShippingCost: dec("-1.00"),
			},
			wantErr: order.ErrNegativeShipping,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No expectations: a repository call on invalid input fails the test.
			repo := order.NewMockRepository(ctrl)
			svc := order.NewService(repo)

			got, err := svc.Create(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestService_Create_ProductNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customerID := uuid.New()
	productID := uuid.New()

	repo := order.NewMockRepository(ctrl)
	tx := order.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetCustomer(gomock.Any(), customerID).Return(&order.CustomerInfo{ID: customerID}, nil)
	tx.EXPECT().GetProduct(gomock.Any(), productID).Return(nil, order.ErrProductNotFound)
	// No order, item or balance writes may happen; only the rollback.
	tx.EXPECT().Rollback().Return(nil)

	svc := order.NewService(repo)

	got, err := svc.Create(context.Background(), order.CreateParams{
		CustomerID: customerID,
		Items:      []order.LineParams{{ProductID: productID, Quantity: 2}},
	})
	assert.ErrorIs(t, err, order.ErrProductNotFound)
	assert.Nil(t, got)
}

func TestService_Create_CustomerNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customerID := uuid.New()

	repo := order.NewMockRepository(ctrl)
	tx := order.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetCustomer(gomock.Any(), customerID).Return(nil, order.ErrCustomerNotFound)
	tx.EXPECT().Rollback().Return(nil)

	svc := order.NewService(repo)

	got, err := svc.Create(context.Background(), order.CreateParams{
		CustomerID: customerID,
		Items:      []order.LineParams{{ProductID: uuid.New(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, order.ErrCustomerNotFound)
	assert.Nil(t, got)
}

func TestService_Create_TotalsAndBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customerID := uuid.New()
	coffeeID := uuid.New()
	grinderID := uuid.New()

	products := map[uuid.UUID]*order.ProductInfo{
		coffeeID:  {ID: coffeeID, Name: "Espresso Blend 1kg", SKU: "CF-001", Price: dec("25.00")},
		grinderID: {ID: grinderID, Name: "Hand Grinder", SKU: "GR-010", Price: dec("95.00")},
	}

	repo := order.NewMockRepository(ctrl)
	tx := order.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetCustomer(gomock.Any(), customerID).Return(&order.CustomerInfo{ID: customerID}, nil)
	tx.EXPECT().
		GetProduct(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*order.ProductInfo, error) {
			p, ok := products[id]
			if !ok {
				return nil, order.ErrProductNotFound
			}
			return p, nil
		}).
		Times(2)

	orderID := uuid.New()

	tx.EXPECT().
		CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *order.Order) error {
			// 2 × 25.00 + 1 × 95.00 + 5.00 shipping = 150.00
			assert.True(t, o.TotalAmount.Equal(dec("150.00")), "total amount %s", o.TotalAmount)
			assert.Equal(t, order.StatusPending, o.Status)
			o.ID = orderID
			return nil
		})
	tx.EXPECT().
		CreateOrderItems(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, items []*order.Item) error {
			require.Len(t, items, 2)
			assert.Equal(t, orderID, items[0].OrderID)
			assert.True(t, items[0].UnitPrice.Equal(dec("25.00")))
			assert.True(t, items[0].TotalPrice.Equal(dec("50.00")))
			assert.True(t, items[1].TotalPrice.Equal(dec("95.00")))
			return nil
		})
	tx.EXPECT().
		AdjustCustomerBalance(gomock.Any(), customerID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, delta decimal.Decimal) error {
			assert.True(t, delta.Equal(dec("150.00")), "balance delta %s", delta)
			return nil
		})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil).AnyTimes()

	repo.EXPECT().
		GetOrderDetail(gomock.Any(), orderID).
		Return(&order.Order{ID: orderID, TotalAmount: dec("150.00"), Status: order.StatusPending}, nil)

	svc := order.NewService(repo)

	got, err := svc.Create(context.Background(), order.CreateParams{
		CustomerID: customerID,
		Items: []order.LineParams{
			{ProductID: coffeeID, Quantity: 2},
			{ProductID: grinderID, Quantity: 1},
		},
		ShippingCost: dec("5.00"),
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, orderID, got.ID)
}

func TestService_RecordPayment_Validation(t *testing.T) {
	type testCase struct {
		name    string
		params  order.PaymentParams
		wantErr error
	}

	tests := []testCase{
		{
			name:    "ZeroAmount",
			params:  order.PaymentParams{Amount: decimal.Zero, PaymentMethod: "cash"},
			wantErr: order.ErrInvalidAmount,
		},
		{
			name:    "NegativeAmount",
			params:  order.PaymentParams{Amount: dec("-5.00"), PaymentMethod: "cash"},
			wantErr: order.ErrInvalidAmount,
		},
		{
			name:    "MissingMethod",
			params:  order.PaymentParams{Amount: dec("10.00")},
			wantErr: order.ErrMissingPaymentMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := order.NewMockRepository(ctrl)
			svc := order.NewService(repo)

			got, err := svc.RecordPayment(context.Background(), uuid.New(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestService_RecordPayment_OrderNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()

	repo := order.NewMockRepository(ctrl)
	tx := order.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetOrder(gomock.Any(), orderID).Return(nil, order.ErrNotFound)
	tx.EXPECT().Rollback().Return(nil)

	svc := order.NewService(repo)

	got, err := svc.RecordPayment(context.Background(), orderID, order.PaymentParams{
		Amount:        dec("10.00"),
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, order.ErrNotFound)
	assert.Nil(t, got)
}

func TestService_RecordPayment_PartialKeepsPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	customerID := uuid.New()

	repo := order.NewMockRepository(ctrl)
	tx := order.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetOrder(gomock.Any(), orderID).Return(&order.Order{
		ID:          orderID,
		CustomerID:  customerID,
		TotalAmount: dec("300.00"),
		Status:      order.StatusPending,
	}, nil)
	tx.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr *order.Transaction) error {
			assert.Equal(t, order.TypePayment, tr.Type)
			assert.True(t, tr.Amount.Equal(dec("150.00")))
			assert.Equal(t, customerID, tr.CustomerID)
			require.NotNil(t, tr.OrderID)
			assert.Equal(t, orderID, *tr.OrderID)
			tr.ID = uuid.New()
			return nil
		})
	tx.EXPECT().
		AdjustCustomerBalance(gomock.Any(), customerID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, delta decimal.Decimal) error {
			assert.True(t, delta.Equal(dec("-150.00")), "balance delta %s", delta)
			return nil
		})
	tx.EXPECT().SumPayments(gomock.Any(), orderID).Return(dec("150.00"), nil)
	// No UpdateOrderStatus expectation: a transition on a half-paid order fails the test.
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil).AnyTimes()

	svc := order.NewService(repo)

	got, err := svc.RecordPayment(context.Background(), orderID, order.PaymentParams{
		Amount:        dec("150.00"),
		PaymentMethod: "bank transfer",
	})
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestService_RecordPayment_FullSumCompletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	customerID := uuid.New()

	repo := order.NewMockRepository(ctrl)
	tx := order.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetOrder(gomock.Any(), orderID).Return(&order.Order{
		ID:          orderID,
		CustomerID:  customerID,
		TotalAmount: dec("300.00"),
		Status:      order.StatusPending,
	}, nil)
	tx.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().AdjustCustomerBalance(gomock.Any(), customerID, gomock.Any()).Return(nil)
	// The second 150.00 payment brings the recomputed sum to the full total.
	tx.EXPECT().SumPayments(gomock.Any(), orderID).Return(dec("300.00"), nil)
	tx.EXPECT().UpdateOrderStatus(gomock.Any(), orderID, order.StatusCompleted).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil).AnyTimes()

	svc := order.NewService(repo)

	got, err := svc.RecordPayment(context.Background(), orderID, order.PaymentParams{
		Amount:        dec("150.00"),
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestService_RecordPayment_ReplayedCallDoubleCounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	customerID := uuid.New()

	repo := order.NewMockRepository(ctrl)
	tx := order.NewMockTx(ctrl)

	// There is no idempotency key: replaying the same call writes a
	// second transaction and decrements the balance again.
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil).Times(2)
	tx.EXPECT().GetOrder(gomock.Any(), orderID).Return(&order.Order{
		ID:          orderID,
		CustomerID:  customerID,
		TotalAmount: dec("300.00"),
		Status:      order.StatusPending,
	}, nil).Times(2)

	var transactions int
	tx.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr *order.Transaction) error {
			transactions++
			tr.ID = uuid.New()
			return nil
		}).
		Times(2)

	balanceDelta := decimal.Zero
	tx.EXPECT().
		AdjustCustomerBalance(gomock.Any(), customerID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, delta decimal.Decimal) error {
			balanceDelta = balanceDelta.Add(delta)
			return nil
		}).
		Times(2)

	sums := []decimal.Decimal{dec("150.00"), dec("300.00")}
	tx.EXPECT().
		SumPayments(gomock.Any(), orderID).
		DoAndReturn(func(context.Context, uuid.UUID) (decimal.Decimal, error) {
			sum := sums[0]
			sums = sums[1:]
			return sum, nil
		}).
		Times(2)
	tx.EXPECT().UpdateOrderStatus(gomock.Any(), orderID, order.StatusCompleted).Return(nil)
	tx.EXPECT().Commit().Return(nil).Times(2)
	tx.EXPECT().Rollback().Return(nil).AnyTimes()

	svc := order.NewService(repo)

	params := order.PaymentParams{
		Amount:        dec("150.00"),
		PaymentMethod: "cash",
	}
	for i := 0; i < 2; i++ {
		got, err := svc.RecordPayment(context.Background(), orderID, params)
		require.NoError(t, err)
		require.NotNil(t, got)
	}

	assert.Equal(t, 2, transactions)
	assert.True(t, balanceDelta.Equal(dec("-300.00")), "cumulative balance delta %s", balanceDelta)
}

func TestService_RecordPayment_PersistenceErrorRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	customerID := uuid.New()

	repo := order.NewMockRepository(ctrl)
	tx := order.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetOrder(gomock.Any(), orderID).Return(&order.Order{
		ID:          orderID,
		CustomerID:  customerID,
		TotalAmount: dec("100.00"),
	}, nil)
	tx.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
	tx.EXPECT().Rollback().Return(nil)

	svc := order.NewService(repo)

	got, err := svc.RecordPayment(context.Background(), orderID, order.PaymentParams{
		Amount:        dec("50.00"),
		PaymentMethod: "cash",
	})
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestService_RecordRefund_Validation(t *testing.T) {
	type testCase struct {
		name    string
		params  order.RefundParams
		wantErr error
	}

	tests := []testCase{
		{
			name:    "ZeroAmount",
			params:  order.RefundParams{Amount: decimal.Zero, Reason: "damaged"},
			wantErr: order.ErrInvalidAmount,
		},
		{
			name:    "MissingReason",
			params:  order.RefundParams{Amount: dec("10.00")},
			wantErr: order.ErrMissingReason,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := order.NewMockRepository(ctrl)
			svc := order.NewService(repo)

			got, err := svc.RecordRefund(context.Background(), uuid.New(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestService_RecordRefund_AlwaysCancels(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	customerID := uuid.New()

	repo := order.NewMockRepository(ctrl)
	tx := order.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	// A small refund against a fully paid order still cancels it.
	tx.EXPECT().GetOrder(gomock.Any(), orderID).Return(&order.Order{
		ID:          orderID,
		CustomerID:  customerID,
		TotalAmount: dec("300.00"),
		Status:      order.StatusCompleted,
	}, nil)
	tx.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr *order.Transaction) error {
			assert.Equal(t, order.TypeRefund, tr.Type)
			assert.True(t, tr.Amount.Equal(dec("-10.00")), "stored amount %s", tr.Amount)
			assert.Equal(t, "damaged in transit", tr.Notes)
			return nil
		})
	tx.EXPECT().
		AdjustCustomerBalance(gomock.Any(), customerID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, delta decimal.Decimal) error {
			assert.True(t, delta.Equal(dec("-10.00")), "balance delta %s", delta)
			return nil
		})
	tx.EXPECT().UpdateOrderStatus(gomock.Any(), orderID, order.StatusCancelled).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil).AnyTimes()

	svc := order.NewService(repo)

	got, err := svc.RecordRefund(context.Background(), orderID, order.RefundParams{
		Amount: dec("10.00"),
		Reason: "damaged in transit",
	})
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestService_Balance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()

	repo := order.NewMockRepository(ctrl)
	repo.EXPECT().GetOrder(gomock.Any(), orderID).Return(&order.Order{
		ID:          orderID,
		TotalAmount: dec("300.00"),
	}, nil)
	repo.EXPECT().SumPayments(gomock.Any(), orderID).Return(dec("120.00"), nil)

	svc := order.NewService(repo)

	got, err := svc.Balance(context.Background(), orderID)
	require.NoError(t, err)
	assert.True(t, got.TotalPaid.Equal(dec("120.00")))
	assert.True(t, got.BalanceDue.Equal(dec("180.00")))
}

func TestTotalPaid_IgnoresRefunds(t *testing.T) {
	txs := []*order.Transaction{
		{Type: order.TypePayment, Amount: dec("100.00")},
		{Type: order.TypePayment, Amount: dec("50.00")},
		{Type: order.TypeRefund, Amount: dec("-30.00")},
	}

	assert.True(t, order.TotalPaid(txs).Equal(dec("150.00")))
	assert.True(t, order.BalanceDue(dec("200.00"), txs).Equal(dec("50.00")))
}
