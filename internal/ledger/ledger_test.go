package ledger_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendy/internal/ledger"
	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

var fixedNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func newStore(gw ledger.Gateway, opts ...ledger.Option) *ledger.Store {
	opts = append([]ledger.Option{
		ledger.WithClock(func() time.Time { return fixedNow }),
		ledger.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)

	return ledger.NewStore(gw, opts...)
}

func params(amount, category string, typ transaction.Type) transaction.NewParams {
	return transaction.NewParams{
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Type:     typ,
	}
}

func TestStore_Initialize(t *testing.T) {
	dupID := uuid.New()

	type testCase struct {
		name    string
		loaded  []transaction.Transaction
		wantIDs []uuid.UUID
	}

	first := transaction.Transaction{ID: uuid.New(), Category: "Food", Type: transaction.TypeExpense}
	second := transaction.Transaction{ID: uuid.New(), Category: "Salary", Type: transaction.TypeIncome}

	tests := []testCase{
		{
			name:    "NothingSaved",
			loaded:  []transaction.Transaction{},
			wantIDs: []uuid.UUID{},
		},
		{
			name:    "NilLoad",
			loaded:  nil,
			wantIDs: []uuid.UUID{},
		},
		{
			name:    "ReplacesStateKeepingOrder",
			loaded:  []transaction.Transaction{first, second},
			wantIDs: []uuid.UUID{first.ID, second.ID},
		},
		{
			name: "DuplicateIDsKeepFirst",
			loaded: []transaction.Transaction{
				{ID: dupID, Category: "Food"},
				second,
				{ID: dupID, Category: "Travel"},
			},
			wantIDs: []uuid.UUID{dupID, second.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			gw := ledger.NewMockGateway(ctrl)
			gw.EXPECT().Load(gomock.Any()).Return(tt.loaded)

			store := newStore(gw)
			store.Initialize(context.Background())

			got := store.All()
			gotIDs := make([]uuid.UUID, len(got))

			for i, tx := range got {
				gotIDs[i] = tx.ID
			}

			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestStore_Initialize_DuplicateKeepsFirstRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	gw := ledger.NewMockGateway(ctrl)
	gw.EXPECT().Load(gomock.Any()).Return([]transaction.Transaction{
		{ID: id, Category: "Food"},
		{ID: id, Category: "Travel"},
	})

	store := newStore(gw)
	store.Initialize(context.Background())

	require.Equal(t, 1, store.Len())
	assert.Equal(t, "Food", store.All()[0].Category)
}

func TestStore_Add(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := ledger.NewMockGateway(ctrl)

	var saves [][]transaction.Transaction

	gw.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, txs []transaction.Transaction) {
			saves = append(saves, txs)
		}).
		Times(2)

	store := newStore(gw)

	food := store.Add(context.Background(), params("500", "Food", transaction.TypeExpense))
	salary := store.Add(context.Background(), params("2000", "Salary", transaction.TypeIncome))

	assert.NotEqual(t, uuid.Nil, food.ID)
	assert.NotEqual(t, food.ID, salary.ID)
	assert.Equal(t, fixedNow, food.Date)
	assert.Equal(t, "500", food.Amount.String())
	assert.Equal(t, "Food", food.Category)
	assert.Equal(t, transaction.TypeExpense, food.Type)

	all := store.All()
	require.Len(t, all, 2)
	assert.Equal(t, salary.ID, all[0].ID, "newest first")
	assert.Equal(t, food.ID, all[1].ID)

	require.Len(t, saves, 2)
	assert.Len(t, saves[0], 1)
	assert.Equal(t, all, saves[1], "save receives the full updated ledger")
}

func TestStore_Add_RegeneratesCollidingID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := ledger.NewMockGateway(ctrl)
	gw.EXPECT().Save(gomock.Any(), gomock.Any()).Times(2)

	taken := uuid.New()
	fresh := uuid.New()
	sequence := []uuid.UUID{taken, taken, fresh}

	store := newStore(gw, ledger.WithIDGenerator(func() uuid.UUID {
		id := sequence[0]
		sequence = sequence[1:]

		return id
	}))

	first := store.Add(context.Background(), params("1", "Food", transaction.TypeExpense))
	second := store.Add(context.Background(), params("2", "Food", transaction.TypeExpense))

	assert.Equal(t, taken, first.ID)
	assert.Equal(t, fresh, second.ID)
}

func TestStore_AddMany(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := ledger.NewMockGateway(ctrl)

	var saves [][]transaction.Transaction

	gw.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, txs []transaction.Transaction) {
			saves = append(saves, txs)
		}).
		Times(2)

	store := newStore(gw)
	existing := store.Add(context.Background(), params("1", "Other", transaction.TypeExpense))

	added := store.AddMany(context.Background(), []transaction.NewParams{
		params("10", "Food", transaction.TypeExpense),
		params("20", "Salary", transaction.TypeIncome),
		params("30", "Travel", transaction.TypeExpense),
	})
	require.Len(t, added, 3)
	assert.Equal(t, "Food", added[0].Category)
	assert.Equal(t, "Travel", added[2].Category)

	all := store.All()
	require.Len(t, all, 4)
	assert.Equal(t, []uuid.UUID{added[2].ID, added[1].ID, added[0].ID, existing.ID},
		[]uuid.UUID{all[0].ID, all[1].ID, all[2].ID, all[3].ID}, "last row is newest")

	require.Len(t, saves, 2, "one save for the whole batch")
	assert.Equal(t, all, saves[1])
}

func TestStore_AddMany_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := ledger.NewMockGateway(ctrl)
	gw.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	store := newStore(gw)

	assert.Empty(t, store.AddMany(context.Background(), nil))
	assert.Zero(t, store.Len())
}

func TestStore_AddMany_IDsUniqueWithinBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := ledger.NewMockGateway(ctrl)
	gw.EXPECT().Save(gomock.Any(), gomock.Any()).Times(1)

	repeated := uuid.New()
	fresh := uuid.New()
	sequence := []uuid.UUID{repeated, repeated, fresh}

	store := newStore(gw, ledger.WithIDGenerator(func() uuid.UUID {
		id := sequence[0]
		sequence = sequence[1:]

		return id
	}))

	added := store.AddMany(context.Background(), []transaction.NewParams{
		params("1", "Food", transaction.TypeExpense),
		params("2", "Food", transaction.TypeExpense),
	})

	require.Len(t, added, 2)
	assert.Equal(t, repeated, added[0].ID)
	assert.Equal(t, fresh, added[1].ID)
}

func TestStore_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := ledger.NewMockGateway(ctrl)

	var lastSave []transaction.Transaction

	gw.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, txs []transaction.Transaction) {
			lastSave = txs
		}).
		Times(4)

	store := newStore(gw)
	food := store.Add(context.Background(), params("500", "Food", transaction.TypeExpense))
	salary := store.Add(context.Background(), params("2000", "Salary", transaction.TypeIncome))

	assert.True(t, store.Delete(context.Background(), food.ID))
	require.Len(t, store.All(), 1)
	assert.Equal(t, salary.ID, store.All()[0].ID)
	assert.Equal(t, store.All(), lastSave)

	assert.False(t, store.Delete(context.Background(), uuid.New()), "unknown id is a no-op")
	assert.Equal(t, 1, store.Len())
}

func TestStore_Clear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := ledger.NewMockGateway(ctrl)
	gw.EXPECT().Save(gomock.Any(), gomock.Any()).Times(1)
	gw.EXPECT().ClearAll(gomock.Any()).Times(1)

	store := newStore(gw)
	store.Add(context.Background(), params("1", "Food", transaction.TypeExpense))
	store.Clear(context.Background())

	assert.Empty(t, store.All())
	assert.NotNil(t, store.All())
}

func TestStore_All_ReturnsCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := ledger.NewMockGateway(ctrl)
	gw.EXPECT().Save(gomock.Any(), gomock.Any()).AnyTimes()

	store := newStore(gw)
	store.Add(context.Background(), params("1", "Food", transaction.TypeExpense))

	all := store.All()
	all[0].Category = "Changed"

	assert.Equal(t, "Food", store.All()[0].Category)
}

func TestStore_LengthAndUniqueness(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := ledger.NewMockGateway(ctrl)
	gw.EXPECT().Save(gomock.Any(), gomock.Any()).AnyTimes()
	gw.EXPECT().ClearAll(gomock.Any()).AnyTimes()

	store := newStore(gw)
	ctx := context.Background()

	var added []transaction.Transaction

	for i := range 50 {
		added = append(added, store.Add(ctx, params("1", "Food", transaction.TypeExpense)))

		if i%7 == 6 {
			require.True(t, store.Delete(ctx, added[len(added)-3].ID))
			added = append(added[:len(added)-3], added[len(added)-2:]...)
		}
	}

	assert.Equal(t, len(added), store.Len())

	seen := make(map[uuid.UUID]struct{})
	for _, tx := range store.All() {
		_, dup := seen[tx.ID]
		assert.False(t, dup)

		seen[tx.ID] = struct{}{}
	}

	store.Clear(ctx)
	store.Add(ctx, params("1", "Food", transaction.TypeExpense))
	assert.Equal(t, 1, store.Len())
}
