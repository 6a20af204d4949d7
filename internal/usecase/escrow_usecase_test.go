package usecase

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hausly/hausly-escrow-service/internal/domain"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/models"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/repository"
	escrowdto "github.com/hausly/hausly-escrow-service/internal/usecase/dto/escrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakePublisher struct {
	mu     sync.Mutex
	topics []string
}

func (f *fakePublisher) Publish(topic string, msgs ...domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
	return nil
}

type fakeNotifier struct{}

func (f *fakeNotifier) SendHandoverCallback(payload domain.CallbackPayload) {}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.EscrowModel{},
		&models.HandoverModel{},
		&models.WalletModel{},
		&models.CreatorMetricsModel{},
		&models.CreatorProfileModel{},
	))
	return db
}

func newTestEscrowUsecase(t *testing.T, platformFee float64) (*DefaultEscrowUsecase, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	uc := NewDefaultEscrowUsecase(
		repository.NewDefaultEscrowRepository(db),
		repository.NewDefaultHandoverRepository(db),
		repository.NewDefaultCreatorRepository(db),
		&fakePublisher{},
		&fakeNotifier{},
		platformFee,
	)
	return uc, db
}

func TestComputeSplits(t *testing.T) {
	splits := ComputeSplits(1000000, 2.5, 1.0)
	assert.Equal(t, 25000.0, splits.CreatorAmount)
	assert.Equal(t, 10000.0, splits.ReachAmount)
	assert.Equal(t, 965000.0, splits.DeveloperAmount)
	assert.InDelta(t, 1000000.0, splits.Total(), 1e-9)
}

// Сумма долей равна сумме сделки даже на неудобных для округления суммах
func TestComputeSplits_RoundingInvariant(t *testing.T) {
	amounts := []float64{333333.33, 100.01, 99999.99, 0.03, 123456.78}
	for _, amount := range amounts {
		splits := ComputeSplits(amount, 2.5, 1.5)
		assert.InDelta(t, amount, splits.Total(), 0.005, "amount %v", amount)
	}
}

func TestComputeSplits_NoCreator(t *testing.T) {
	splits := ComputeSplits(500000, 0, 1.0)
	assert.Equal(t, 0.0, splits.CreatorAmount)
	assert.Equal(t, 5000.0, splits.ReachAmount)
	assert.Equal(t, 495000.0, splits.DeveloperAmount)
}

func TestCreateFromPayment(t *testing.T) {
	uc, _ := newTestEscrowUsecase(t, 1.0)

	require.NoError(t, uc.CreatorRepo.UpsertProfile(&domain.CreatorProfile{
		CreatorID:         "creator-1",
		ReferralCode:      "ref123",
		Tier:              2,
		TierLabel:         "Professional",
		CommissionPercent: 2.5,
		Qualified:         true,
		TierUpdatedAt:     time.Now(),
	}))

	out, err := uc.CreateFromPayment(&escrowdto.CreateFromPaymentInput{
		PaymentTxID:  "tx-1",
		PropertyID:   "property-1",
		BuyerID:      "buyer-1",
		DeveloperID:  "developer-1",
		CreatorID:    "creator-1",
		Amount:       1000000,
		HandoverType: "SALE",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.EscrowHeld, out.Escrow.Status)
	assert.Equal(t, 25000.0, out.Escrow.Splits.CreatorAmount)
	assert.Equal(t, 10000.0, out.Escrow.Splits.ReachAmount)
	assert.Equal(t, 965000.0, out.Escrow.Splits.DeveloperAmount)

	assert.Equal(t, domain.HandoverPaymentConfirmed, out.Handover.Status)
	assert.Equal(t, domain.HandoverSale, out.Handover.Type)
	assert.Equal(t, out.Escrow.ID, out.Handover.EscrowID)
}

func TestCreateFromPayment_Duplicate(t *testing.T) {
	uc, _ := newTestEscrowUsecase(t, 1.0)

	input := &escrowdto.CreateFromPaymentInput{
		PaymentTxID: "tx-1",
		PropertyID:  "property-1",
		BuyerID:     "buyer-1",
		DeveloperID: "developer-1",
		Amount:      500000,
	}
	_, err := uc.CreateFromPayment(input)
	require.NoError(t, err)

	_, err = uc.CreateFromPayment(input)
	require.Error(t, err)
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestCreateFromPayment_Validation(t *testing.T) {
	uc, _ := newTestEscrowUsecase(t, 1.0)

	_, err := uc.CreateFromPayment(&escrowdto.CreateFromPaymentInput{
		PropertyID:  "property-1",
		BuyerID:     "buyer-1",
		DeveloperID: "developer-1",
		Amount:      -5,
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = uc.CreateFromPayment(&escrowdto.CreateFromPaymentInput{
		PropertyID: "property-1",
		Amount:     100,
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

// Без квалификации комиссия креатора не начисляется
func TestCreateFromPayment_UnqualifiedCreator(t *testing.T) {
	uc, _ := newTestEscrowUsecase(t, 1.0)

	require.NoError(t, uc.CreatorRepo.UpsertProfile(&domain.CreatorProfile{
		CreatorID:     "creator-1",
		ReferralCode:  "ref123",
		Tier:          0,
		TierLabel:     "Not qualified",
		Qualified:     false,
		TierUpdatedAt: time.Now(),
	}))

	out, err := uc.CreateFromPayment(&escrowdto.CreateFromPaymentInput{
		PaymentTxID: "tx-1",
		PropertyID:  "property-1",
		BuyerID:     "buyer-1",
		DeveloperID: "developer-1",
		CreatorID:   "creator-1",
		Amount:      100000,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.Escrow.Splits.CreatorAmount)
	assert.Equal(t, 99000.0, out.Escrow.Splits.DeveloperAmount)
}

func TestRefundEscrow(t *testing.T) {
	uc, _ := newTestEscrowUsecase(t, 1.0)

	out, err := uc.CreateFromPayment(&escrowdto.CreateFromPaymentInput{
		PaymentTxID: "tx-1",
		PropertyID:  "property-1",
		BuyerID:     "buyer-1",
		DeveloperID: "developer-1",
		Amount:      500000,
	})
	require.NoError(t, err)

	err = uc.RefundEscrow(&escrowdto.RefundEscrowInput{
		EscrowID: out.Escrow.ID,
		AdminID:  "admin-1",
		Reason:   "dispute resolved in favor of buyer",
	})
	require.NoError(t, err)

	escrow, err := uc.EscrowRepo.GetEscrowByID(out.Escrow.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowRefunded, escrow.Status)

	handover, err := uc.HandoverRepo.GetHandoverByEscrowID(out.Escrow.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.HandoverAbandoned, handover.Status)

	// Повторный возврат невозможен
	err = uc.RefundEscrow(&escrowdto.RefundEscrowInput{EscrowID: out.Escrow.ID, AdminID: "admin-1"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}
