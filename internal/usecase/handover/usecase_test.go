package usecase

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hausly/hausly-escrow-service/internal/domain"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/models"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/repository"
	handoverdto "github.com/hausly/hausly-escrow-service/internal/usecase/dto/handover"
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

type testEnv struct {
	uc         *DefaultHandoverUsecase
	db         *gorm.DB
	escrowRepo domain.EscrowRepository
	walletRepo domain.WalletRepository
}

func newTestEnv(t *testing.T) *testEnv {
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
	))

	escrowRepo := repository.NewDefaultEscrowRepository(db)
	handoverRepo := repository.NewDefaultHandoverRepository(db)
	uc := NewDefaultHandoverUsecase(handoverRepo, escrowRepo, &fakePublisher{}, &fakeNotifier{}, nil)

	return &testEnv{
		uc:         uc,
		db:         db,
		escrowRepo: escrowRepo,
		walletRepo: repository.NewDefaultWalletRepository(db),
	}
}

// seedPair создает эскроу HELD и handover PAYMENT_CONFIRMED: сумма 1 000 000,
// креатору 25 000, платформе 10 000, застройщику 965 000
func seedPair(t *testing.T, env *testEnv, handoverType domain.HandoverType) *domain.Handover {
	t.Helper()
	now := time.Now()
	escrow := domain.EscrowTransaction{
		ID:          uuid.New().String(),
		PaymentTxID: "tx-" + uuid.New().String(),
		PropertyID:  "property-" + uuid.New().String(),
		BuyerID:     "buyer-1",
		DeveloperID: "developer-1",
		CreatorID:   "creator-1",
		Amount:      1000000,
		Splits: domain.EscrowSplits{
			DeveloperAmount: 965000,
			CreatorAmount:   25000,
			ReachAmount:     10000,
		},
		Status:    domain.EscrowHeld,
		CreatedAt: now,
	}
	handover := domain.Handover{
		ID:          uuid.New().String(),
		EscrowID:    escrow.ID,
		PropertyID:  escrow.PropertyID,
		BuyerID:     escrow.BuyerID,
		DeveloperID: escrow.DeveloperID,
		CreatorID:   escrow.CreatorID,
		Type:        handoverType,
		Status:      domain.HandoverPaymentConfirmed,
		CreatedAt:   now,
	}
	require.NoError(t, env.escrowRepo.CreatePair(&escrow, &handover))
	return &handover
}

func runSaleChain(t *testing.T, env *testEnv, handoverID string) {
	t.Helper()
	require.NoError(t, env.uc.SubmitDocuments(&handoverdto.SubmitDocumentsInput{
		HandoverID:   handoverID,
		DeveloperID:  "developer-1",
		DocumentsURL: "https://docs.example.com/deed.pdf",
	}))
	require.NoError(t, env.uc.VerifyDocuments(&handoverdto.VerifyDocumentsInput{
		HandoverID: handoverID,
		AdminID:    "admin-1",
	}))
	require.NoError(t, env.uc.ReleaseKeys(&handoverdto.ReleaseKeysInput{
		HandoverID:  handoverID,
		DeveloperID: "developer-1",
	}))
	require.NoError(t, env.uc.SignAsReach(&handoverdto.SignInput{
		HandoverID: handoverID,
		SignerID:   "reach-agent-1",
		Signature:  "sig-reach",
	}))
	require.NoError(t, env.uc.SignAsBuyer(&handoverdto.SignInput{
		HandoverID: handoverID,
		SignerID:   "buyer-1",
		Signature:  "sig-buyer",
	}))
	require.NoError(t, env.uc.ConfirmKeysDelivered(&handoverdto.ConfirmKeysDeliveredInput{
		HandoverID: handoverID,
		BuyerID:    "buyer-1",
	}))
}

func TestSaleHandover_FullChain(t *testing.T) {
	env := newTestEnv(t)
	handover := seedPair(t, env, domain.HandoverSale)

	runSaleChain(t, env, handover.ID)
	require.NoError(t, env.uc.Complete(handover.ID))

	got, err := env.uc.GetHandoverByID(handover.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.HandoverCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
	assert.True(t, got.ObligationsMet())

	escrow, err := env.escrowRepo.GetEscrowByID(handover.EscrowID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowReleased, escrow.Status)

	developerBalance, err := env.walletRepo.GetBalance("developer-1")
	require.NoError(t, err)
	assert.Equal(t, 965000.0, developerBalance)

	creatorBalance, err := env.walletRepo.GetBalance("creator-1")
	require.NoError(t, err)
	assert.Equal(t, 25000.0, creatorBalance)
}

// Нарушение порядка шагов не меняет состояние
func TestSaleHandover_GuardViolations(t *testing.T) {
	env := newTestEnv(t)
	handover := seedPair(t, env, domain.HandoverSale)

	err := env.uc.SignAsBuyer(&handoverdto.SignInput{
		HandoverID: handover.ID,
		SignerID:   "buyer-1",
		Signature:  "sig",
	})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	err = env.uc.VerifyDocuments(&handoverdto.VerifyDocumentsInput{
		HandoverID: handover.ID,
		AdminID:    "admin-1",
	})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	got, err := env.uc.GetHandoverByID(handover.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.HandoverPaymentConfirmed, got.Status)
}

func TestSaleHandover_CompleteBeforeObligations(t *testing.T) {
	env := newTestEnv(t)
	handover := seedPair(t, env, domain.HandoverSale)

	err := env.uc.Complete(handover.ID)
	require.Error(t, err)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.Contains(t, err.Error(), "obligations not met")

	escrow, err := env.escrowRepo.GetEscrowByID(handover.EscrowID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowHeld, escrow.Status)

	balance, err := env.walletRepo.GetBalance("developer-1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)
}

// Повторное завершение - no-op, зачисления не удваиваются
func TestSaleHandover_CompleteIdempotent(t *testing.T) {
	env := newTestEnv(t)
	handover := seedPair(t, env, domain.HandoverSale)

	runSaleChain(t, env, handover.ID)
	require.NoError(t, env.uc.Complete(handover.ID))
	require.NoError(t, env.uc.Complete(handover.ID))

	developerBalance, err := env.walletRepo.GetBalance("developer-1")
	require.NoError(t, err)
	assert.Equal(t, 965000.0, developerBalance)

	creatorBalance, err := env.walletRepo.GetBalance("creator-1")
	require.NoError(t, err)
	assert.Equal(t, 25000.0, creatorBalance)
}

func TestSaleHandover_WrongActor(t *testing.T) {
	env := newTestEnv(t)
	handover := seedPair(t, env, domain.HandoverSale)

	err := env.uc.SubmitDocuments(&handoverdto.SubmitDocumentsInput{
		HandoverID:   handover.ID,
		DeveloperID:  "someone-else",
		DocumentsURL: "https://docs.example.com/deed.pdf",
	})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	runSaleChain(t, env, handover.ID)

	err = env.uc.ConfirmKeysDelivered(&handoverdto.ConfirmKeysDeliveredInput{
		HandoverID: handover.ID,
		BuyerID:    "not-the-buyer",
	})
	// цепочка уже прошла ConfirmKeysDelivered, но проверка актора идет первой
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

// Документы можно загрузить и после напоминания о просрочке
func TestSaleHandover_SubmitFromPendingDocs(t *testing.T) {
	env := newTestEnv(t)
	handover := seedPair(t, env, domain.HandoverSale)

	require.NoError(t, env.db.Model(&models.HandoverModel{}).
		Where("id = ?", handover.ID).
		Update("status", string(domain.HandoverPendingDeveloperDocs)).Error)

	require.NoError(t, env.uc.SubmitDocuments(&handoverdto.SubmitDocumentsInput{
		HandoverID:   handover.ID,
		DeveloperID:  "developer-1",
		DocumentsURL: "https://docs.example.com/deed.pdf",
	}))

	got, err := env.uc.GetHandoverByID(handover.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.HandoverDocsSubmitted, got.Status)
}

func TestRentalHandover_TwoPartyConfirmation(t *testing.T) {
	env := newTestEnv(t)
	handover := seedPair(t, env, domain.HandoverRental)

	require.NoError(t, env.uc.ConfirmDelivery(&handoverdto.ConfirmDeliveryInput{
		HandoverID:  handover.ID,
		DeveloperID: "developer-1",
	}))

	got, err := env.uc.GetHandoverByID(handover.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.HandoverAwaitingBuyerConfirmation, got.Status)

	require.NoError(t, env.uc.ConfirmReceipt(&handoverdto.ConfirmReceiptInput{
		HandoverID: handover.ID,
		BuyerID:    "buyer-1",
	}))

	got, err = env.uc.GetHandoverByID(handover.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.HandoverCompleted, got.Status)

	escrow, err := env.escrowRepo.GetEscrowByID(handover.EscrowID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowReleased, escrow.Status)

	developerBalance, err := env.walletRepo.GetBalance("developer-1")
	require.NoError(t, err)
	assert.Equal(t, 965000.0, developerBalance)

	// Повторное подтверждение получения - идемпотентный no-op
	require.NoError(t, env.uc.ConfirmReceipt(&handoverdto.ConfirmReceiptInput{
		HandoverID: handover.ID,
		BuyerID:    "buyer-1",
	}))
	developerBalance, err = env.walletRepo.GetBalance("developer-1")
	require.NoError(t, err)
	assert.Equal(t, 965000.0, developerBalance)
}

func TestRentalHandover_OrderEnforced(t *testing.T) {
	env := newTestEnv(t)
	handover := seedPair(t, env, domain.HandoverRental)

	// Покупатель не может подтвердить получение раньше застройщика
	err := env.uc.ConfirmReceipt(&handoverdto.ConfirmReceiptInput{
		HandoverID: handover.ID,
		BuyerID:    "buyer-1",
	})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	// Шаги продажи не применимы к аренде
	err = env.uc.SubmitDocuments(&handoverdto.SubmitDocumentsInput{
		HandoverID:   handover.ID,
		DeveloperID:  "developer-1",
		DocumentsURL: "https://docs.example.com/deed.pdf",
	})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestSaleHandover_RentalStepsRejected(t *testing.T) {
	env := newTestEnv(t)
	handover := seedPair(t, env, domain.HandoverSale)

	err := env.uc.ConfirmDelivery(&handoverdto.ConfirmDeliveryInput{
		HandoverID:  handover.ID,
		DeveloperID: "developer-1",
	})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestGetHandovers_Filters(t *testing.T) {
	env := newTestEnv(t)
	first := seedPair(t, env, domain.HandoverSale)
	seedPair(t, env, domain.HandoverRental)

	runSaleChain(t, env, first.ID)
	require.NoError(t, env.uc.Complete(first.ID))

	out, err := env.uc.GetHandoversByDeveloperID("developer-1", &handoverdto.GetHandoversInput{
		Statuses: []string{string(domain.HandoverCompleted)},
	})
	require.NoError(t, err)
	require.Len(t, out.Handovers, 1)
	assert.Equal(t, first.ID, out.Handovers[0].ID)
	assert.Equal(t, int64(1), out.Pagination.TotalItems)

	out, err = env.uc.GetHandoversByBuyerID("buyer-1", &handoverdto.GetHandoversInput{})
	require.NoError(t, err)
	assert.Len(t, out.Handovers, 2)

	_, err = env.uc.GetHandoversByDeveloperID("developer-1", &handoverdto.GetHandoversInput{
		Statuses: []string{"NOT_A_STATUS"},
	})
	assert.Error(t, err)
}

func TestGetHandoverStatistics(t *testing.T) {
	env := newTestEnv(t)
	first := seedPair(t, env, domain.HandoverSale)
	seedPair(t, env, domain.HandoverSale)

	runSaleChain(t, env, first.ID)
	require.NoError(t, env.uc.Complete(first.ID))

	stats, err := env.uc.GetHandoverStatistics("developer-1", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalHandovers)
	assert.Equal(t, int64(1), stats.CompletedHandovers)
	assert.Equal(t, 1000000.0, stats.ReleasedAmount)
}

func TestHandoverNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.uc.GetHandoverByID("missing")
	assert.Equal(t, codes.NotFound, status.Code(err))
}
