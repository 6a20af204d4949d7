package handlers

import "net/http"

// NewRouter собирает API сервиса: операции handover-машины,
// чтение эскроу, балансы кошельков и тиры креаторов.
func NewRouter(
	handoverHandler *HandoverHandler,
	escrowHandler *EscrowHandler,
	walletHandler *WalletHandler,
	creatorHandler *CreatorHandler,
) *http.ServeMux {

	mux := http.NewServeMux()

	// Цепочка продажи
	mux.HandleFunc("POST /handovers/{id}/documents", handoverHandler.SubmitDocuments)
	mux.HandleFunc("POST /handovers/{id}/documents/verify", handoverHandler.VerifyDocuments)
	mux.HandleFunc("POST /handovers/{id}/keys/release", handoverHandler.ReleaseKeys)
	mux.HandleFunc("POST /handovers/{id}/sign/reach", handoverHandler.SignAsReach)
	mux.HandleFunc("POST /handovers/{id}/sign/buyer", handoverHandler.SignAsBuyer)
	mux.HandleFunc("POST /handovers/{id}/keys/delivered", handoverHandler.ConfirmKeysDelivered)
	mux.HandleFunc("POST /handovers/{id}/complete", handoverHandler.Complete)

	// Двухсторонний сценарий аренды
	mux.HandleFunc("POST /handovers/{id}/delivery/confirm", handoverHandler.ConfirmDelivery)
	mux.HandleFunc("POST /handovers/{id}/receipt/confirm", handoverHandler.ConfirmReceipt)

	mux.HandleFunc("GET /handovers/{id}", handoverHandler.GetHandover)
	mux.HandleFunc("GET /developers/{id}/handovers", handoverHandler.GetHandoversByDeveloper)
	mux.HandleFunc("GET /buyers/{id}/handovers", handoverHandler.GetHandoversByBuyer)
	mux.HandleFunc("GET /developers/{id}/statistics", handoverHandler.GetStatistics)

	mux.HandleFunc("GET /escrows/{id}", escrowHandler.GetEscrow)
	mux.HandleFunc("GET /escrows", escrowHandler.GetEscrowByPropertyBuyer)
	mux.HandleFunc("POST /escrows/{id}/refund", escrowHandler.Refund)

	mux.HandleFunc("GET /wallets/{id}/balance", walletHandler.GetBalance)
	mux.HandleFunc("GET /creators/{id}/tier", creatorHandler.GetCreatorTier)

	return mux
}
