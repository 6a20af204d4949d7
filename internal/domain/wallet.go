package domain

import "time"

type Wallet struct {
	UserID    string
	Available float64
	UpdatedAt time.Time
}

type WalletRepository interface {
	// Credit - атомарный инкремент доступного баланса, кошелек создается при отсутствии
	Credit(userID string, amount float64) error
	GetBalance(userID string) (float64, error)
}
