package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"go.uber.org/zap"
)

type FinanceUsecase struct {
	tx     repo.TransactionManager
	stores repo.StoreRepository
	ledger repo.LedgerRepository
	logger *zap.SugaredLogger
}

func NewFinanceUsecase(
	tx repo.TransactionManager,
	stores repo.StoreRepository,
	ledger repo.LedgerRepository,
	logger *zap.SugaredLogger,
) *FinanceUsecase {
	return &FinanceUsecase{tx: tx, stores: stores, ledger: ledger, logger: logger}
}

type BalanceOutput struct {
	StoreID          int64 `json:"store_id"`
	AvailableBalance int64 `json:"available_balance"`
	PendingBalance   int64 `json:"pending_balance"`
}

// 自店舗の残高。残高行がまだ無ければゼロで返す
func (u *FinanceUsecase) GetBalance(ctx context.Context, identity model.Identity) (BalanceOutput, error) {
	if identity.UserID <= 0 {
		return BalanceOutput{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}

	store, err := u.stores.FindByUserID(ctx, identity.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return BalanceOutput{}, NewHTTPError(http.StatusNotFound, CodeNotFound, "no store registered for this user")
	}
	if err != nil {
		return BalanceOutput{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	bal, err := u.ledger.FindBalanceByStoreID(ctx, store.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return BalanceOutput{StoreID: store.ID}, nil
	}
	if err != nil {
		return BalanceOutput{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	return BalanceOutput{
		StoreID:          store.ID,
		AvailableBalance: bal.AvailableBalance,
		PendingBalance:   bal.PendingBalance,
	}, nil
}

type WithdrawalInput struct {
	Amount          int64
	BankAccountInfo string
}

type WithdrawalOutput struct {
	ID          int64     `json:"id"`
	Amount      int64     `json:"amount"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requested_at"`
}

// 出金申請。申請時点で残高から引き落とす（処理完了時ではない）。
// 残高ロック→不足チェック→withdrawal作成→ledger debitを1トランザクションで行う。
func (u *FinanceUsecase) RequestWithdrawal(ctx context.Context, identity model.Identity, in WithdrawalInput) (WithdrawalOutput, error) {
	if identity.UserID <= 0 {
		return WithdrawalOutput{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if in.Amount <= 0 {
		return WithdrawalOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "amount must be positive")
	}
	if strings.TrimSpace(in.BankAccountInfo) == "" {
		return WithdrawalOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "bank_account_info is required")
	}

	var out WithdrawalOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		store, err := r.Stores().FindByUserID(ctx, identity.UserID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, CodeNotFound, "no store registered for this user")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		now := time.Now()
		w, err := r.Withdrawals().Create(ctx, model.Withdrawal{
			StoreID:         store.ID,
			Amount:          in.Amount,
			Status:          model.WithdrawalStatusPending,
			BankAccountInfo: in.BankAccountInfo,
			RequestedAt:     now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		//残高ロック＋減算＋取引ログ。不足ならここで失敗して全部戻る
		err = r.Ledger().Debit(ctx, store.ID, in.Amount, w.ID,
			fmt.Sprintf("withdrawal request %d", w.ID))
		if errors.Is(err, repo.ErrInsufficientFunds) {
			return NewHTTPError(http.StatusBadRequest, CodeInsufficientBalance, "available balance is not enough for this withdrawal")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		out = WithdrawalOutput{
			ID:          w.ID,
			Amount:      w.Amount,
			Status:      string(w.Status),
			RequestedAt: w.RequestedAt,
		}
		return nil
	})

	if err != nil {
		return WithdrawalOutput{}, err
	}

	u.logger.Infow("withdrawal requested",
		"withdrawal_id", out.ID,
		"user_id", identity.UserID,
		"amount", out.Amount,
	)
	return out, nil
}

type ProcessWithdrawalInput struct {
	NewStatus string
}

// 出金処理（admin）。failedにした場合は申請時に引いた分を返金する。
func (u *FinanceUsecase) ProcessWithdrawal(ctx context.Context, identity model.Identity, withdrawalID int64, in ProcessWithdrawalInput) (WithdrawalOutput, error) {
	if !identity.IsAdmin() {
		return WithdrawalOutput{}, NewHTTPError(http.StatusForbidden, CodeForbidden, "admin role required")
	}
	if withdrawalID <= 0 {
		return WithdrawalOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid withdrawal id")
	}

	newStatus := model.WithdrawalStatus(strings.TrimSpace(in.NewStatus))
	if newStatus != model.WithdrawalStatusProcessed && newStatus != model.WithdrawalStatusFailed {
		return WithdrawalOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "status must be processed or failed")
	}

	var out WithdrawalOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		w, err := r.Withdrawals().FindByIDForUpdate(ctx, withdrawalID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, CodeNotFound, "withdrawal not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}
		if w.Status != model.WithdrawalStatusPending {
			return NewHTTPError(http.StatusBadRequest, CodeValidation, "withdrawal already processed")
		}

		now := time.Now()

		//失敗扱いなら残高へ戻す（refundログ付き）
		if newStatus == model.WithdrawalStatusFailed {
			err := r.Ledger().Refund(ctx, w.StoreID, w.Amount, w.ID,
				fmt.Sprintf("refund of failed withdrawal %d", w.ID))
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
			}
		}

		if err := r.Withdrawals().UpdateStatus(ctx, w.ID, newStatus, now); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		out = WithdrawalOutput{
			ID:          w.ID,
			Amount:      w.Amount,
			Status:      string(newStatus),
			RequestedAt: w.RequestedAt,
		}
		return nil
	})

	if err != nil {
		return WithdrawalOutput{}, err
	}

	u.logger.Infow("withdrawal processed",
		"withdrawal_id", out.ID,
		"new_status", out.Status,
	)
	return out, nil
}

// 自店舗の出金申請履歴
func (u *FinanceUsecase) ListMyWithdrawals(ctx context.Context, identity model.Identity) ([]WithdrawalOutput, error) {
	if identity.UserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}

	var outs []WithdrawalOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		store, err := r.Stores().FindByUserID(ctx, identity.UserID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, CodeNotFound, "no store registered for this user")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		items, err := r.Withdrawals().ListByStoreID(ctx, store.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		outs = make([]WithdrawalOutput, 0, len(items))
		for _, w := range items {
			outs = append(outs, WithdrawalOutput{
				ID:          w.ID,
				Amount:      w.Amount,
				Status:      string(w.Status),
				RequestedAt: w.RequestedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outs, nil
}

// 購入者向けの取引履歴
func (u *FinanceUsecase) ListMyTransactions(ctx context.Context, identity model.Identity) ([]repo.BuyerTransaction, error) {
	if identity.UserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}

	items, err := u.ledger.ListByBuyer(ctx, identity.UserID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return items, nil
}
