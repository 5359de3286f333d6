package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"caixa/contexts/finance-core/ledger-service/application"
	"caixa/contexts/finance-core/ledger-service/domain/entities"
	domainerrors "caixa/contexts/finance-core/ledger-service/domain/errors"
	"caixa/contexts/finance-core/ledger-service/ports"
	httptransport "caixa/contexts/finance-core/ledger-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListTransactionsHandler(ctx context.Context, caller ports.Caller) (httptransport.ListTransactionsResponse, error) {
	items, err := h.Service.List(ctx, caller)
	if err != nil {
		return httptransport.ListTransactionsResponse{}, err
	}
	resp := httptransport.ListTransactionsResponse{Status: "success"}
	resp.Data.Transactions = make([]httptransport.TransactionItem, 0, len(items))
	for _, item := range items {
		resp.Data.Transactions = append(resp.Data.Transactions, transactionItem(item.Transaction, item.OwnerDisplayName))
	}
	return resp, nil
}

func (h Handler) CreateTransactionHandler(
	ctx context.Context,
	caller ports.Caller,
	req httptransport.CreateTransactionRequest,
) (httptransport.CreateTransactionResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return httptransport.CreateTransactionResponse{}, domainerrors.ErrInvalidTransactionInput
	}

	item, err := h.Service.Create(ctx, caller, ports.NewTransaction{
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Kind:        entities.Kind(strings.ToLower(strings.TrimSpace(req.Kind))),
		Category:    strings.TrimSpace(req.Category),
		Date:        date,
	})
	if err != nil {
		return httptransport.CreateTransactionResponse{}, err
	}
	return httptransport.CreateTransactionResponse{
		Status: "success",
		Data:   transactionItem(item, ""),
	}, nil
}

func (h Handler) DeleteTransactionHandler(ctx context.Context, caller ports.Caller, transactionID string) (httptransport.DeleteTransactionResponse, error) {
	if err := h.Service.Delete(ctx, caller, strings.TrimSpace(transactionID)); err != nil {
		return httptransport.DeleteTransactionResponse{}, err
	}
	resp := httptransport.DeleteTransactionResponse{Status: "success"}
	resp.Data.DeletedCount = 1
	return resp, nil
}

func transactionItem(item entities.Transaction, ownerName string) httptransport.TransactionItem {
	return httptransport.TransactionItem{
		TransactionID:   item.TransactionID,
		OwnerIdentityID: item.OwnerIdentityID,
		OwnerName:       ownerName,
		Description:     item.Description,
		Amount:          item.Amount,
		Kind:            string(item.Kind),
		Category:        item.Category,
		Date:            item.Date.UTC().Format(time.RFC3339),
	}
}

// parseDate accepts RFC 3339 timestamps and bare dates; empty means "default
// to now" downstream.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}
