package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/csu-mims/inventory-backend/api/middleware"
	"github.com/csu-mims/inventory-backend/api/responses"
	"github.com/csu-mims/inventory-backend/api/validators"
	"github.com/csu-mims/inventory-backend/internal/stockout"
	pkgerrors "github.com/csu-mims/inventory-backend/pkg/errors"
	"github.com/csu-mims/inventory-backend/pkg/logger"
)

type stockOutCreateRequest struct {
	ItemID           string  `json:"item_id" validate:"required"`
	QuantityDeducted int     `json:"quantity_deducted" validate:"required,min=1"`
	Remarks          *string `json:"remarks"`
}

// StockOutCreate records a deduction against an item. The releasing user is
// always the authenticated caller, never a value from the payload.
func StockOutCreate(svc stockout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload stockOutCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := uuid.Parse(strings.TrimSpace(payload.ItemID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid item_id"))
			return
		}

		var callerID *uuid.UUID
		if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid user context"))
				return
			}
			callerID = &parsed
		}

		created, err := svc.RecordStockOut(r.Context(), callerID, stockout.RecordStockOutInput{
			ItemID:   itemID,
			Quantity: payload.QuantityDeducted,
			Remarks:  payload.Remarks,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// StockOutList returns the deduction history newest-first, optionally scoped
// to one item via ?item_id=.
func StockOutList(svc stockout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParseQueryUUID(r, "item_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListTransactions(r.Context(), stockout.ListTransactionsInput{ItemID: itemID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// StockOutGet loads a single transaction.
func StockOutGet(svc stockout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "transactionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.GetTransaction(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}
