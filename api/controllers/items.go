package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/csu-mims/inventory-backend/api/responses"
	"github.com/csu-mims/inventory-backend/api/validators"
	"github.com/csu-mims/inventory-backend/internal/items"
	"github.com/csu-mims/inventory-backend/pkg/enums"
	pkgerrors "github.com/csu-mims/inventory-backend/pkg/errors"
	"github.com/csu-mims/inventory-backend/pkg/logger"
)

type itemCreateRequest struct {
	Name           string  `json:"name" validate:"required"`
	Description    *string `json:"description"`
	Quantity       int     `json:"quantity" validate:"min=0"`
	Unit           string  `json:"unit" validate:"required"`
	AllocationType string  `json:"allocation_type" validate:"required"`
}

type itemUpdateRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Quantity       *int    `json:"quantity"`
	Unit           *string `json:"unit"`
	AllocationType *string `json:"allocation_type"`
}

// ItemCreate registers a new inventory item.
func ItemCreate(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload itemCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		allocationType, err := enums.ParseAllocationType(strings.TrimSpace(payload.AllocationType))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid allocation_type"))
			return
		}

		created, err := svc.CreateItem(r.Context(), items.CreateItemInput{
			Name:           payload.Name,
			Description:    payload.Description,
			Quantity:       payload.Quantity,
			Unit:           payload.Unit,
			AllocationType: allocationType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ItemList returns inventory items, optionally filtered by allocation type.
func ItemList(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input items.ListItemsInput
		if raw := validators.ParseQueryString(r, "allocation_type"); raw != nil {
			allocationType, err := enums.ParseAllocationType(*raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid allocation_type filter"))
				return
			}
			input.AllocationType = &allocationType
		}

		rows, err := svc.ListItems(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ItemGet loads a single inventory item.
func ItemGet(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// ItemUpdate applies a partial update to an item.
func ItemUpdate(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload itemUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := items.UpdateItemInput{
			Name:        payload.Name,
			Description: payload.Description,
			Quantity:    payload.Quantity,
			Unit:        payload.Unit,
		}
		if payload.AllocationType != nil {
			allocationType, err := enums.ParseAllocationType(strings.TrimSpace(*payload.AllocationType))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid allocation_type"))
				return
			}
			input.AllocationType = &allocationType
		}

		updated, err := svc.UpdateItem(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// ItemDelete removes an item and its stock-out history.
func ItemDelete(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseIDParam(r *http.Request, key string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id").WithDetails(map[string]any{"param": key})
	}
	return id, nil
}
