package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tlemoine/gamehaul-backend/api/responses"
	"github.com/tlemoine/gamehaul-backend/api/validators"
	"github.com/tlemoine/gamehaul-backend/internal/wishes"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
	pkgerrors "github.com/tlemoine/gamehaul-backend/pkg/errors"
	"github.com/tlemoine/gamehaul-backend/pkg/logger"
)

type createWishRequest struct {
	OrderID        uuid.UUID        `json:"order_id" validate:"required"`
	ProductName    string           `json:"product_name" validate:"required,max=200"`
	ProductURL     *string          `json:"product_url" validate:"omitempty,url"`
	Quantity       int              `json:"quantity" validate:"required,min=1"`
	EstimatedPrice *decimal.Decimal `json:"estimated_price"`
	MemberComment  *string          `json:"member_comment" validate:"omitempty,max=500"`
}

type updateWishRequest struct {
	ProductName    *string          `json:"product_name" validate:"omitempty,max=200"`
	ProductURL     *string          `json:"product_url" validate:"omitempty,url"`
	Quantity       *int             `json:"quantity" validate:"omitempty,min=1"`
	EstimatedPrice *decimal.Decimal `json:"estimated_price"`
	MemberComment  *string          `json:"member_comment" validate:"omitempty,max=500"`
}

type reviewWishRequest struct {
	Status         string           `json:"status" validate:"required"`
	ValidatedPrice *decimal.Decimal `json:"validated_price"`
	AdminComment   *string          `json:"admin_comment" validate:"omitempty,max=500"`
}

// CreateWish submits a wish against an order still in planning.
func CreateWish(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createWishRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wish, err := svc.Create(r.Context(), userID, wishes.CreateInput{
			OrderID:        body.OrderID,
			ProductName:    body.ProductName,
			ProductURL:     body.ProductURL,
			Quantity:       body.Quantity,
			EstimatedPrice: body.EstimatedPrice,
			MemberComment:  body.MemberComment,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, wish)
	}
}

// ListMyWishes returns the authenticated member's wishes, newest first.
func ListMyWishes(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := parsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListMine(r.Context(), userID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// UpdateMyWish edits a still-submitted wish owned by the caller.
func UpdateMyWish(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wishID, err := parseUUIDParam(r, "wishId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateWishRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wish, err := svc.UpdateOwn(r.Context(), userID, wishID, wishes.UpdateInput{
			ProductName:    body.ProductName,
			ProductURL:     body.ProductURL,
			Quantity:       body.Quantity,
			EstimatedPrice: body.EstimatedPrice,
			MemberComment:  body.MemberComment,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, wish)
	}
}

// CancelWish withdraws a wish the caller owns.
func CancelWish(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wishID, err := parseUUIDParam(r, "wishId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wish, err := svc.Cancel(r.Context(), userID, wishID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, wish)
	}
}

// ListOrderWishes returns every wish attached to an order, owner included.
func ListOrderWishes(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		orderID, err := parseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"wishes": list})
	}
}

// ReviewWish records the admin decision on a wish.
func ReviewWish(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		wishID, err := parseUUIDParam(r, "wishId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body reviewWishRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseWishStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid wish status"))
			return
		}

		wish, err := svc.Review(r.Context(), wishID, wishes.ReviewInput{
			Status:         status,
			ValidatedPrice: body.ValidatedPrice,
			AdminComment:   body.AdminComment,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, wish)
	}
}
