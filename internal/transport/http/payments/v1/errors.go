package http

import (
	"errors"
	"net/http"

	"github.com/nazarijbeketovv/tech-assignment-payments/internal/model"
)

func mapErrorToWebhookRes(err error) errorRes {
	switch {
	case errors.Is(err, model.ErrValidation):
		return validationRes(err) // 400
	case errors.Is(err, model.ErrDuplicateDocument):
		return errorRes{ // 400
			code: http.StatusBadRequest,
			body: errorResponse{Error: model.ErrDuplicateDocument.Error()},
		}
	case errors.Is(err, model.ErrOrganizationNotFound):
		return errorRes{ // 404
			code: http.StatusNotFound,
			body: errorResponse{Error: model.ErrOrganizationNotFound.Error()},
		}
	case errors.Is(err, model.ErrBalanceOverflow):
		return errorRes{ // 500
			code: http.StatusInternalServerError,
			body: errorResponse{Error: model.ErrBalanceOverflow.Error()},
		}
	default:
		return serverErrorRes(err)
	}
}

func mapErrorToBalanceRes(err error) errorRes {
	switch {
	case errors.Is(err, model.ErrOrganizationNotFound):
		return errorRes{ // 404
			code: http.StatusNotFound,
			body: errorResponse{Error: model.ErrOrganizationNotFound.Error()},
		}
	default:
		return serverErrorRes(err)
	}
}

func mapErrorToCreateOrganizationRes(err error) errorRes {
	switch {
	case errors.Is(err, model.ErrValidation):
		return validationRes(err) // 400
	case errors.Is(err, model.ErrOrganizationConflict):
		return errorRes{ // 409
			code: http.StatusConflict,
			body: errorResponse{Error: model.ErrOrganizationConflict.Error()},
		}
	default:
		return serverErrorRes(err)
	}
}

//nolint:dupl
func mapErrorToListRes(err error) errorRes {
	switch {
	case errors.Is(err, model.ErrValidation):
		return validationRes(err) // 400
	case errors.Is(err, model.ErrOrganizationNotFound):
		return errorRes{ // 404
			code: http.StatusNotFound,
			body: errorResponse{Error: model.ErrOrganizationNotFound.Error()},
		}
	default:
		return serverErrorRes(err)
	}
}

func validationRes(err error) errorRes {
	res := errorRes{
		code: http.StatusBadRequest,
		body: errorResponse{Error: model.ErrValidation.Error()},
	}

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		res.body.Details = verr.Details
	}
	return res
}

// serverErrorRes hides the cause; storage failures get their own message.
func serverErrorRes(err error) errorRes {
	if errors.Is(err, model.ErrDatabase) {
		return errorRes{ // 500
			code: http.StatusInternalServerError,
			body: errorResponse{Error: model.ErrDatabase.Error()},
		}
	}
	return errorRes{ // 500
		code: http.StatusInternalServerError,
		body: errorResponse{Error: model.ErrInternal.Error()},
	}
}
