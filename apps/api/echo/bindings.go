package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/amenagement/core/collection"
)

var confirmParam = "confirm"

// confirmer reads the `confirm` query param. Deletions are declined unless it parses as true.
func confirmer(ctx echo.Context) collection.Confirmer {
	ok, err := strconv.ParseBool(ctx.QueryParam(confirmParam))
	if err != nil || !ok {
		return collection.Declined
	}
	return collection.Confirmed
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	// DeleteResponse tells whether the record was removed. Declined deletions report false.
	DeleteResponse struct {
		Deleted bool   `json:"deleted"`
		Prompt  string `json:"prompt,omitempty"`
	}
)

func newDeleteResponse(deleted bool, prompt string) DeleteResponse {
	if deleted {
		return DeleteResponse{Deleted: true}
	}
	return DeleteResponse{Prompt: prompt}
}
