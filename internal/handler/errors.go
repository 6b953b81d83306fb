package handler

import (
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"cryptopanel-api/internal/logic"
	"cryptopanel-api/internal/types"
	"cryptopanel-api/pkg/market"
)

const unavailableMessage = "market data unavailable, try again later"

// StatusFor maps service errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case market.IsValidation(err), errors.Is(err, logic.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, market.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusBadGateway:
		msg = unavailableMessage
	case http.StatusInternalServerError:
		logx.WithContext(r.Context()).Errorf("handler: %s %s err=%v", r.Method, r.URL.Path, err)
		msg = http.StatusText(status)
	}
	httpx.WriteJsonCtx(r.Context(), w, status, &types.ErrorResp{Code: status, Message: msg})
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	httpx.WriteJsonCtx(r.Context(), w, http.StatusBadRequest, &types.ErrorResp{Code: http.StatusBadRequest, Message: err.Error()})
}
