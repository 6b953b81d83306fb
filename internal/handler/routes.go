package handler

import (
	"net/http"

	"cryptopanel-api/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/assets",
				Handler: AssetsHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/snapshot",
				Handler: SnapshotHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/history",
				Handler: HistoryHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/candles",
				Handler: CandlesHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/range",
				Handler: RangeHandler(serverCtx),
			},
		},
		rest.WithPrefix("/api"),
	)
}
