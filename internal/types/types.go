package types

import "cryptopanel-api/pkg/market"

type AssetsResp struct {
	Assets  []market.AssetRef `json:"assets"`
	Periods []string          `json:"periods"`
}

type SnapshotReq struct {
	Coin string `form:"coin"`
}

type SnapshotResp struct {
	Coin     string                  `json:"coin"`
	Snapshot *market.SnapshotRecord `json:"snapshot"`
	Display  market.SnapshotDisplay `json:"display"`
}

type SeriesReq struct {
	Coin   string `form:"coin"`
	Period string `form:"period,default=30d"`
	MA     int    `form:"ma,optional"`
}

type RangeReq struct {
	Coin  string `form:"coin"`
	Start string `form:"start"`
	End   string `form:"end"`
	MA    int    `form:"ma,optional"`
}

type SeriesResp struct {
	Coin  string        `json:"coin"`
	Table *market.Table `json:"table"`
}

type ErrorResp struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
