package kraken

// assetPairInfo is one entry of the AssetPairs result.
type assetPairInfo struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

// tickerInfo is one entry of the Ticker result. C holds [price, lot volume] of the last trade.
type tickerInfo struct {
	C []string `json:"c"`
}

// addOrderResult is the AddOrder result.
type addOrderResult struct {
	Descr struct {
		Order string `json:"order"`
	} `json:"descr"`
	TxID []string `json:"txid"`
}

// OrderResult is the exchange's acknowledgement of an order.
type OrderResult struct {
	Description string
	TxIDs       []string
}
