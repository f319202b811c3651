package collector

// Quote 一次行情抓取的结果
type Quote struct {
	Ticker        string
	Name          string
	Price         float64
	PER           float64
	PBR           float64
	LowPriceYear  float64 // 52周最低价
	HighPriceYear float64 // 52周最高价
}

// QuoteFetcher 行情获取接口
type QuoteFetcher interface {
	FetchQuote(ticker string) (*Quote, error)
}

// RateFetcher 汇率获取接口，返回1美元兑换的韩元数量
type RateFetcher interface {
	FetchRate() (float64, error)
}
