package collector

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// YahooClient Yahoo财经API客户端
type YahooClient struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooClient 创建Yahoo客户端
func NewYahooClient(baseURL string, timeout time.Duration) *YahooClient {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &YahooClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// yahooValue Yahoo返回的数值字段包装
type yahooValue struct {
	Raw float64 `json:"raw"`
}

// quoteSummaryResponse quoteSummary接口响应结构
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				Symbol             string     `json:"symbol"`
				LongName           string     `json:"longName"`
				ShortName          string     `json:"shortName"`
				RegularMarketPrice yahooValue `json:"regularMarketPrice"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE       yahooValue `json:"trailingPE"`
				FiftyTwoWeekLow  yahooValue `json:"fiftyTwoWeekLow"`
				FiftyTwoWeekHigh yahooValue `json:"fiftyTwoWeekHigh"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				PriceToBook yahooValue `json:"priceToBook"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// chartResponse chart接口响应结构（用于汇率）
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

// get 执行GET请求并解析JSON响应
func (c *YahooClient) get(url string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("User-Agent", "stock-tracker/1.0")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("执行HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API返回非200状态码: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	return nil
}

// FetchQuote 抓取单个股票的行情和估值指标
func (c *YahooClient) FetchQuote(ticker string) (*Quote, error) {
	url := fmt.Sprintf(
		"%s/v10/finance/quoteSummary/%s?modules=price,summaryDetail,defaultKeyStatistics",
		c.BaseURL, ticker,
	)

	var resp quoteSummaryResponse
	if err := c.get(url, &resp); err != nil {
		return nil, fmt.Errorf("抓取 %s 行情失败: %w", ticker, err)
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("行情API返回错误: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("未找到 %s 的行情数据", ticker)
	}

	result := resp.QuoteSummary.Result[0]
	name := result.Price.LongName
	if name == "" {
		name = result.Price.ShortName
	}

	return &Quote{
		Ticker:        ticker,
		Name:          name,
		Price:         result.Price.RegularMarketPrice.Raw,
		PER:           result.SummaryDetail.TrailingPE.Raw,
		PBR:           result.DefaultKeyStatistics.PriceToBook.Raw,
		LowPriceYear:  result.SummaryDetail.FiftyTwoWeekLow.Raw,
		HighPriceYear: result.SummaryDetail.FiftyTwoWeekHigh.Raw,
	}, nil
}

// FetchRate 抓取美元兑韩元汇率
func (c *YahooClient) FetchRate() (float64, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/USDKRW=X?interval=1h&range=1d", c.BaseURL)

	var resp chartResponse
	if err := c.get(url, &resp); err != nil {
		return 0, fmt.Errorf("抓取汇率失败: %w", err)
	}

	if len(resp.Chart.Result) == 0 {
		return 0, fmt.Errorf("未找到汇率数据")
	}

	rate := resp.Chart.Result[0].Meta.RegularMarketPrice
	if rate <= 0 {
		return 0, fmt.Errorf("汇率数据无效: %v", rate)
	}
	return rate, nil
}
