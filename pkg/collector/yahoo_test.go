package collector

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const quoteSummaryBody = `{
  "quoteSummary": {
    "result": [
      {
        "price": {
          "symbol": "AAPL",
          "longName": "Apple Inc.",
          "regularMarketPrice": {"raw": 182.52}
        },
        "summaryDetail": {
          "trailingPE": {"raw": 28.4},
          "fiftyTwoWeekLow": {"raw": 124.17},
          "fiftyTwoWeekHigh": {"raw": 199.62}
        },
        "defaultKeyStatistics": {
          "priceToBook": {"raw": 44.6}
        }
      }
    ],
    "error": null
  }
}`

const chartBody = `{
  "chart": {
    "result": [
      {"meta": {"regularMarketPrice": 1352.42}}
    ]
  }
}`

func TestFetchQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/AAPL") {
			t.Errorf("请求路径不正确: %s", r.URL.Path)
		}
		w.Write([]byte(quoteSummaryBody))
	}))
	defer server.Close()

	client := NewYahooClient(server.URL, 0)
	quote, err := client.FetchQuote("AAPL")
	if err != nil {
		t.Fatalf("抓取行情失败: %v", err)
	}

	if quote.Name != "Apple Inc." {
		t.Errorf("名称 = %q", quote.Name)
	}
	if quote.Price != 182.52 {
		t.Errorf("价格 = %v", quote.Price)
	}
	if quote.PER != 28.4 || quote.PBR != 44.6 {
		t.Errorf("PER/PBR = %v/%v", quote.PER, quote.PBR)
	}
	if quote.LowPriceYear != 124.17 || quote.HighPriceYear != 199.62 {
		t.Errorf("52周高低价 = %v/%v", quote.LowPriceYear, quote.HighPriceYear)
	}
}

func TestFetchQuoteEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[],"error":null}}`))
	}))
	defer server.Close()

	client := NewYahooClient(server.URL, 0)
	if _, err := client.FetchQuote("NONE"); err == nil {
		t.Error("空结果应返回错误")
	}
}

func TestFetchQuoteHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewYahooClient(server.URL, 0)
	if _, err := client.FetchQuote("AAPL"); err == nil {
		t.Error("非200状态码应返回错误")
	}
}

func TestFetchRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "USDKRW=X") {
			t.Errorf("请求路径不正确: %s", r.URL.Path)
		}
		w.Write([]byte(chartBody))
	}))
	defer server.Close()

	client := NewYahooClient(server.URL, 0)
	rate, err := client.FetchRate()
	if err != nil {
		t.Fatalf("抓取汇率失败: %v", err)
	}
	if rate != 1352.42 {
		t.Errorf("汇率 = %v", rate)
	}
}

func TestFetchRateInvalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{"meta":{"regularMarketPrice":0}}]}}`))
	}))
	defer server.Close()

	client := NewYahooClient(server.URL, 0)
	if _, err := client.FetchRate(); err == nil {
		t.Error("汇率为零应返回错误")
	}
}
