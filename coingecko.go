package vacct

import (
	"fmt"
	"log"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

/*
	{
	    "prices": [
	        [1711843200000, 202.54],
	        [1711929600000, 195.12]
	    ],
	    "market_caps": [...],
	    "total_volumes": [...]
	}
*/
// coingeckoDaily fetches daily SOL/USD closes from CoinGecko for the given
// range and returns them keyed by day. CoinGecko timestamps are milliseconds
// at 00:00 UTC for daily granularity.
func coingeckoDaily(from, to Date) (map[Date]Money, error) {
	addr := fmt.Sprintf(
		"https://api.coingecko.com/api/v3/coins/solana/market_chart/range?vs_currency=usd&from=%d&to=%d",
		from.time().Unix(), to.time().Add(24*time.Hour).Unix())

	var jobj any
	if err := jwget(daily(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", "SOL/USD", err)
	}
	path := "$.prices"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %q %w", "SOL/USD", path, err)
	}
	pairs, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q: %q is not a list", "SOL/USD", path)
	}

	out := make(map[Date]Money, len(pairs))
	for _, p := range pairs {
		pair, ok := p.([]any)
		if !ok || len(pair) != 2 {
			continue
		}
		ms, okTs := pair[0].(float64)
		price, okPx := pair[1].(float64)
		if !okTs || !okPx {
			continue
		}
		on := NewDate(time.UnixMilli(int64(ms)).UTC().Date())
		// the last sample of a day wins, it is the closest to the close
		out[on] = USD(price)
	}
	return out, nil
}

/*
	[
	    [1711843200000, "201.50000000", "206.80000000", "196.30000000", "202.54000000", ...],
	    ...
	]
*/
// binanceDaily fetches daily SOLUSDT closes from Binance klines. Used when
// CoinGecko is unavailable or rate limited; close prices are strings.
func binanceDaily(from, to Date) (map[Date]Money, error) {
	addr := fmt.Sprintf(
		"https://api.binance.com/api/v3/klines?symbol=SOLUSDT&interval=1d&startTime=%d&endTime=%d&limit=1000",
		from.time().UnixMilli(), to.time().Add(24*time.Hour).UnixMilli())

	rows := make([][]any, 0)
	if err := jwget(daily(), addr, &rows); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", "SOLUSDT", err)
	}

	out := make(map[Date]Money, len(rows))
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		ms, okTs := row[0].(float64)
		s, okPx := row[4].(string)
		if !okTs || !okPx {
			continue
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			continue
		}
		on := NewDate(time.UnixMilli(int64(ms)).UTC().Date())
		out[on] = M(d, "USD")
	}
	return out, nil
}

// UpdatePrices fills the series with daily quotes for the given range,
// preferring CoinGecko and falling back to Binance. Existing quotes are
// overwritten by fresher data.
func UpdatePrices(s *PriceSeries, from, to Date) error {
	quotes, err := coingeckoDaily(from, to)
	if err != nil {
		log.Printf("coingecko unavailable, trying binance: %v", err)
		quotes, err = binanceDaily(from, to)
	}
	if err != nil {
		return err
	}
	days := make([]Date, 0, len(quotes))
	prices := make([]Money, 0, len(quotes))
	for on, price := range quotes {
		days, prices = append(days, on), append(prices, price)
	}
	s.AppendAll(days, prices)
	return nil
}
