// Package api provides the CoinGecko REST client used for price acquisition.
//
// Endpoints:
//   - GET /coins/{id}/market_chart/range  price series over a UTC timestamp range
//   - GET /simple/price                   current spot prices for many assets
//
// All price points come back as (epoch-ms timestamp, price) pairs. The free
// tier throttles aggressively; a 429 response is the only retry trigger and is
// handled with a bounded fixed cool-down loop.
package api
