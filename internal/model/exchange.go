package model

import (
	"fmt"
	"strings"
)

// Exchange identifies a venue in the host platform's enumeration.
type Exchange string

const (
	CFFEX Exchange = "CFFEX" // China Financial Futures Exchange
	SHFE  Exchange = "SHFE"  // Shanghai Futures Exchange
	DCE   Exchange = "DCE"   // Dalian Commodity Exchange
	CZCE  Exchange = "CZCE"  // Zhengzhou Commodity Exchange
	INE   Exchange = "INE"   // Shanghai International Energy Exchange
	GFEX  Exchange = "GFEX"  // Guangzhou Futures Exchange
	SSE   Exchange = "SSE"   // Shanghai Stock Exchange
	SZSE  Exchange = "SZSE"  // Shenzhen Stock Exchange
	BSE   Exchange = "BSE"   // Beijing Stock Exchange
	SEHK  Exchange = "SEHK"  // Stock Exchange of Hong Kong
	SMART Exchange = "SMART"
)

var allExchanges = []Exchange{CFFEX, SHFE, DCE, CZCE, INE, GFEX, SSE, SZSE, BSE, SEHK, SMART}

// ParseExchange accepts the enum value in any case. Short aliases (SH, SZ, HK) map to
// the equity venues.
func ParseExchange(s string) (Exchange, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	switch v {
	case "SH":
		return SSE, nil
	case "SZ":
		return SZSE, nil
	case "HK":
		return SEHK, nil
	}
	for _, e := range allExchanges {
		if string(e) == v {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown exchange %q", s)
}
