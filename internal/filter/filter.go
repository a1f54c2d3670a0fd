package filter

import (
	"regexp"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/samber/lo"

	"github.com/ninja0404/pump-signal/internal/config"
	"github.com/ninja0404/pump-signal/internal/model"
)

// Reason 拒绝原因，用于日志
type Reason string

const (
	ReasonAdmitted           Reason = ""
	ReasonInvalidPair        Reason = "invalid_pair"
	ReasonChainNotAllowed    Reason = "chain_not_allowed"
	ReasonBlacklistedSymbol  Reason = "blacklisted_symbol"
	ReasonBlacklistedCreator Reason = "blacklisted_creator"
	ReasonLowLiquidity       Reason = "low_liquidity"
	ReasonLowVolume          Reason = "low_volume"
)

const chainSolana = "solana"

var (
	// 合约地址20字节，v4池子id为32字节
	evmPairID = regexp.MustCompile(`^0x(?:[0-9a-fA-F]{40}|[0-9a-fA-F]{64})$`)

	evmChains = map[string]struct{}{
		"ethereum":  {},
		"bsc":       {},
		"polygon":   {},
		"arbitrum":  {},
		"base":      {},
		"optimism":  {},
		"avalanche": {},
		"fantom":    {},
		"cronos":    {},
		"linea":     {},
	}
)

// Admit 交易对是否进入跟踪
func Admit(pair *model.PairSnapshot, cfg config.FilterConfig) bool {
	ok, _ := Check(pair, cfg)
	return ok
}

// Check 按顺序检查，返回第一个不满足的原因
// 数值缺失或格式错误一律拒绝
func Check(pair *model.PairSnapshot, cfg config.FilterConfig) (bool, Reason) {
	if pair == nil || !validAddress(pair.ChainID, pair.PairAddress) {
		return false, ReasonInvalidPair
	}
	if !containsFold(cfg.Chains, pair.ChainID) {
		return false, ReasonChainNotAllowed
	}
	if containsFold(cfg.BlacklistedCoins, pair.BaseSymbol) || containsFold(cfg.BlacklistedCoins, pair.QuoteSymbol) {
		return false, ReasonBlacklistedSymbol
	}
	if pair.CreatorAddress != "" && containsFold(cfg.BlacklistedDevs, pair.CreatorAddress) {
		return false, ReasonBlacklistedCreator
	}
	if !pair.LiquidityUSD.Valid || pair.LiquidityUSD.Decimal.LessThan(cfg.MinLiquidity) {
		return false, ReasonLowLiquidity
	}
	if !pair.Volume24h.Valid || pair.Volume24h.Decimal.LessThan(cfg.MinVolume) {
		return false, ReasonLowVolume
	}
	return true, ReasonAdmitted
}

func containsFold(list []string, v string) bool {
	if v == "" {
		return false
	}
	return lo.ContainsBy(list, func(item string) bool {
		return strings.EqualFold(strings.TrimSpace(item), v)
	})
}

func validAddress(chainID, address string) bool {
	address = strings.TrimSpace(address)
	if address == "" {
		return false
	}
	chain := strings.ToLower(chainID)
	if chain == chainSolana {
		_, err := solana.PublicKeyFromBase58(address)
		return err == nil
	}
	if _, ok := evmChains[chain]; ok {
		return evmPairID.MatchString(address)
	}
	return true
}
