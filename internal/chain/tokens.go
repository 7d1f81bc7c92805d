package chain

import "strings"

// TokenInfo describes an ERC-20 token deployed on an EVM chain. The signer
// uses it to resolve a token symbol to a contract address and decimals when
// building a transfer.
type TokenInfo struct {
	Symbol   string // Token symbol (USDT, USDC, etc.)
	Name     string // Full name
	Decimals uint8  // Token decimals
	Address  string // Contract address on this chain
	ChainID  uint64 // EVM chain ID
}

// tokenRegistry maps chainID -> symbol -> TokenInfo
var tokenRegistry = make(map[uint64]map[string]*TokenInfo)

func init() {
	// Ethereum Mainnet (chainID 1)
	registerToken(&TokenInfo{
		Symbol:   "USDT",
		Name:     "Tether USD",
		Decimals: 6,
		Address:  "0xdAC17F958D2ee523a2206206994597C13D831ec7",
		ChainID:  1,
	})
	registerToken(&TokenInfo{
		Symbol:   "USDC",
		Name:     "USD Coin",
		Decimals: 6,
		Address:  "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		ChainID:  1,
	})
	registerToken(&TokenInfo{
		Symbol:   "WETH",
		Name:     "Wrapped Ether",
		Decimals: 18,
		Address:  "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		ChainID:  1,
	})
	registerToken(&TokenInfo{
		Symbol:   "WBTC",
		Name:     "Wrapped Bitcoin",
		Decimals: 8,
		Address:  "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599",
		ChainID:  1,
	})

	// BNB Smart Chain (chainID 56)
	registerToken(&TokenInfo{
		Symbol:   "USDT",
		Name:     "Tether USD",
		Decimals: 18, // BSC USDT has 18 decimals
		Address:  "0x55d398326f99059fF775485246999027B3197955",
		ChainID:  56,
	})

	// Polygon (chainID 137)
	registerToken(&TokenInfo{
		Symbol:   "USDT",
		Name:     "Tether USD",
		Decimals: 6,
		Address:  "0xc2132D05D31c914a87C6611C10748AEb04B58e8F",
		ChainID:  137,
	})
	registerToken(&TokenInfo{
		Symbol:   "USDC",
		Name:     "USD Coin",
		Decimals: 6,
		Address:  "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359",
		ChainID:  137,
	})
}

func registerToken(token *TokenInfo) {
	if tokenRegistry[token.ChainID] == nil {
		tokenRegistry[token.ChainID] = make(map[string]*TokenInfo)
	}
	tokenRegistry[token.ChainID][strings.ToUpper(token.Symbol)] = token
}

// GetToken returns the token info for a symbol on an EVM chain, or nil if
// the token is not registered.
func GetToken(chainID uint64, symbol string) *TokenInfo {
	tokens, ok := tokenRegistry[chainID]
	if !ok {
		return nil
	}
	return tokens[strings.ToUpper(symbol)]
}

// ListTokens returns all registered tokens for an EVM chain.
func ListTokens(chainID uint64) []*TokenInfo {
	tokens, ok := tokenRegistry[chainID]
	if !ok {
		return nil
	}
	result := make([]*TokenInfo, 0, len(tokens))
	for _, token := range tokens {
		result = append(result, token)
	}
	return result
}
