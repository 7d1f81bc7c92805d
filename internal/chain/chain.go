// Package chain defines the parameters of every blockchain the signer
// supports. All chain-specific values are hardcoded here - no external
// configuration needed.
package chain

// Network represents mainnet or testnet.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// ChainType represents the blockchain family. The family determines which
// transaction builder handles a signing request.
type ChainType string

const (
	ChainTypeBitcoin ChainType = "bitcoin" // BTC and SegWit forks (LTC)
	ChainTypeEVM     ChainType = "evm"     // Ethereum and EVM chains
	ChainTypeXRP     ChainType = "xrp"     // XRP Ledger
	ChainTypeSolana  ChainType = "solana"  // Solana
)

// Params contains all parameters for a blockchain.
type Params struct {
	// Identity
	Symbol   string    // BTC, LTC, ETH, etc.
	Name     string    // Bitcoin, Litecoin, etc.
	Type     ChainType // bitcoin, evm, xrp, solana
	Decimals uint8     // 8 for BTC, 18 for ETH, 6 for XRP, 9 for SOL

	// BIP44 derivation
	CoinType       uint32 // BIP44 coin type (0=BTC, 2=LTC, 60=ETH, 144=XRP, 501=SOL)
	DefaultPurpose uint32 // 44 or 84 (native SegWit)

	// Bitcoin-family params
	PubKeyHashAddrID byte   // Address prefix for P2PKH
	ScriptHashAddrID byte   // Address prefix for P2SH
	Bech32HRP        string // Bech32 human-readable prefix
	WIF              byte   // Private key prefix
	DustLimit        uint64 // Minimum economically spendable output, in base units
	DefaultFeeRate   uint64 // Fallback fee: base units per vbyte (Bitcoin family) or drops (XRP)

	// EVM params
	ChainID uint64 // EIP-155 chain ID

	// XRP params
	ReserveDrops uint64 // Base account reserve, in drops
}

// DerivationPath returns the hardened BIP44/84 path
// m/purpose'/coin'/account'/change/index.
func (p *Params) DerivationPath(account, change, index uint32) []uint32 {
	const hardened = 0x80000000
	return []uint32{
		p.DefaultPurpose + hardened,
		p.CoinType + hardened,
		account + hardened,
		change,
		index,
	}
}

// registry holds all chain parameters indexed by symbol and network.
var registry = make(map[string]map[Network]*Params)

// Register adds chain params to the registry. It is called from init
// functions and panics on duplicate registration.
func Register(symbol string, network Network, params *Params) {
	if registry[symbol] == nil {
		registry[symbol] = make(map[Network]*Params)
	}
	if _, exists := registry[symbol][network]; exists {
		panic("chain: duplicate registration for " + symbol + "/" + string(network))
	}
	registry[symbol][network] = params
}

// Get returns chain params for a symbol and network.
func Get(symbol string, network Network) (*Params, bool) {
	nets, ok := registry[symbol]
	if !ok {
		return nil, false
	}
	params, ok := nets[network]
	return params, ok
}

// List returns all registered chain symbols.
func List() []string {
	symbols := make([]string, 0, len(registry))
	for symbol := range registry {
		symbols = append(symbols, symbol)
	}
	return symbols
}

// IsSupported returns true if the chain is registered.
func IsSupported(symbol string) bool {
	_, ok := registry[symbol]
	return ok
}

// GetByChainID returns the params whose EIP-155 chain ID matches.
func GetByChainID(chainID uint64, network Network) (*Params, bool) {
	for _, nets := range registry {
		if params, ok := nets[network]; ok {
			if params.Type == ChainTypeEVM && params.ChainID == chainID {
				return params, true
			}
		}
	}
	return nil, false
}
