package chain

func init() {
	// XRP Ledger Mainnet
	Register("XRP", Mainnet, &Params{
		Symbol:   "XRP",
		Name:     "XRP Ledger",
		Type:     ChainTypeXRP,
		Decimals: 6,

		CoinType:       144,
		DefaultPurpose: 44,

		DefaultFeeRate: 10,
		ReserveDrops:   1_000_000,
	})

	// XRP Ledger Testnet
	Register("XRP", Testnet, &Params{
		Symbol:   "XRP",
		Name:     "XRP Ledger Testnet",
		Type:     ChainTypeXRP,
		Decimals: 6,

		CoinType:       1,
		DefaultPurpose: 44,

		DefaultFeeRate: 10,
		ReserveDrops:   1_000_000,
	})
}
