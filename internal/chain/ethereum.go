package chain

func init() {
	// Ethereum Mainnet
	Register("ETH", Mainnet, &Params{
		Symbol:   "ETH",
		Name:     "Ethereum",
		Type:     ChainTypeEVM,
		Decimals: 18,

		CoinType:       60,
		DefaultPurpose: 44,

		ChainID: 1,
	})

	// Ethereum Sepolia
	Register("ETH", Testnet, &Params{
		Symbol:   "ETH",
		Name:     "Ethereum Sepolia",
		Type:     ChainTypeEVM,
		Decimals: 18,

		CoinType:       1,
		DefaultPurpose: 44,

		ChainID: 11155111,
	})

	// BNB Smart Chain
	Register("BSC", Mainnet, &Params{
		Symbol:   "BSC",
		Name:     "BNB Smart Chain",
		Type:     ChainTypeEVM,
		Decimals: 18,

		CoinType:       60,
		DefaultPurpose: 44,

		ChainID: 56,
	})

	// Polygon
	Register("POLYGON", Mainnet, &Params{
		Symbol:   "POLYGON",
		Name:     "Polygon",
		Type:     ChainTypeEVM,
		Decimals: 18,

		CoinType:       60,
		DefaultPurpose: 44,

		ChainID: 137,
	})
}
