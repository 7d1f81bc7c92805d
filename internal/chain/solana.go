package chain

func init() {
	// Solana Mainnet
	Register("SOL", Mainnet, &Params{
		Symbol:   "SOL",
		Name:     "Solana",
		Type:     ChainTypeSolana,
		Decimals: 9,

		CoinType:       501,
		DefaultPurpose: 44,
	})

	// Solana Devnet
	Register("SOL", Testnet, &Params{
		Symbol:   "SOL",
		Name:     "Solana Devnet",
		Type:     ChainTypeSolana,
		Decimals: 9,

		CoinType:       501,
		DefaultPurpose: 44,
	})
}
