// Package main provides klingsign - an offline multi-chain transaction
// signer. It reads a chain-specific signing request, builds and signs the
// transaction entirely locally, prints the raw bytes and transaction id,
// and records the result.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/klingon-exchange/klingsign/internal/bitcoin"
	"github.com/klingon-exchange/klingsign/internal/chain"
	"github.com/klingon-exchange/klingsign/internal/config"
	"github.com/klingon-exchange/klingsign/internal/ethereum"
	"github.com/klingon-exchange/klingsign/internal/keys"
	"github.com/klingon-exchange/klingsign/internal/solana"
	"github.com/klingon-exchange/klingsign/internal/store"
	"github.com/klingon-exchange/klingsign/internal/xrp"
	"github.com/klingon-exchange/klingsign/pkg/helpers"
	"github.com/klingon-exchange/klingsign/pkg/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

func main() {
	var (
		chainSymbol = flag.String("chain", "", "Chain symbol (BTC, LTC, ETH, XRP, SOL, ...)")
		requestFile = flag.String("request", "-", "Signing request JSON file ('-' for stdin)")
		keyInput    = flag.String("key", "", "Private key: WIF (Bitcoin family), hex scalar (ETH/XRP) or hex seed (SOL)")
		mnemonic    = flag.String("mnemonic", "", "BIP39 mnemonic to derive the key from instead of -key")
		account     = flag.Uint("account", 0, "BIP44 account index when deriving from mnemonic")
		addrIndex   = flag.Uint("index", 0, "BIP44 address index when deriving from mnemonic")
		token       = flag.String("token", "", "ERC-20 token symbol; rewrites an EVM request into a token transfer")
		dataDir     = flag.String("data-dir", "~/.klingsign", "Data directory")
		testnet     = flag.Bool("testnet", false, "Use testnet parameters (separate data)")
		logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error), overrides config")
		noStore     = flag.Bool("no-store", false, "Do not record the signed transaction")
		listRecent  = flag.Int("list", 0, "List the N most recent signing records for -chain and exit")
		showVersion = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	log := logging.New(&logging.Config{Level: *logLevel})
	logging.SetDefault(log)

	if *showVersion {
		fmt.Printf("klingsign %s (commit: %s)\n", version, commit)
		return
	}

	effectiveDataDir := *dataDir
	if *testnet {
		effectiveDataDir = filepath.Join(*dataDir, "testnet")
	}

	cfg, err := config.Load(effectiveDataDir)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if *testnet {
		cfg.Network = string(chain.Testnet)
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	log = logging.New(&logging.Config{Level: cfg.Logging.Level})
	logging.SetDefault(log)

	if *chainSymbol == "" {
		log.Fatal("Missing -chain", "supported", strings.Join(chain.List(), ", "))
	}
	symbol := strings.ToUpper(*chainSymbol)
	params, ok := chain.Get(symbol, cfg.NetworkType())
	if !ok {
		log.Fatal("Unsupported chain", "chain", symbol, "network", cfg.Network)
	}

	db, err := store.Open(&store.Config{DataDir: effectiveDataDir})
	if err != nil {
		log.Fatal("Failed to open record store", "error", err)
	}
	defer db.Close()

	if *listRecent > 0 {
		records, err := db.ListRecent(symbol, *listRecent)
		if err != nil {
			log.Fatal("Failed to list records", "error", err)
		}
		for _, r := range records {
			fmt.Printf("%s  %-5s %-8s %s -> %s (%s)\n",
				r.CreatedAt.Format("2006-01-02 15:04:05"), r.Chain, r.Network, r.TxID, r.Recipient, r.Amount)
		}
		return
	}

	raw, err := readRequest(*requestFile)
	if err != nil {
		log.Fatal("Failed to read request", "error", err)
	}

	signed, err := sign(&signContext{
		params:   params,
		cfg:      cfg,
		log:      log,
		request:  raw,
		key:      *keyInput,
		mnemonic: *mnemonic,
		account:  uint32(*account),
		index:    uint32(*addrIndex),
		token:    *token,
	})
	if err != nil {
		log.Fatal("Signing failed", "chain", symbol, "error", err)
	}

	log.Info("Transaction signed",
		"chain", symbol,
		"network", cfg.Network,
		"txid", signed.txID,
		"amount", helpers.FormatAmount(signed.amount, params.Decimals))

	fmt.Printf("txid: %s\n", signed.txID)
	fmt.Printf("raw:  %s\n", signed.raw)

	if !*noStore {
		record := &store.Record{
			Chain:     symbol,
			Network:   cfg.Network,
			TxID:      signed.txID,
			Recipient: signed.recipient,
			Amount:    signed.amountText,
			Raw:       signed.raw,
		}
		if err := db.SaveRecord(record); err != nil {
			log.Error("Failed to record signing", "error", err)
		} else {
			log.Debug("Signing recorded", "id", record.ID)
		}
	}
}

// signContext carries everything one signing run needs.
type signContext struct {
	params   *chain.Params
	cfg      *config.Config
	log      *logging.Logger
	request  []byte
	key      string
	mnemonic string
	account  uint32
	index    uint32
	token    string
}

// signResult normalizes per-chain build results for printing and storage.
type signResult struct {
	raw        string
	txID       string
	recipient  string
	amount     uint64 // base units for display, 0 when it exceeds uint64
	amountText string // base units as decimal text
}

func sign(sc *signContext) (*signResult, error) {
	switch sc.params.Type {
	case chain.ChainTypeBitcoin:
		return signBitcoin(sc)
	case chain.ChainTypeEVM:
		return signEVM(sc)
	case chain.ChainTypeXRP:
		return signXRP(sc)
	case chain.ChainTypeSolana:
		return signSolana(sc)
	default:
		return nil, fmt.Errorf("no builder for chain type %q", sc.params.Type)
	}
}

func signBitcoin(sc *signContext) (*signResult, error) {
	var req struct {
		Inputs []struct {
			TxID     string `json:"txid"`
			Vout     uint32 `json:"vout"`
			Value    uint64 `json:"value"`
			Sequence uint32 `json:"sequence,omitempty"`
		} `json:"inputs"`
		To            string `json:"to"`
		ChangeAddress string `json:"change_address,omitempty"`
		Amount        uint64 `json:"amount,omitempty"`
		AmountDecimal string `json:"amount_decimal,omitempty"`
		FeeRate       uint64 `json:"fee_rate,omitempty"`
		Fee           uint64 `json:"fee,omitempty"`
		LockTime      uint32 `json:"lock_time,omitempty"`
	}
	if err := json.Unmarshal(sc.request, &req); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}

	amount, err := resolveAmount(req.Amount, req.AmountDecimal, sc.params.Decimals)
	if err != nil {
		return nil, err
	}

	txReq := &bitcoin.TxRequest{
		To:            req.To,
		ChangeAddress: req.ChangeAddress,
		Amount:        amount,
		FeeRate:       req.FeeRate,
		Fee:           req.Fee,
		LockTime:      req.LockTime,
	}
	for _, in := range req.Inputs {
		txReq.Inputs = append(txReq.Inputs, bitcoin.UTXO{
			TxID:     in.TxID,
			Vout:     in.Vout,
			Value:    in.Value,
			Sequence: in.Sequence,
		})
	}
	if txReq.FeeRate == 0 && txReq.Fee == 0 {
		if fee, ok := sc.cfg.FeeFor(sc.params.Symbol); ok && fee.FeeRate > 0 {
			txReq.FeeRate = fee.FeeRate
		} else {
			txReq.FeeRate = sc.params.DefaultFeeRate
		}
	}

	wif, err := bitcoinWIF(sc)
	if err != nil {
		return nil, err
	}

	signed, err := bitcoin.BuildAndSign(wif, txReq, sc.params)
	if err != nil {
		return nil, err
	}
	sc.log.Debug("Bitcoin transaction built",
		"vsize", signed.VSize, "fee", signed.Fee, "change", signed.Change)

	return &signResult{
		raw:        signed.RawHex,
		txID:       signed.TxID,
		recipient:  req.To,
		amount:     amount,
		amountText: strconv.FormatUint(amount, 10),
	}, nil
}

func signEVM(sc *signContext) (*signResult, error) {
	var req struct {
		Nonce    uint64 `json:"nonce"`
		GasPrice string `json:"gas_price,omitempty"`
		GasLimit uint64 `json:"gas_limit,omitempty"`
		To       string `json:"to"`
		Value    string `json:"value,omitempty"`
		Data     string `json:"data,omitempty"`
		ChainID  uint64 `json:"chain_id,omitempty"`
	}
	if err := json.Unmarshal(sc.request, &req); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}

	txReq := &ethereum.TxRequest{
		Nonce:    req.Nonce,
		GasLimit: req.GasLimit,
		To:       req.To,
		ChainID:  req.ChainID,
	}
	if txReq.ChainID == 0 {
		txReq.ChainID = sc.params.ChainID
	}
	if req.GasPrice != "" {
		price, ok := helpers.ParseBigInt(req.GasPrice)
		if !ok {
			return nil, fmt.Errorf("invalid gas_price %q", req.GasPrice)
		}
		txReq.GasPrice = price
	} else if fee, ok := sc.cfg.FeeFor(sc.params.Symbol); ok && fee.GasPrice != "" {
		price, ok := helpers.ParseBigInt(fee.GasPrice)
		if !ok {
			return nil, fmt.Errorf("invalid configured gas_price %q", fee.GasPrice)
		}
		txReq.GasPrice = price
	}
	if req.Value != "" {
		value, ok := helpers.ParseBigInt(req.Value)
		if !ok {
			return nil, fmt.Errorf("invalid value %q", req.Value)
		}
		txReq.Value = value
	}
	if req.Data != "" {
		data, err := helpers.HexToBytes(req.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid data: %w", err)
		}
		txReq.Data = data
	}

	recipient := txReq.To
	if sc.token != "" {
		rewritten, err := ethereum.BuildTokenTransfer(sc.token, txReq)
		if err != nil {
			return nil, err
		}
		txReq = rewritten
	}

	privKey, err := secpKeyBytes(sc)
	if err != nil {
		return nil, err
	}
	defer keys.Zeroize(privKey)

	signed, err := ethereum.BuildAndSign(privKey, txReq)
	if err != nil {
		return nil, err
	}

	amountText := "0"
	var amount uint64
	if req.Value != "" {
		value, _ := helpers.ParseBigInt(req.Value)
		amountText = value.String()
		if value.IsUint64() {
			amount = value.Uint64()
		}
	}
	return &signResult{
		raw:        signed.RawHex,
		txID:       signed.TxHash,
		recipient:  recipient,
		amount:     amount,
		amountText: amountText,
	}, nil
}

func signXRP(sc *signContext) (*signResult, error) {
	var req struct {
		Sequence      uint32 `json:"sequence"`
		Amount        uint64 `json:"amount,omitempty"`
		AmountDecimal string `json:"amount_decimal,omitempty"`
		Fee           uint64 `json:"fee,omitempty"`
		Destination   string `json:"destination"`
	}
	if err := json.Unmarshal(sc.request, &req); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}
	amount, err := resolveAmount(req.Amount, req.AmountDecimal, sc.params.Decimals)
	if err != nil {
		return nil, err
	}
	if req.Fee == 0 {
		if fee, ok := sc.cfg.FeeFor(sc.params.Symbol); ok && fee.FeeDrops > 0 {
			req.Fee = fee.FeeDrops
		} else {
			req.Fee = sc.params.DefaultFeeRate
		}
	}
	if amount < sc.params.ReserveDrops {
		sc.log.Warn("Amount is below the base reserve; payments funding a new account will fail",
			"amount", amount, "reserve", sc.params.ReserveDrops)
	}

	privKey, err := secpKeyBytes(sc)
	if err != nil {
		return nil, err
	}
	defer keys.Zeroize(privKey)

	signed, err := xrp.BuildAndSign(privKey, &xrp.PaymentRequest{
		Sequence:    req.Sequence,
		Amount:      amount,
		Fee:         req.Fee,
		Destination: req.Destination,
	})
	if err != nil {
		return nil, err
	}
	sc.log.Debug("Payment built", "account", signed.Account, "sequence", req.Sequence)

	return &signResult{
		raw:        signed.RawHex,
		txID:       signed.TxID,
		recipient:  req.Destination,
		amount:     amount,
		amountText: strconv.FormatUint(amount, 10),
	}, nil
}

func signSolana(sc *signContext) (*signResult, error) {
	var req struct {
		Recipient       string `json:"recipient"`
		Lamports        uint64 `json:"lamports,omitempty"`
		AmountDecimal   string `json:"amount_decimal,omitempty"`
		RecentBlockhash string `json:"recent_blockhash"`
	}
	if err := json.Unmarshal(sc.request, &req); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}
	lamports, err := resolveAmount(req.Lamports, req.AmountDecimal, sc.params.Decimals)
	if err != nil {
		return nil, err
	}

	if pub, err := base58.Decode(req.Recipient); err == nil && len(pub) == 32 {
		var key [32]byte
		copy(key[:], pub)
		if !solana.IsOnCurve(key) {
			sc.log.Warn("Recipient is not on the Ed25519 curve; likely a PDA", "recipient", req.Recipient)
		}
	}

	if sc.mnemonic != "" {
		return nil, fmt.Errorf("mnemonic derivation is not supported for SOL, pass -key with a hex seed")
	}
	seed, err := helpers.HexToBytes(sc.key)
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}
	defer keys.Zeroize(seed)

	signed, err := solana.BuildAndSign(seed, &solana.TransferRequest{
		Recipient:       req.Recipient,
		Lamports:        lamports,
		RecentBlockhash: req.RecentBlockhash,
	})
	if err != nil {
		return nil, err
	}

	return &signResult{
		raw:        signed.Raw,
		txID:       signed.Signature,
		recipient:  req.Recipient,
		amount:     lamports,
		amountText: strconv.FormatUint(lamports, 10),
	}, nil
}

// bitcoinWIF resolves the signing key for Bitcoin-family chains. -key is
// taken as WIF; -mnemonic derives one at the requested path.
func bitcoinWIF(sc *signContext) (string, error) {
	if sc.mnemonic != "" {
		deriver, err := keys.NewDeriver(sc.mnemonic, "", sc.cfg.NetworkType())
		if err != nil {
			return "", err
		}
		return deriver.DeriveWIF(sc.params, sc.account, 0, sc.index)
	}
	if sc.key == "" {
		return "", fmt.Errorf("no key: pass -key or -mnemonic")
	}
	return sc.key, nil
}

// secpKeyBytes resolves a raw 32-byte secp256k1 scalar for ETH and XRP,
// either from -key hex or by mnemonic derivation. The caller zeroizes it.
func secpKeyBytes(sc *signContext) ([]byte, error) {
	if sc.mnemonic != "" {
		deriver, err := keys.NewDeriver(sc.mnemonic, "", sc.cfg.NetworkType())
		if err != nil {
			return nil, err
		}
		priv, err := deriver.DeriveKey(sc.params, sc.account, 0, sc.index)
		if err != nil {
			return nil, err
		}
		return priv.Serialize(), nil
	}
	if sc.key == "" {
		return nil, fmt.Errorf("no key: pass -key or -mnemonic")
	}
	raw, err := helpers.HexToBytes(sc.key)
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}
	return raw, nil
}

// resolveAmount returns the base-unit amount for a request that may carry
// it either as an integer or as human decimal text ("1.5").
func resolveAmount(base uint64, decimal string, decimals uint8) (uint64, error) {
	if decimal == "" {
		return base, nil
	}
	if base != 0 {
		return 0, fmt.Errorf("amount given both in base units and as decimal text")
	}
	return helpers.ParseAmount(decimal, decimals)
}

func readRequest(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
