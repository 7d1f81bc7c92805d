package keys

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"

	"github.com/klingon-exchange/klingsign/internal/chain"
)

// GenerateMnemonic generates a new 24-word BIP39 mnemonic.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", fmt.Errorf("keys: generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("keys: generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks if a mnemonic is valid.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// Deriver derives per-chain signing keys from a BIP39 seed.
type Deriver struct {
	masterKey *hdkeychain.ExtendedKey
	network   chain.Network
}

// NewDeriver creates a Deriver from a BIP39 mnemonic with an optional
// passphrase.
func NewDeriver(mnemonic, passphrase string, network chain.Network) (*Deriver, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("keys: invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, passphrase)
	defer Zeroize(seed)

	// The BIP32 master key is network-tagged only for xprv/tprv
	// serialization. Derived scalars are identical either way.
	params := &chaincfg.MainNetParams
	if network == chain.Testnet {
		params = &chaincfg.TestNet3Params
	}
	masterKey, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		return nil, fmt.Errorf("keys: create master key: %w", err)
	}

	return &Deriver{masterKey: masterKey, network: network}, nil
}

// Network returns the network this deriver was created for.
func (d *Deriver) Network() chain.Network {
	return d.network
}

// DeriveKey walks the chain's default BIP44/84 path and returns the
// private key at m/purpose'/coin'/account'/change/index.
func (d *Deriver) DeriveKey(params *chain.Params, account, change, index uint32) (*btcec.PrivateKey, error) {
	key := d.masterKey
	for _, step := range params.DerivationPath(account, change, index) {
		child, err := key.Derive(step)
		if err != nil {
			return nil, fmt.Errorf("keys: derive step %#x: %w", step, err)
		}
		key = child
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("keys: extract private key: %w", err)
	}
	return priv, nil
}

// DeriveWIF derives a key at the chain's default path and returns it in
// wallet import format.
func (d *Deriver) DeriveWIF(params *chain.Params, account, change, index uint32) (string, error) {
	priv, err := d.DeriveKey(params, account, change, index)
	if err != nil {
		return "", err
	}
	return EncodeWIF(priv, params.WIF, true), nil
}
