// Package client signs and verifies transactions with the xchain account keys.
package client

import (
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/xuperchain/crypto/client/service/xchain"
	"github.com/xuperchain/crypto/core/account"
)

const (
	// CryptoTypeDefault : default Nist ECC
	CryptoTypeDefault = "default"
)

// CryptoClient is the part of the xchain crypto client the host relies on.
type CryptoClient interface {
	SignECDSA(k *ecdsa.PrivateKey, msg []byte) ([]byte, error)
	VerifyECDSA(k *ecdsa.PublicKey, signature, msg []byte) (bool, error)
	GetAddressFromPublicKey(pub *ecdsa.PublicKey) (string, error)
	VerifyAddressUsingPublicKey(address string, pub *ecdsa.PublicKey) (bool, uint8)
	GetEcdsaPublicKeyFromJsonStr(keyStr string) (*ecdsa.PublicKey, error)
	GetEcdsaPrivateKeyFromJsonStr(keyStr string) (*ecdsa.PrivateKey, error)
	ExportNewAccount(path string) error
}

type NewCryptoFunc func() CryptoClient

var (
	servsMu  sync.RWMutex
	services = make(map[string]NewCryptoFunc)
)

func Register(name string, f NewCryptoFunc) {
	servsMu.Lock()
	defer servsMu.Unlock()

	if f == nil {
		panic("crypto: Register new func is nil")
	}
	if _, dup := services[name]; dup {
		panic("crypto: Register called twice for func " + name)
	}
	services[name] = f
}

func Drivers() []string {
	servsMu.RLock()
	defer servsMu.RUnlock()
	list := make([]string, 0, len(services))
	for name := range services {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

func CreateCryptoClient(cryptoType string) (CryptoClient, error) {
	servsMu.RLock()
	defer servsMu.RUnlock()

	if f, ok := services[cryptoType]; ok {
		return f(), nil
	}
	return nil, errors.New("get cryptoClient fail")
}

func init() {
	Register(CryptoTypeDefault, func() CryptoClient {
		return &xchain.XchainCryptoClient{}
	})
}

// CreateCryptoClientFromJSONPublicKey create CryptoClient by json encoded public key
func CreateCryptoClientFromJSONPublicKey(jsonKey []byte) (CryptoClient, error) {
	publicKey := new(account.ECDSAPublicKey)
	if err := json.Unmarshal(jsonKey, publicKey); err != nil {
		return nil, err
	}
	cryptoType, err := getTypeByCurveName(publicKey.Curvname)
	if err != nil {
		return nil, err
	}
	return CreateCryptoClient(cryptoType)
}

// CreateCryptoClientFromJSONPrivateKey create CryptoClient by json encoded private key
func CreateCryptoClientFromJSONPrivateKey(jsonKey []byte) (CryptoClient, error) {
	privateKey := new(account.ECDSAPrivateKey)
	if err := json.Unmarshal(jsonKey, privateKey); err != nil {
		return nil, err
	}
	cryptoType, err := getTypeByCurveName(privateKey.Curvname)
	if err != nil {
		return nil, err
	}
	return CreateCryptoClient(cryptoType)
}

func getTypeByCurveName(name string) (string, error) {
	switch name {
	case "P-256":
		return CryptoTypeDefault, nil
	default:
		return "", errors.New("Unknown curve name")
	}
}

// Sign signs data with a json encoded private key.
func Sign(privateKey string, data []byte) ([]byte, error) {
	xcc, err := CreateCryptoClientFromJSONPrivateKey([]byte(privateKey))
	if err != nil {
		return nil, err
	}
	key, err := xcc.GetEcdsaPrivateKeyFromJsonStr(privateKey)
	if err != nil {
		return nil, err
	}
	return xcc.SignECDSA(key, data)
}

// AddressFromPublicKey returns the account address owning a json encoded public key.
func AddressFromPublicKey(publicKey string) (string, error) {
	xcc, err := CreateCryptoClientFromJSONPublicKey([]byte(publicKey))
	if err != nil {
		return "", err
	}
	key, err := xcc.GetEcdsaPublicKeyFromJsonStr(publicKey)
	if err != nil {
		return "", err
	}
	return xcc.GetAddressFromPublicKey(key)
}

// VerifySign checks that publicKey belongs to ak and that sign covers data.
func VerifySign(ak, publicKey string, sign, data []byte) (bool, error) {
	xcc, err := CreateCryptoClientFromJSONPublicKey([]byte(publicKey))
	if err != nil {
		return false, err
	}
	ecdsaKey, err := xcc.GetEcdsaPublicKeyFromJsonStr(publicKey)
	if err != nil {
		return false, err
	}
	isMatch, _ := xcc.VerifyAddressUsingPublicKey(ak, ecdsaKey)
	if !isMatch {
		return false, errors.New("address and public key not match")
	}
	return xcc.VerifyECDSA(ecdsaKey, sign, data)
}

// NewAccount writes address, public.key and private.key of a fresh account into path.
func NewAccount(path string) error {
	xcc, err := CreateCryptoClient(CryptoTypeDefault)
	if err != nil {
		return err
	}
	return xcc.ExportNewAccount(path)
}
