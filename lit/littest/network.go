// Package littest provides an in memory lit.Network for tests.
package littest

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/DaevMithran/SignxLit/lit"
)

// Network encrypts with a per Network AES-GCM key and only decrypts when
// the request carries the conditions used to encrypt and a valid session
// signature for every node.
type Network struct {
	Blockhash string
	Nodes     []string
	// Now is used to check session expiry. It defaults to time.Now.
	Now func() time.Time

	mu       sync.Mutex
	aead     cipher.AEAD
	stored   map[string]entry
	Encrypts []lit.EncryptRequest
	Decrypts []lit.DecryptRequest
}

type entry struct {
	ciphertext string
	conditions string
}

var ErrConditionsMismatch = errors.New("access control conditions do not match")

func NewNetwork() *Network {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		panic(err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		panic(err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		panic(err)
	}
	blockhash := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, blockhash); err != nil {
		panic(err)
	}
	return &Network{
		Blockhash: "0x" + hex.EncodeToString(blockhash),
		Nodes:     []string{"127.0.0.1:7470", "127.0.0.1:7471"},
		aead:      aead,
		stored:    make(map[string]entry),
	}
}

func (n *Network) LatestBlockhash(context.Context) (string, error) {
	return n.Blockhash, nil
}

func (n *Network) ConnectedNodes(context.Context) ([]string, error) {
	return n.Nodes, nil
}

func (n *Network) Encrypt(_ context.Context,
	req lit.EncryptRequest) (lit.EncryptResponse, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Encrypts = append(n.Encrypts, req)
	conds, err := json.Marshal(req.AccessControlConditions)
	if err != nil {
		return lit.EncryptResponse{}, err
	}
	nonce := make([]byte, n.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return lit.EncryptResponse{}, err
	}
	sum := sha256.Sum256(req.DataToEncrypt)
	hash := hex.EncodeToString(sum[:])
	ciphertext := base64.StdEncoding.EncodeToString(
		n.aead.Seal(nonce, nonce, req.DataToEncrypt, conds))
	n.stored[hash] = entry{ciphertext: ciphertext, conditions: string(conds)}
	return lit.EncryptResponse{Ciphertext: ciphertext,
		DataToEncryptHash: hash}, nil
}

func (n *Network) Decrypt(_ context.Context,
	req lit.DecryptRequest) (lit.DecryptResponse, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Decrypts = append(n.Decrypts, req)
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	for _, node := range n.Nodes {
		sig, ok := req.SessionSigs[node]
		if !ok {
			return lit.DecryptResponse{},
				fmt.Errorf("no session signature for node %v", node)
		}
		if _, err := lit.VerifySessionSig(sig, node, now()); err != nil {
			return lit.DecryptResponse{}, err
		}
	}
	e, ok := n.stored[req.DataToEncryptHash]
	if !ok || e.ciphertext != req.Ciphertext {
		return lit.DecryptResponse{}, fmt.Errorf("unknown ciphertext")
	}
	conds, err := json.Marshal(req.AccessControlConditions)
	if err != nil {
		return lit.DecryptResponse{}, err
	}
	if string(conds) != e.conditions {
		return lit.DecryptResponse{}, ErrConditionsMismatch
	}
	sealed, err := base64.StdEncoding.DecodeString(req.Ciphertext)
	if err != nil {
		return lit.DecryptResponse{}, err
	}
	size := n.aead.NonceSize()
	plaintext, err := n.aead.Open(nil, sealed[:size], sealed[size:], conds)
	if err != nil {
		return lit.DecryptResponse{}, err
	}
	return lit.DecryptResponse{DecryptedData: plaintext}, nil
}
