// MIT License
//
// Copyright 2024 The SignxLit Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package lit

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/ed25519"
)

const (
	// SessionDuration is how long a session capability is valid for.
	SessionDuration = 10 * time.Minute

	// DecryptionResource covers every access control condition.
	DecryptionResource = "lit-accesscontrolcondition://*"
	DecryptionAbility  = "access-control-condition-decryption"

	timeFormat = "2006-01-02T15:04:05.000Z"
)

// AuthSig is a signature over SignedMessage by Address.
type AuthSig struct {
	Sig           string `json:"sig"`
	DerivedVia    string `json:"derivedVia"`
	SignedMessage string `json:"signedMessage"`
	Address       string `json:"address"`
	Algo          string `json:"algo,omitempty"`
}

type ResourceAbilityRequest struct {
	Resource string `json:"resource"`
	Ability  string `json:"ability"`
}

// SessionCapability is the message signed by the session key for each
// node.
type SessionCapability struct {
	SessionKey              string                   `json:"sessionKey"`
	ResourceAbilityRequests []ResourceAbilityRequest `json:"resourceAbilityRequests"`
	Capabilities            []AuthSig                `json:"capabilities"`
	IssuedAt                string                   `json:"issuedAt"`
	Expiration              string                   `json:"expiration"`
	NodeAddress             string                   `json:"nodeAddress"`
}

// recap returns the ReCap (EIP-5573) resource URN granting decryption of
// any access control condition.
func recap() string {
	data, _ := json.Marshal(map[string]interface{}{
		"att": map[string]interface{}{
			DecryptionResource: map[string][]struct{}{
				"Threshold/Decryption": {{}},
			},
		},
		"prf": []string{},
	})
	return "urn:recap:" + base64.RawURLEncoding.EncodeToString(data)
}

// siweMessage is an EIP-4361 Sign-In with Ethereum message.
type siweMessage struct {
	Domain         string
	Address        string
	Statement      string
	URI            string
	ChainID        uint64
	Nonce          string
	IssuedAt       time.Time
	ExpirationTime time.Time
	Resources      []string
}

func (m siweMessage) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v wants you to sign in with your Ethereum account:\n%v\n\n",
		m.Domain, m.Address)
	if m.Statement != "" {
		fmt.Fprintf(&b, "%v\n\n", m.Statement)
	}
	fmt.Fprintf(&b, "URI: %v\nVersion: 1\nChain ID: %v\nNonce: %v\n",
		m.URI, m.ChainID, m.Nonce)
	fmt.Fprintf(&b, "Issued At: %v\nExpiration Time: %v",
		m.IssuedAt.Format(timeFormat), m.ExpirationTime.Format(timeFormat))
	if len(m.Resources) > 0 {
		b.WriteString("\nResources:")
		for _, r := range m.Resources {
			fmt.Fprintf(&b, "\n- %v", r)
		}
	}
	return b.String()
}

const recapStatement = "I further authorize the stated URI to perform the " +
	"following actions on my behalf: (1) 'Threshold': 'Decryption' for " +
	"'" + DecryptionResource + "'."

// sessionSigs establishes a new session and returns a session signature
// for every connected node.
func (c *Client) sessionSigs(ctx context.Context) (map[string]AuthSig, error) {
	nonce, err := c.network.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}
	nodes, err := c.network.ConnectedNodes(ctx)
	if err != nil {
		return nil, err
	}
	pub, priv, err := ed25519.GenerateKey(c.rand)
	if err != nil {
		return nil, err
	}
	sessionKey := hex.EncodeToString(pub)
	issuedAt := c.now().UTC()
	expiration := issuedAt.Add(SessionDuration)

	msg := siweMessage{
		Domain:         c.domain,
		Address:        c.signer.Address().Hex(),
		Statement:      recapStatement,
		URI:            "lit:session:" + sessionKey,
		ChainID:        1,
		Nonce:          nonce,
		IssuedAt:       issuedAt,
		ExpirationTime: expiration,
		Resources:      []string{recap()},
	}.String()
	sig, err := c.signer.SignMessage(ctx, []byte(msg))
	if err != nil {
		return nil, err
	}
	authSig := AuthSig{
		Sig:           hexutil.Encode(sig),
		DerivedVia:    "web3.eth.personal.sign",
		SignedMessage: msg,
		Address:       c.signer.Address().Hex(),
	}
	c.log.Debugf("session %v for %v expires %v", sessionKey, authSig.Address,
		expiration.Format(timeFormat))

	sigs := make(map[string]AuthSig, len(nodes))
	for _, node := range nodes {
		capability, err := json.Marshal(SessionCapability{
			SessionKey: sessionKey,
			ResourceAbilityRequests: []ResourceAbilityRequest{{
				Resource: DecryptionResource,
				Ability:  DecryptionAbility,
			}},
			Capabilities: []AuthSig{authSig},
			IssuedAt:     issuedAt.Format(timeFormat),
			Expiration:   expiration.Format(timeFormat),
			NodeAddress:  node,
		})
		if err != nil {
			return nil, err
		}
		sigs[node] = AuthSig{
			Sig:           hex.EncodeToString(ed25519.Sign(priv, capability)),
			DerivedVia:    "litSessionSignViaNacl",
			SignedMessage: string(capability),
			Address:       sessionKey,
			Algo:          "ed25519",
		}
	}
	return sigs, nil
}

// VerifySessionSig checks that sig is a session signature for node signed
// by the session key in sig.Address and valid at now. It returns the
// decoded capability.
func VerifySessionSig(sig AuthSig, node string, now time.Time) (SessionCapability, error) {
	var capability SessionCapability
	pub, err := hex.DecodeString(sig.Address)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return capability, fmt.Errorf("invalid session key")
	}
	s, err := hex.DecodeString(sig.Sig)
	if err != nil {
		return capability, fmt.Errorf("invalid session signature: %w", err)
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), []byte(sig.SignedMessage), s) {
		return capability, fmt.Errorf("invalid session signature")
	}
	if err := json.Unmarshal([]byte(sig.SignedMessage), &capability); err != nil {
		return capability, err
	}
	if capability.NodeAddress != node {
		return capability, fmt.Errorf("session signature is for node %q",
			capability.NodeAddress)
	}
	expiration, err := time.Parse(timeFormat, capability.Expiration)
	if err != nil {
		return capability, err
	}
	if !now.Before(expiration) {
		return capability, fmt.Errorf("session expired at %v",
			capability.Expiration)
	}
	return capability, nil
}
