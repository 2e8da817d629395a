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

package codec

import (
	"fmt"

	"github.com/DaevMithran/SignxLit/sp"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	stringType  = mustType("string")
	addressType = mustType("address")

	stringArgs    = abi.Arguments{{Name: "data", Type: stringType}}
	addressArgs   = abi.Arguments{{Name: "data", Type: addressType}}
	encryptedArgs = abi.Arguments{
		{Name: "data", Type: stringType},
		{Name: "hash", Type: stringType},
	}
)

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// EncodeString returns s encoded as a single ABI string. It is used for
// payloads that are identifiers into off-chain storage.
func EncodeString(s string) ([]byte, error) {
	return stringArgs.Pack(s)
}

func DecodeString(data []byte) (string, error) {
	values, err := stringArgs.Unpack(data)
	if err != nil {
		return "", err
	}
	return values[0].(string), nil
}

// EncodeEncrypted returns the ABI encoding of a gated payload: the
// ciphertext and the hash of the plaintext as two strings.
func EncodeEncrypted(ciphertext, hash string) ([]byte, error) {
	return encryptedArgs.Pack(ciphertext, hash)
}

func DecodeEncrypted(data []byte) (ciphertext, hash string, err error) {
	values, err := encryptedArgs.Unpack(data)
	if err != nil {
		return "", "", fmt.Errorf("encrypted payload: %w", err)
	}
	return values[0].(string), values[1].(string), nil
}

// EncodeRecipients encodes each recipient as an ABI string, or as an ABI
// address when enc is sp.RecipientAddress and the recipient is a valid hex
// address.
func EncodeRecipients(recipients []string, enc sp.RecipientEncoding) ([][]byte, error) {
	encoded := make([][]byte, len(recipients))
	for i, r := range recipients {
		var err error
		if enc == sp.RecipientAddress && common.IsHexAddress(r) {
			encoded[i], err = addressArgs.Pack(common.HexToAddress(r))
		} else {
			encoded[i], err = stringArgs.Pack(r)
		}
		if err != nil {
			return nil, fmt.Errorf("recipients[%v]: %w", i, err)
		}
	}
	return encoded, nil
}

// DecodeRecipients decodes each recipient as an ABI string, falling back to
// an ABI address. Addresses are returned in checksummed hex.
func DecodeRecipients(encoded [][]byte) ([]string, error) {
	recipients := make([]string, len(encoded))
	for i, data := range encoded {
		if s, err := DecodeString(data); err == nil {
			recipients[i] = s
			continue
		}
		values, err := addressArgs.Unpack(data)
		if err != nil {
			return nil, fmt.Errorf("recipients[%v]: %w", i, err)
		}
		recipients[i] = values[0].(common.Address).Hex()
	}
	return recipients, nil
}
