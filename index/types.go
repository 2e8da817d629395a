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

package index

import (
	"encoding/json"
	"strconv"
)

// Count is a number the indexer may send either as a JSON number or as a
// string.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*c = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*c = Count(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Count(n)
	return nil
}

type PageInfo struct {
	Total Count `json:"total"`
	Page  Count `json:"page"`
	Size  Count `json:"size"`
}

type SchemaInfo struct {
	ID                string          `json:"id"`
	Mode              string          `json:"mode"`
	ChainType         string          `json:"chainType"`
	ChainID           string          `json:"chainId"`
	SchemaID          string          `json:"schemaId"`
	TransactionHash   string          `json:"transactionHash"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Revocable         bool            `json:"revocable"`
	MaxValidFor       Count           `json:"maxValidFor"`
	Hook              string          `json:"resolver"`
	Registrant        string          `json:"registrant"`
	RegisterTimestamp Count           `json:"registerTimestamp"`
	DataLocation      string          `json:"dataLocation"`
	Data              json.RawMessage `json:"data"`
}

type SchemaList struct {
	PageInfo
	Rows []SchemaInfo `json:"rows"`
}

type AttestationInfo struct {
	ID                  string          `json:"id"`
	Mode                string          `json:"mode"`
	ChainType           string          `json:"chainType"`
	ChainID             string          `json:"chainId"`
	AttestationID       string          `json:"attestationId"`
	TransactionHash     string          `json:"transactionHash"`
	IndexingValue       string          `json:"indexingValue"`
	SchemaID            string          `json:"schemaId"`
	FullSchemaID        string          `json:"fullSchemaId"`
	LinkedAttestationID string          `json:"linkedAttestation"`
	Attester            string          `json:"attester"`
	AttestTimestamp     Count           `json:"attestTimestamp"`
	ValidUntil          Count           `json:"validUntil"`
	Revoked             bool            `json:"revoked"`
	RevokeReason        string          `json:"revokeReason"`
	Recipients          []string        `json:"recipients"`
	DataLocation        string          `json:"dataLocation"`
	Data                json.RawMessage `json:"data"`
	Schema              *SchemaInfo     `json:"schema,omitempty"`
}

type AttestationList struct {
	PageInfo
	Rows []AttestationInfo `json:"rows"`
}
