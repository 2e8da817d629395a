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

// Package index queries the Sign Protocol indexing service and its off-chain
// storage gateway.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/DaevMithran/SignxLit/log"
	"github.com/DaevMithran/SignxLit/sp"
)

type Env string

const (
	Mainnet Env = "mainnet"
	Testnet Env = "testnet"
)

var hosts = map[Env]string{
	Mainnet: "https://mainnet-rpc.sign.global/api",
	Testnet: "https://testnet-rpc.sign.global/api",
}

// Host returns the base URL of env. Any env other than Testnet is
// Mainnet.
func Host(env Env) string {
	if env == Testnet {
		return hosts[Testnet]
	}
	return hosts[Mainnet]
}

// DefaultSchemaPageSize is used by QuerySchemaList when Size is zero.
const DefaultSchemaPageSize = 100

var idRegexp = regexp.MustCompile(
	`^(onchain_evm_[0-9]+_0x[0-9a-fA-F]+|0x[0-9a-fA-F]+|SP[AS]_[0-9A-Za-z_-]+)$`)

// ValidID reports whether id is a schema or attestation id accepted by the
// indexer. The full indexer form is onchain_evm_<chainID>_<hex id>.
func ValidID(id string) bool { return idRegexp.MatchString(id) }

// HTTPError is returned for any non 2xx response.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %v: %v", e.URL, e.Status)
}

// Client queries the indexer at URL.
type Client struct {
	URL  string
	HTTP *http.Client
	log  log.Log
}

func NewClient(env Env) *Client {
	return &Client{
		URL:  Host(env),
		HTTP: &http.Client{Timeout: 15 * time.Second},
		log:  log.New("index"),
	}
}

// get decodes the data field of the JSON envelope returned for path into
// result.
func (c *Client) get(ctx context.Context, path string, query url.Values,
	result interface{}) error {
	u := c.URL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	c.log.Debugf("GET %v", u)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &HTTPError{StatusCode: res.StatusCode, Status: res.Status, URL: u}
	}
	envelope := struct {
		Data interface{} `json:"data"`
	}{Data: result}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("GET %v: %w", u, err)
	}
	return nil
}

// values builds a query omitting empty values.
func values(kv ...string) url.Values {
	q := make(url.Values)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			q.Set(kv[i], kv[i+1])
		}
	}
	return q
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// page formats p, which is sent whenever it is set, including page 0.
func page(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

type SchemaListQuery struct {
	ID         string
	Registrant string
	Mode       string
	Page       *int
	Size       int
}

// QuerySchemaList returns nil without issuing a request if q.ID is set
// and invalid.
func (c *Client) QuerySchemaList(ctx context.Context,
	q SchemaListQuery) (*SchemaList, error) {
	if q.ID != "" && !ValidID(q.ID) {
		return nil, nil
	}
	size := q.Size
	if size == 0 {
		size = DefaultSchemaPageSize
	}
	var list SchemaList
	if err := c.get(ctx, "/index/schemas", values(
		"id", q.ID,
		"registrant", q.Registrant,
		"mode", q.Mode,
		"page", page(q.Page),
		"size", itoa(size),
	), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// QuerySchema returns nil without issuing a request if id is invalid.
func (c *Client) QuerySchema(ctx context.Context, id string) (*SchemaInfo, error) {
	if !ValidID(id) {
		return nil, nil
	}
	var info *SchemaInfo
	if err := c.get(ctx, "/index/schemas/"+id, nil, &info); err != nil {
		return nil, err
	}
	return info, nil
}

type AttestationListQuery struct {
	ID            string
	SchemaID      string
	Attester      string
	Page          *int
	Mode          string
	IndexingValue string
}

// QueryAttestationList returns nil without issuing a request if q.ID is set
// and invalid.
func (c *Client) QueryAttestationList(ctx context.Context,
	q AttestationListQuery) (*AttestationList, error) {
	if q.ID != "" && !ValidID(q.ID) {
		return nil, nil
	}
	var list AttestationList
	if err := c.get(ctx, "/index/attestations", values(
		"id", q.ID,
		"schemaId", q.SchemaID,
		"attester", q.Attester,
		"page", page(q.Page),
		"mode", q.Mode,
		"indexingValue", q.IndexingValue,
	), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// QueryAttestation returns nil without issuing a request if id is invalid.
func (c *Client) QueryAttestation(ctx context.Context,
	id string) (*AttestationInfo, error) {
	if !ValidID(id) {
		return nil, nil
	}
	var info *AttestationInfo
	if err := c.get(ctx, "/index/attestations/"+id, nil, &info); err != nil {
		return nil, err
	}
	return info, nil
}

// StorageData fetches the document stored under dataID on Arweave or IPFS
// and decodes it into result.
func (c *Client) StorageData(ctx context.Context, dataID string,
	loc sp.DataLocation, result interface{}) error {
	if !loc.IsStorage() {
		return fmt.Errorf("no storage for data location %v", loc)
	}
	return c.get(ctx, "/sp/storage-data",
		values("dataId", dataID, "dataLocation", loc.String()), result)
}
