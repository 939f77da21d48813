package main

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"strings"
)

const defaultBaseURL = "https://tokencount.eordano.com/"

// sharePayload is the URL fragment the web app pre-fills from. The model
// is omitted for the default so old links keep working.
type sharePayload struct {
	A string `json:"a"`
	B string `json:"b"`
	M string `json:"m,omitempty"`
	T struct {
		A int `json:"a"`
		B int `json:"b"`
	} `json:"t"`
}

// buildShareURL encodes both texts, the model, and their counts into a
// base64url query payload against the share base URL. The base can be
// overridden with TOKEN_COUNT_URL.
func buildShareURL(textA, textB, model string, countA, countB int) string {
	p := sharePayload{A: textA, B: textB}
	if model != "claude" {
		p.M = model
	}
	p.T.A = countA
	p.T.B = countB

	raw, _ := json.Marshal(p)
	encoded := base64.RawURLEncoding.EncodeToString(raw)

	base := os.Getenv("TOKEN_COUNT_URL")
	if base == "" {
		base = defaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/?b=" + encoded
}
