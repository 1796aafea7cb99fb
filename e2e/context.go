package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TestContext holds per-scenario state: the last response and the aliases
// that keep people unique across scenarios sharing one server.
type TestContext struct {
	BaseURL    string
	HTTPClient *http.Client

	LastStatus int
	LastBody   []byte
	lastJSON   map[string]any

	aliases map[string]string
}

func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		aliases:    make(map[string]string),
	}
}

// Reset clears state between scenarios.
func (tc *TestContext) Reset() {
	tc.LastStatus = 0
	tc.LastBody = nil
	tc.lastJSON = nil
	tc.aliases = make(map[string]string)
}

// Alias maps a readable name from a feature file to a name unique to this
// scenario. Names only allow letters, so the suffix is letters too.
func (tc *TestContext) Alias(name string) string {
	if a, ok := tc.aliases[name]; ok {
		return a
	}
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = byte('a' + rand.IntN(26))
	}
	a := name + string(suffix)
	tc.aliases[name] = a
	return a
}

func (tc *TestContext) PathEscape(name string) string {
	return url.PathEscape(name)
}

func (tc *TestContext) GET(path string, headers map[string]string) error {
	return tc.do(http.MethodGet, path, nil, headers)
}

func (tc *TestContext) POST(path string, body any) error {
	return tc.do(http.MethodPost, path, body, nil)
}

func (tc *TestContext) PUT(path string, body any) error {
	return tc.do(http.MethodPut, path, body, nil)
}

func (tc *TestContext) do(method, path string, body any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, tc.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.LastStatus = resp.StatusCode
	tc.LastBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.lastJSON = nil
	if len(tc.LastBody) > 0 {
		var decoded map[string]any
		if err := json.Unmarshal(tc.LastBody, &decoded); err == nil {
			tc.lastJSON = decoded
		}
	}
	return nil
}

func (tc *TestContext) GetLastStatus() int { return tc.LastStatus }

// GetResponseField resolves a dotted path such as "person.current_rank" or
// "astronaut_duties.0.duty_title" in the last JSON response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	if tc.lastJSON == nil {
		return nil, fmt.Errorf("last response is not a JSON object: %s", tc.LastBody)
	}
	var cur any = tc.lastJSON
	for _, part := range strings.Split(field, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %q not found in %s", field, tc.LastBody)
			}
			cur = v
		case []any:
			var idx int
			if _, err := fmt.Sscanf(part, "%d", &idx); err != nil || idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("index %q out of range in %q", part, field)
			}
			cur = node[idx]
		default:
			return nil, fmt.Errorf("cannot descend into %q of %q", part, field)
		}
	}
	return cur, nil
}
