package figma

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ticketsmith/internal/types"
)

type Config struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

// Client fetches design data over the Figma REST API. A nil client or an
// empty token yields empty design data rather than an error, so an
// unconfigured deployment still serves requests.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = "https://api.figma.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		token:   strings.TrimSpace(cfg.Token),
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
	}
}

// Configured reports whether the client has credentials to call the API.
func (c *Client) Configured() bool {
	return c != nil && c.token != ""
}

// GetDesignData resolves a selection reference of the form "fileKey:nodeID"
// into a node tree, the file's styles, and a best-effort screenshot. A
// missing or empty selection yields empty data, not an error.
func (c *Client) GetDesignData(ctx context.Context, selectionRef string) (types.DesignData, error) {
	var out types.DesignData
	if !c.Configured() {
		return out, fmt.Errorf("figma token not configured: %w", types.ErrDependencyUnavailable)
	}
	fileKey, nodeID := splitSelectionRef(selectionRef)
	if fileKey == "" {
		return out, &types.ValidationError{Field: "selectionRef", Reason: "missing file key"}
	}

	doc, styles, err := c.fetchNodes(ctx, fileKey, nodeID)
	if err != nil {
		return out, err
	}
	out.Document = doc
	out.Styles = styles

	// Screenshot is best-effort; a render failure degrades, never aborts.
	if nodeID != "" {
		if shot, err := c.fetchScreenshot(ctx, fileKey, nodeID); err == nil {
			out.Screenshot = shot
		}
	}
	return out, nil
}

func (c *Client) fetchNodes(ctx context.Context, fileKey, nodeID string) (*types.FrameNode, map[string]string, error) {
	endpoint := fmt.Sprintf("%s/v1/files/%s", c.baseURL, url.PathEscape(fileKey))
	if nodeID != "" {
		endpoint = fmt.Sprintf("%s/v1/files/%s/nodes?ids=%s", c.baseURL, url.PathEscape(fileKey), url.QueryEscape(nodeID))
	}
	raw, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, nil, err
	}

	if nodeID != "" {
		var resp struct {
			Nodes map[string]struct {
				Document *types.FrameNode `json:"document"`
			} `json:"nodes"`
		}
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, nil, fmt.Errorf("decode nodes response: %w", err)
		}
		for _, n := range resp.Nodes {
			return n.Document, nil, nil
		}
		return nil, nil, nil
	}

	var resp struct {
		Document *types.FrameNode `json:"document"`
		Styles   map[string]struct {
			Name string `json:"name"`
		} `json:"styles"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, nil, fmt.Errorf("decode file response: %w", err)
	}
	var styles map[string]string
	if len(resp.Styles) > 0 {
		styles = make(map[string]string, len(resp.Styles))
		for id, s := range resp.Styles {
			styles[id] = s.Name
		}
	}
	return resp.Document, styles, nil
}

func (c *Client) fetchScreenshot(ctx context.Context, fileKey, nodeID string) (*types.Screenshot, error) {
	endpoint := fmt.Sprintf("%s/v1/images/%s?ids=%s&format=png", c.baseURL, url.PathEscape(fileKey), url.QueryEscape(nodeID))
	raw, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Images map[string]string `json:"images"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode images response: %w", err)
	}
	imageURL := strings.TrimSpace(resp.Images[nodeID])
	if imageURL == "" {
		return nil, fmt.Errorf("no rendered image for node %s", nodeID)
	}
	body, err := c.get(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	return &types.Screenshot{Bytes: body, Format: "png"}, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Figma-Token", c.token)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("figma request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("figma request %s: status %d", endpoint, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func splitSelectionRef(ref string) (fileKey, nodeID string) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ""
	}
	if i := strings.IndexByte(ref, ':'); i >= 0 {
		return strings.TrimSpace(ref[:i]), strings.TrimSpace(ref[i+1:])
	}
	return ref, ""
}

// DecodeScreenshot accepts a data-URI or bare base64 payload from the plugin
// side and converts it into a Screenshot.
func DecodeScreenshot(payload string) (*types.Screenshot, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, nil
	}
	format := "png"
	if strings.HasPrefix(payload, "data:") {
		i := strings.IndexByte(payload, ',')
		if i < 0 {
			return nil, fmt.Errorf("malformed data uri")
		}
		header := payload[:i]
		payload = payload[i+1:]
		if strings.Contains(header, "image/jpeg") {
			format = "jpeg"
		}
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return &types.Screenshot{Bytes: raw, Format: format}, nil
}
