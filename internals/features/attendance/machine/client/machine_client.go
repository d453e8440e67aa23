// file: internals/features/attendance/machine/client/machine_client.go
package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/attendance/machine/dto"
)

// MachineAPI adalah kontrak transport ke API mesin absensi. Dipisah interface
// supaya service bisa dites dengan halaman palsu tanpa HTTP.
type MachineAPI interface {
	FetchPunchPage(start, end time.Time, page, pageSize int) ([]dto.MachinePunchDTO, error)
	FetchEmployeePage(page, pageSize int) ([]dto.MachineEmployeeDTO, error)
}

// Client implementasi MachineAPI di atas fasthttp. Token di-cache dan
// di-refresh transparan saat kadaluarsa.
type Client struct {
	baseURL  string
	username string
	password string
	http     *fasthttp.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func New(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		http: &fasthttp.Client{
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    10 * time.Second,
			MaxConnsPerHost: 4,
		},
	}
}

/* ===================== AUTH ===================== */

func (c *Client) ensureToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// refresh sedikit lebih awal dari expiry biar tidak kena 401 di tengah pull
	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-constants.MachineTokenSkew)) {
		return c.token, nil
	}

	body, err := sonic.Marshal(dto.MachineAuthRequest{
		Username: c.username,
		Password: c.password,
	})
	if err != nil {
		return "", err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/api-token-auth/")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := c.http.DoTimeout(req, resp, 30*time.Second); err != nil {
		return "", fmt.Errorf("auth mesin gagal: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return "", fmt.Errorf("auth mesin ditolak (status %d)", resp.StatusCode())
	}

	var ar dto.MachineAuthResponse
	if err := sonic.Unmarshal(resp.Body(), &ar); err != nil {
		return "", fmt.Errorf("auth mesin: respons tidak valid: %w", err)
	}
	if ar.Token == "" {
		return "", fmt.Errorf("auth mesin: token kosong")
	}

	expires := ar.ExpiresIn
	if expires <= 0 {
		expires = 3600
	}
	c.token = ar.Token
	c.tokenExpiry = time.Now().Add(time.Duration(expires) * time.Second)
	return c.token, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

/* ===================== GET JSON ===================== */

func (c *Client) getJSON(uri string, out any) error {
	tok, err := c.ensureToken()
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Token "+tok)
	req.Header.Set("Accept", "application/json")

	if err := c.http.DoTimeout(req, resp, 30*time.Second); err != nil {
		return fmt.Errorf("request mesin gagal: %w", err)
	}

	// Token keburu dicabut server → paksa re-auth sekali lalu ulangi.
	if resp.StatusCode() == fasthttp.StatusUnauthorized {
		c.invalidateToken()
		tok, err = c.ensureToken()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Token "+tok)
		resp.Reset()
		if err := c.http.DoTimeout(req, resp, 30*time.Second); err != nil {
			return fmt.Errorf("request mesin gagal: %w", err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return fmt.Errorf("mesin membalas status %d", resp.StatusCode())
	}
	return sonic.Unmarshal(resp.Body(), out)
}

/* ===================== ENDPOINTS ===================== */

const machineTimeLayout = "2006-01-02 15:04:05"

// FetchPunchPage ambil satu halaman transaksi untuk window [start, end).
// Payload asli tiap record disimpan di field Raw untuk raw storage.
func (c *Client) FetchPunchPage(start, end time.Time, page, pageSize int) ([]dto.MachinePunchDTO, error) {
	uri := fmt.Sprintf("%s/iclock/api/transactions/?start_time=%s&end_time=%s&page=%d&page_size=%d",
		c.baseURL,
		url.QueryEscape(start.Format(machineTimeLayout)),
		url.QueryEscape(end.Format(machineTimeLayout)),
		page, pageSize,
	)

	var body struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := c.getJSON(uri, &body); err != nil {
		return nil, err
	}

	out := make([]dto.MachinePunchDTO, 0, len(body.Data))
	for _, raw := range body.Data {
		var d dto.MachinePunchDTO
		if err := sonic.Unmarshal(raw, &d); err != nil {
			// satu record rusak tidak boleh menggagalkan halaman
			continue
		}
		d.Raw = json.RawMessage(raw)
		out = append(out, d)
	}
	return out, nil
}

func (c *Client) FetchEmployeePage(page, pageSize int) ([]dto.MachineEmployeeDTO, error) {
	uri := fmt.Sprintf("%s/personnel/api/employees/?page=%d&page_size=%d",
		c.baseURL, page, pageSize)

	var body dto.MachineEmployeePage
	if err := c.getJSON(uri, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}
