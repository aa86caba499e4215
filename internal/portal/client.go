package portal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

// Client implementa domain.PortalAdapter contra el runner externo de
// automatización de navegador que ejecuta el envío real en el portal
// gubernamental. Los errores del runner se devuelven textuales, sin
// interpretarlos: la política de reintento es del llamador.
type Client struct {
	baseURL    string
	token      string
	portalName string // "SIRE" o "TRA"
	httpClient *http.Client
}

// NewClient crea un nuevo cliente del runner de portal
func NewClient(baseURL, token, portalName string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		portalName: portalName,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type submitRequest struct {
	Portal  string                `json:"portal"`
	Records []domain.SireFieldSet `json:"records"`
}

type submitResponse struct {
	ReferenceNumber  string `json:"referenceNumber"`
	ScreenshotBase64 string `json:"screenshotBase64,omitempty"`
	Error            string `json:"error,omitempty"`
}

// Submit envía los registros SIRE al runner y espera el resultado de la
// automatización. La espera está acotada por el contexto del llamador además
// del timeout propio del cliente HTTP.
func (c *Client) Submit(ctx context.Context, records []domain.SireFieldSet) (*domain.PortalResult, error) {
	body, err := json.Marshal(submitRequest{Portal: c.portalName, Records: records})
	if err != nil {
		return nil, fmt.Errorf("error al serializar registros: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submit", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error al construir request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error al invocar el runner del portal %s: %w", c.portalName, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error al leer respuesta del runner: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// El cuerpo se propaga textual: se almacena tal cual en sire_error/tra_error
		return nil, fmt.Errorf("runner del portal %s respondió %d: %s", c.portalName, resp.StatusCode, string(respBody))
	}

	var parsed submitResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("respuesta inválida del runner: %w", err)
	}

	if parsed.Error != "" {
		return nil, fmt.Errorf("%s", parsed.Error)
	}

	result := &domain.PortalResult{ReferenceNumber: parsed.ReferenceNumber}
	if parsed.ScreenshotBase64 != "" {
		screenshot, err := base64.StdEncoding.DecodeString(parsed.ScreenshotBase64)
		if err != nil {
			// La evidencia corrupta no invalida el envío confirmado
			return result, nil
		}
		result.Screenshot = screenshot
	}

	return result, nil
}
