package soap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/icutech/auth-gateway/internal/domain"
	"github.com/rs/zerolog/log"
)

// maxLoggedBodyBytes bounds how much of an upstream payload ends up in logs
// and error details.
const maxLoggedBodyBytes = 1000

// AuthClient is the gateway to the legacy authentication service.
type AuthClient interface {
	Login(ctx context.Context, login, password string) (*domain.LoginResult, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResult, error)
}

// Client calls the legacy SOAP authentication service over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a client for the SOAP service at url. Calls are bounded
// by timeout; 30 seconds is the recommended value for the icutech upstream.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Login authenticates the given credentials against the upstream service.
// A blank login or password fails fast without any network call.
func (c *Client) Login(ctx context.Context, login, password string) (*domain.LoginResult, error) {
	if strings.TrimSpace(login) == "" {
		return nil, &ClientError{Kind: KindInvalidArgument, Message: "login must not be blank"}
	}
	if strings.TrimSpace(password) == "" {
		return nil, &ClientError{Kind: KindInvalidArgument, Message: "password must not be blank"}
	}

	log.Info().Str("login", login).Msg("Calling SOAP Login")

	body, err := c.call(ctx, "Login", BuildLoginEnvelope(login, password))
	if err != nil {
		logCallError("Login", err)
		return nil, err
	}

	result, err := ParseLoginResponse(body)
	if err != nil {
		logCallError("Login", err)
		return nil, err
	}

	log.Info().Str("login", login).Bool("success", result.Success).Msg("SOAP Login completed")
	return result, nil
}

// Register creates a new customer through the upstream service. A blank login
// or password fails fast without any network call.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResult, error) {
	if strings.TrimSpace(req.Login) == "" {
		return nil, &ClientError{Kind: KindInvalidArgument, Message: "login must not be blank"}
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, &ClientError{Kind: KindInvalidArgument, Message: "password must not be blank"}
	}

	log.Info().Str("login", req.Login).Msg("Calling SOAP RegisterNewCustomer")

	body, err := c.call(ctx, "RegisterNewCustomer", BuildRegisterEnvelope(req))
	if err != nil {
		logCallError("RegisterNewCustomer", err)
		return nil, err
	}

	result, err := ParseRegisterResponse(body)
	if err != nil {
		logCallError("RegisterNewCustomer", err)
		return nil, err
	}

	log.Info().Str("login", req.Login).Bool("success", result.Success).Msg("SOAP RegisterNewCustomer completed")
	return result, nil
}

// call posts the envelope to the upstream and returns the raw response body.
// Transport failures are classified into timeout and network kinds; a
// non-success status becomes an upstream_rejected error carrying a truncated
// copy of the response for diagnostics.
func (c *Client) call(ctx context.Context, operation, envelope string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(envelope))
	if err != nil {
		return "", &ClientError{Kind: KindNetwork, Message: "failed to create upstream request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "text/xml; charset=utf-8")
	httpReq.Header.Set("SOAPAction", OperationNS+operation)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return "", &ClientError{
				Kind:    KindTimeout,
				Message: "timed out waiting for the authentication service",
				Err:     err,
			}
		}
		return "", &ClientError{
			Kind:    KindNetwork,
			Message: "network error while reaching the authentication service",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ClientError{Kind: KindNetwork, Message: "failed to read upstream response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ClientError{
			Kind:    KindUpstreamRejected,
			Message: fmt.Sprintf("the authentication service returned status %d", resp.StatusCode),
			Body:    truncate(string(body), maxLoggedBodyBytes),
		}
	}

	return string(body), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func logCallError(operation string, err error) {
	var ce *ClientError
	if errors.As(err, &ce) {
		log.Error().
			Err(err).
			Str("operation", operation).
			Str("kind", string(ce.Kind)).
			Str("body", truncate(ce.Body, maxLoggedBodyBytes)).
			Msg("SOAP call failed")
		return
	}
	log.Error().Err(err).Str("operation", operation).Msg("SOAP call failed")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
