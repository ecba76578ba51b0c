package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const serviceAccountType = "service_account"

// Auth builds an authenticated HTTP client from a credentials file. Service
// account keys are used directly; OAuth client secrets go through the
// browser consent flow once and cache the token on disk.
type Auth struct {
	jwt       []byte
	email     string
	config    *oauth2.Config
	client    *http.Client
	tokenPath string
	log       *zap.Logger
}

func NewAuth(credentialsPath, tokenPath, redirectURL string, log *zap.Logger) (*Auth, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file %s: %w", credentialsPath, err)
	}

	var kind struct {
		Type        string `json:"type"`
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(b, &kind); err != nil {
		return nil, fmt.Errorf("unable to parse credentials file %s: %w", credentialsPath, err)
	}

	a := &Auth{tokenPath: tokenPath, log: log}

	if kind.Type == serviceAccountType {
		if _, err := google.JWTConfigFromJSON(b, sheets.SpreadsheetsScope); err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		a.jwt = b
		a.email = kind.ClientEmail
		return a, nil
	}

	config, err := google.ConfigFromJSON(b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}
	config.RedirectURL = redirectURL
	a.config = config

	return a, nil
}

// ServiceAccountEmail is the address the spreadsheet must be shared with.
// It is empty for OAuth client credentials.
func (a *Auth) ServiceAccountEmail() string {
	return a.email
}

func (a *Auth) Client(ctx context.Context) (*http.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	if a.jwt != nil {
		cfg, err := google.JWTConfigFromJSON(a.jwt, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		a.client = cfg.Client(ctx)
		return a.client, nil
	}

	tok, err := a.tokenFromFile()
	if err != nil {
		a.log.Debug("no usable cached token", zap.Error(err))
		tok, err = a.tokenFromWeb(ctx)
		if err != nil {
			return nil, err
		}
		if err := a.saveToken(tok); err != nil {
			a.log.Warn("unable to cache oauth token", zap.String("path", a.tokenPath), zap.Error(err))
		}
	}

	a.client = a.config.Client(ctx, tok)
	return a.client, nil
}

func (a *Auth) SheetsService(ctx context.Context) (*sheets.Service, error) {
	client, err := a.Client(ctx)
	if err != nil {
		return nil, err
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Sheets client: %w", err)
	}

	return srv, nil
}

func (a *Auth) tokenFromWeb(ctx context.Context) (*oauth2.Token, error) {
	redirect, err := url.Parse(a.config.RedirectURL)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth redirect url %q: %w", a.config.RedirectURL, err)
	}

	path := redirect.Path
	if path == "" {
		path = "/"
	}

	state := uuid.NewString()
	codeChan := make(chan string, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "no authorization code received", http.StatusBadRequest)
			return
		}

		fmt.Fprint(w, `<html>
<head><title>Habit Tracker</title></head>
<body>
<h1>Spreadsheet access granted ✅</h1>
<p>Head back to the terminal to log today's habits.</p>
</body>
</html>`)

		select {
		case codeChan <- code:
		default:
		}
	})

	ln, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return nil, fmt.Errorf("unable to listen for oauth callback on %s: %w", redirect.Host, err)
	}
	server := &http.Server{Handler: mux}

	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("oauth callback server", zap.Error(err))
		}
	}()

	authURL := a.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Println("Opening a browser to authorize access to your habit spreadsheet...")
	fmt.Printf("If nothing opens, visit:\n%s\n", authURL)
	if err := openBrowser(authURL); err != nil {
		a.log.Debug("failed to open browser", zap.Error(err))
	}

	fmt.Println("Waiting for the OAuth callback...")
	var authCode string
	select {
	case authCode = <-codeChan:
	case <-ctx.Done():
		server.Close()
		return nil, ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	tok, err := a.config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}

	return tok, nil
}

// tokenFromFile loads the cached token. A token without a refresh token
// cannot outlive its access token, so it is treated as missing.
func (a *Auth) tokenFromFile() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.tokenPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read cached token: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("unable to parse cached token %s: %w", a.tokenPath, err)
	}
	if tok.RefreshToken == "" && !tok.Valid() {
		return nil, errors.New("cached token expired and cannot be refreshed")
	}
	a.log.Debug("using cached oauth token", zap.String("path", a.tokenPath), zap.Time("expiry", tok.Expiry))
	return &tok, nil
}

func (a *Auth) saveToken(token *oauth2.Token) error {
	fmt.Printf("Token cached at %s\n", a.tokenPath)
	f, err := os.OpenFile(a.tokenPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

func openBrowser(target string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("xdg-open", target).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	case "darwin":
		return exec.Command("open", target).Start()
	default:
		return fmt.Errorf("unsupported platform")
	}
}
