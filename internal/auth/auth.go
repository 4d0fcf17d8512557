package auth

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/cli/browser"
	"golang.org/x/oauth2"
)

const (
	authURL  = "https://ticktick.com/oauth/authorize"
	tokenURL = "https://ticktick.com/oauth/token"
	scope    = "tasks:read tasks:write"
	state    = "ticktick-access-oauth"

	// The redirect URI must exactly match the one registered in the
	// TickTick developer console.
	redirectURL = "http://localhost:8080"
	listenAddr  = ":8080"
)

// Flow runs the OAuth 2.0 authorization code grant against TickTick.
type Flow struct {
	config  *oauth2.Config
	openURL func(url string) error
	addr    string
	bound   string
	out     io.Writer
}

// boundAddr reports the address the callback server actually bound.
// Only meaningful once Run has started listening.
func (f *Flow) boundAddr() string {
	return f.bound
}

// NewFlow returns a Flow configured with the given OAuth client
// credentials.
func NewFlow(clientID, clientSecret string) *Flow {
	return &Flow{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{scope},
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		openURL: browser.OpenURL,
		addr:    listenAddr,
		out:     os.Stderr,
	}
}

// Run performs the full flow and returns the access token. It blocks
// until the browser redirect is captured, the context is cancelled, or
// the callback server fails.
func (f *Flow) Run(ctx context.Context) (string, error) {
	ln, err := net.Listen("tcp", f.addr)
	if err != nil {
		return "", fmt.Errorf("failed to start callback server on %s: %w", f.addr, err)
	}
	f.bound = ln.Addr().String()

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		code := q.Get("code")
		if code == "" {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, "<h1>Authentication Failed</h1><p>No authorization code in the request. Please try again.</p>")
			errCh <- fmt.Errorf("authorization redirect carried no code")
			return
		}
		if got := q.Get("state"); got != state {
			w.WriteHeader(http.StatusBadRequest)
			errCh <- fmt.Errorf("authorization redirect carried unexpected state %q", got)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body style='font-family: sans-serif; text-align: center;'>"+
			"<h1>Authentication Successful!</h1>"+
			"<p>You can close this browser window and return to the terminal.</p>"+
			"</body></html>")
		codeCh <- code
	})

	srv := &http.Server{Handler: mux}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	consentURL := f.config.AuthCodeURL(state)
	fmt.Fprintf(f.out, "Opening your browser for authorization.\nIf it does not open, visit:\n  %s\n", consentURL)
	if err := f.openURL(consentURL); err != nil {
		fmt.Fprintf(f.out, "Could not open browser: %v\n", err)
	}

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	}

	// TickTick requires the scope parameter on the token request as well.
	token, err := f.config.Exchange(ctx, code, oauth2.SetAuthURLParam("scope", scope))
	if err != nil {
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response carried no access token")
	}
	return token.AccessToken, nil
}
