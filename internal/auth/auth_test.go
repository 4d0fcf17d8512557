package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// testFlow wires a Flow to an ephemeral callback port and a fake token
// endpoint. The fake browser follows the consent URL's redirect_uri
// straight back with a canned code.
func testFlow(t *testing.T, tokenHandler http.HandlerFunc, code string) *Flow {
	t.Helper()

	tokenSrv := httptest.NewServer(tokenHandler)
	t.Cleanup(tokenSrv.Close)

	f := NewFlow("cid", "csecret")
	f.addr = "127.0.0.1:0"
	f.out = io.Discard
	f.config.Endpoint.TokenURL = tokenSrv.URL

	f.openURL = func(consentURL string) error {
		u, err := url.Parse(consentURL)
		if err != nil {
			return err
		}
		go func() {
			// the callback server binds port 0, so follow whatever
			// address it actually got instead of the registered URI
			cb := "http://" + f.boundAddr() + "/?code=" + code + "&state=" + u.Query().Get("state")
			for i := 0; i < 50; i++ {
				if _, err := http.Get(cb); err == nil {
					return
				}
				time.Sleep(10 * time.Millisecond)
			}
		}()
		return nil
	}
	return f
}

func TestRunExchangesCode(t *testing.T) {
	var gotForm url.Values
	f := testFlow(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok-123","token_type":"bearer"}`)
	}, "authcode-1")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	token, err := f.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	assert.Equal(t, "authcode-1", gotForm.Get("code"))
	assert.Equal(t, "authorization_code", gotForm.Get("grant_type"))
	assert.Equal(t, "cid", gotForm.Get("client_id"))
	assert.Equal(t, scope, gotForm.Get("scope"))
}

func TestRunRejectsEmptyToken(t *testing.T) {
	f := testFlow(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"token_type":"bearer"}`)
	}, "authcode-2")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := f.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no access token")
}

func TestRunContextCancelled(t *testing.T) {
	f := NewFlow("cid", "csecret")
	f.addr = "127.0.0.1:0"
	f.out = io.Discard
	f.openURL = func(string) error { return nil }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConsentURLShape(t *testing.T) {
	f := NewFlow("cid", "csecret")
	u, err := url.Parse(f.config.AuthCodeURL(state))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(u.String(), authURL))
	q := u.Query()
	assert.Equal(t, "cid", q.Get("client_id"))
	assert.Equal(t, scope, q.Get("scope"))
	assert.Equal(t, redirectURL, q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
}

func TestEndpointAuthStyle(t *testing.T) {
	f := NewFlow("cid", "csecret")
	assert.Equal(t, oauth2.AuthStyleInParams, f.config.Endpoint.AuthStyle)
}
