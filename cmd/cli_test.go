package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/utilityapi-cli/internal/domain"
	"github.com/bnema/utilityapi-cli/internal/version"
)

const (
	accountJSON = `{"uid":"42","utility":"DEMO","auth_type":"owner","auth":"Jane Doe","latest":{"type":"updated"}}`
	serviceJSON = `{"uid":"7","account_uid":"42","utility":"DEMO","bill_count":1,"latest":{"type":"updated"}}`
	billsJSON   = `[{"service_uid":"7","bill_total":42.5,"bill_bill_days":30,"bill_total_kWh":512,"bill_start_date":"2016-01-01T00:00:00Z","bill_end_date":"2016-01-31T00:00:00Z","bill_breakdown":{"generation":30,"delivery":12.5}}]`
)

type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	tokens   []string
	bodies   map[string]string
	requests atomic.Int32
}

func newFakeAPI(t *testing.T, register func(mux *http.ServeMux)) *fakeAPI {
	t.Helper()

	api := &fakeAPI{bodies: map[string]string{}}
	mux := http.NewServeMux()
	register(mux)

	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.requests.Add(1)
		body, _ := io.ReadAll(r.Body)
		api.mu.Lock()
		api.tokens = append(api.tokens, r.Header.Get("Authorization"))
		api.bodies[r.Method+" "+r.URL.Path] = string(body)
		api.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(api.Close)
	return api
}

func (a *fakeAPI) BaseURL() string {
	return a.URL + "/api"
}

func (a *fakeAPI) body(key string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bodies[key]
}

func (a *fakeAPI) lastToken() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.tokens) == 0 {
		return ""
	}
	return a.tokens[len(a.tokens)-1]
}

func respond(payload string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, payload)
	}
}

func executeCLI(t *testing.T, home string, env map[string]string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	for _, key := range []string{"UAPI_TOKEN", "UAPI_BASE_URL", "UAPI_PROFILE", "UAPI_PROFILES_PATH", "UAPI_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	t.Setenv("UAPI_SECRETS_BACKEND", "file")
	t.Setenv("UAPI_POLL_DELAY", "1ms")
	for key, value := range env {
		t.Setenv(key, value)
	}

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func tokenEnv(api *fakeAPI) map[string]string {
	return map[string]string{"UAPI_TOKEN": "env-token", "UAPI_BASE_URL": api.BaseURL()}
}

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), nil, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestProfileSetStoresTokenOutsideProfilesFile(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, nil,
		"profile", "set",
		"--base-url", "https://sandbox.example.com/api",
		"--token", "profile-token",
		"--poll-delay", "2s",
	)
	require.NoError(t, err)

	profiles, err := os.ReadFile(filepath.Join(home, ".config", "uapi", "profiles.toml"))
	require.NoError(t, err)
	assert.NotContains(t, string(profiles), "profile-token")

	token, err := os.ReadFile(filepath.Join(home, ".config", "uapi", "secrets", "utilityapi", "default", "token"))
	require.NoError(t, err)
	assert.Equal(t, "profile-token", string(token))

	stdout, _, err := executeCLI(t, home, nil, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "profiles: 1")
	assert.Contains(t, stdout, "base url: https://sandbox.example.com/api")
	assert.Contains(t, stdout, "poll delay: 2s")
}

func TestProfileSetRequiresTokenForNewProfile(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), nil, "profile", "set", "--name", "work")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access token is required")
}

func TestProfileRemoveDeletesProfileAndToken(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, nil, "profile", "set", "--name", "work", "--token", "tok")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, nil, "profile", "remove", "--name", "work")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(home, ".config", "uapi", "secrets", "utilityapi", "work", "token"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	stdout, _, err := executeCLI(t, home, nil, "profile", "list", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, stdout)
}

func TestCommandsWithoutCredentialsFail(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), nil, "account", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoCredentials)
}

func TestAccountListUsesEnvironmentToken(t *testing.T) {
	api := newFakeAPI(t, func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/accounts", respond(`[`+accountJSON+`]`))
	})

	stdout, _, err := executeCLI(t, t.TempDir(), tokenEnv(api), "account", "list")
	require.NoError(t, err)
	assert.Equal(t, "Token env-token", api.lastToken())
	assert.Contains(t, stdout, "accounts: 1")
	assert.Contains(t, stdout, "Account 42 (DEMO)")
	assert.Contains(t, stdout, "status: updated")
}

func TestAccountGetJSONOutput(t *testing.T) {
	api := newFakeAPI(t, func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/accounts/{uid}", respond(accountJSON))
	})

	stdout, _, err := executeCLI(t, t.TempDir(), tokenEnv(api), "account", "get", "42", "--json")
	require.NoError(t, err)

	var account domain.Account
	require.NoError(t, json.Unmarshal([]byte(stdout), &account))
	assert.Equal(t, domain.AccountUID("42"), account.UID)
	assert.Equal(t, domain.LogUpdated, account.Latest.Type)
}

func TestProfileTokenIsUsedWhenNoEnvironmentToken(t *testing.T) {
	api := newFakeAPI(t, func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/accounts/{uid}", respond(accountJSON))
	})
	home := t.TempDir()

	_, _, err := executeCLI(t, home, nil, "profile", "set", "--name", "sandbox", "--base-url", api.BaseURL(), "--token", "profile-token")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, nil, "--profile", "sandbox", "account", "get", "42")
	require.NoError(t, err)
	assert.Equal(t, "Token profile-token", api.lastToken())

	_, _, err = executeCLI(t, home, map[string]string{"UAPI_TOKEN": "env-token"}, "--profile", "sandbox", "account", "get", "42")
	require.NoError(t, err)
	assert.Equal(t, "Token env-token", api.lastToken())
}

func TestAccountShowFetchesAccountAndServices(t *testing.T) {
	api := newFakeAPI(t, func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/accounts/{uid}", respond(accountJSON))
		mux.HandleFunc("GET /api/services", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "42", r.URL.Query().Get("accounts"))
			respond(`[` + serviceJSON + `]`)(w, r)
		})
	})

	stdout, _, err := executeCLI(t, t.TempDir(), tokenEnv(api), "account", "show", "42")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Account 42 (DEMO)")
	assert.Contains(t, stdout, "Service 7 (account 42)")
	assert.EqualValues(t, 2, api.requests.Load())
}

func TestAccountGetMapsNotFound(t *testing.T) {
	api := newFakeAPI(t, func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/accounts/{uid}", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		})
	})

	_, _, err := executeCLI(t, t.TempDir(), tokenEnv(api), "account", "get", "404")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, domain.StatusCode(err))
}

func TestAccountAddRejectsUnknownAuthType(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), nil, "account", "add", "--utility", "DEMO", "--auth-type", "cousin", "--real-name", "Jane")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be owner or 3rdparty")
}

func TestAccountAddSendsOptions(t *testing.T) {
	api := newFakeAPI(t, func(mux *http.ServeMux) {
		mux.HandleFunc("POST /api/accounts/add", respond(accountJSON))
	})

	_, _, err := executeCLI(t, t.TempDir(), tokenEnv(api),
		"account", "add", "--utility", "DEMO", "--auth-type", "owner", "--real-name", "Jane Doe",
	)
	require.NoError(t, err)
	assert.JSONEq(t, `{"utility":"DEMO","auth_type":"owner","real_name":"Jane Doe"}`, api.body("POST /api/accounts/add"))
}

func TestAccountDeleteConfirmsWithCode(t *testing.T) {
	api := newFakeAPI(t, func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/accounts/{uid}/delete", respond(`{"code":123}`))
		mux.HandleFunc("POST /api/accounts/{uid}/delete", respond(`{"success":true,"account_uid":"42"}`))
	})

	stdout, _, err := executeCLI(t, t.TempDir(), tokenEnv(api), "account", "delete", "42")
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"123"}`, api.body("POST /api/accounts/42/delete"))
	assert.Contains(t, stdout, "account 42 deleted")
}

func TestServiceModifyActivatesAndUnwrapsResponse(t *testing.T) {
	api := newFakeAPI(t, func(mux *http.ServeMux) {
		mux.HandleFunc("POST /api/services/{uid}/modify", respond(`{"service":`+serviceJSON+`}`))
	})

	stdout, _, err := executeCLI(t, t.TempDir(), tokenEnv(api), "service", "modify", "7", "--active-until", "now", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"active_until":"now"}`, api.body("POST /api/services/7/modify"))

	var service domain.Service
	require.NoError(t, json.Unmarshal([]byte(stdout), &service))
	assert.Equal(t, domain.ServiceUID("7"), service.UID)
}

func TestServiceBillsRendersBreakdown(t *testing.T) {
	api := newFakeAPI(t, func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/services/{uid}/bills", respond(billsJSON))
	})

	stdout, _, err := executeCLI(t, t.TempDir(), tokenEnv(api), "service", "bills", "7")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bills: 1")
	assert.Contains(t, stdout, "$42.50")
	assert.Contains(t, stdout, "generation: $30.00")
}

func TestServiceBillsArchiveWritesFile(t *testing.T) {
	api := newFakeAPI(t, func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/services/{uid}/bills.zip", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/zip")
			_, _ = w.Write([]byte("PK\x03\x04zip"))
		})
	})
	out := filepath.Join(t.TempDir(), "bills.zip")

	_, stderr, err := executeCLI(t, t.TempDir(), tokenEnv(api), "service", "bills-archive", "7", "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "PK\x03\x04zip", string(data))
	assert.Contains(t, stderr, "wrote 7 bytes")
}

func TestServiceResetConfirmsWithCode(t *testing.T) {
	api := newFakeAPI(t, func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/services/{uid}/reset", respond(`{"code":"abc"}`))
		mux.HandleFunc("POST /api/services/{uid}/reset", respond(`{"success":true,"service_uid":"7"}`))
	})

	stdout, _, err := executeCLI(t, t.TempDir(), tokenEnv(api), "service", "reset", "7")
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"abc"}`, api.body("POST /api/services/7/reset"))
	assert.Contains(t, stdout, "service 7 reset")
}

func provisioningAPI(t *testing.T, billsDelay time.Duration) *fakeAPI {
	t.Helper()

	var accountPolls, servicePolls atomic.Int32
	return newFakeAPI(t, func(mux *http.ServeMux) {
		mux.HandleFunc("POST /api/accounts/add", respond(`{"uid":"42","utility":"DEMO","latest":{"type":"pending"}}`))
		mux.HandleFunc("GET /api/accounts/{uid}", func(w http.ResponseWriter, r *http.Request) {
			if accountPolls.Add(1) < 2 {
				respond(`{"uid":"42","utility":"DEMO","latest":{"type":"pending"}}`)(w, r)
				return
			}
			respond(accountJSON)(w, r)
		})
		mux.HandleFunc("GET /api/services", respond(`[{"uid":"7","account_uid":"42","latest":{"type":"updated"}}]`))
		mux.HandleFunc("POST /api/services/{uid}/modify", respond(`{"service":{"uid":"7","account_uid":"42","latest":{"type":"pending"}}}`))
		mux.HandleFunc("GET /api/services/{uid}", func(w http.ResponseWriter, r *http.Request) {
			if servicePolls.Add(1) < 2 {
				respond(`{"uid":"7","account_uid":"42","latest":{"type":"pending"}}`)(w, r)
				return
			}
			respond(serviceJSON)(w, r)
		})
		mux.HandleFunc("GET /api/services/{uid}/bills", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(billsDelay)
			respond(billsJSON)(w, r)
		})
	})
}

func TestProvisionRunsWorkflowWithSpinner(t *testing.T) {
	api := provisioningAPI(t, 200*time.Millisecond)

	stdout, stderr, err := executeCLI(t, t.TempDir(), tokenEnv(api),
		"provision", "--utility", "DEMO", "--auth-type", "owner", "--real-name", "Jane Doe",
		"--active-until", "2017-01-01T00:00:00Z",
	)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Provisioning account...")
	assert.Contains(t, stdout, "Provisioned account 42")
	assert.Contains(t, stdout, "Service 7 (account 42)")
	assert.Contains(t, stdout, "bills: 1")
	assert.JSONEq(t, `{"active_until":"2017-01-01T00:00:00Z"}`, api.body("POST /api/services/7/modify"))
}

func TestProvisionJSONOutput(t *testing.T) {
	api := provisioningAPI(t, 0)

	stdout, stderr, err := executeCLI(t, t.TempDir(), tokenEnv(api),
		"provision", "--utility", "DEMO", "--auth-type", "owner", "--real-name", "Jane Doe", "--json",
	)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "Provisioning account...")

	var result struct {
		Account domain.Account `json:"account"`
		Service domain.Service `json:"service"`
		Bills   []domain.Bill  `json:"bills"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, domain.AccountUID("42"), result.Account.UID)
	assert.Equal(t, domain.LogUpdated, result.Service.Latest.Type)
	require.Len(t, result.Bills, 1)
	assert.Equal(t, 42.5, result.Bills[0].Total)
}

func TestProvisionFailsWhenAccountErrors(t *testing.T) {
	api := newFakeAPI(t, func(mux *http.ServeMux) {
		mux.HandleFunc("POST /api/accounts/add", respond(`{"uid":"42","latest":{"type":"pending"}}`))
		mux.HandleFunc("GET /api/accounts/{uid}", respond(`{"uid":"42","latest":{"type":"error","message":"bad login"}}`))
	})

	_, _, err := executeCLI(t, t.TempDir(), tokenEnv(api),
		"provision", "--utility", "DEMO", "--auth-type", "owner", "--real-name", "Jane Doe", "--json",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnexpectedState)
}

func TestMetricsFlagDumpsRequestCounters(t *testing.T) {
	api := newFakeAPI(t, func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/accounts", respond(`[]`))
	})

	_, stderr, err := executeCLI(t, t.TempDir(), tokenEnv(api), "account", "list", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, stderr, `utilityapi_requests_total{code="200",operation="accounts.list"} 1`)
	assert.Contains(t, stderr, "utilityapi_request_duration_seconds")
}
