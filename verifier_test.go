package stratops

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratops/stratops/config"
)

const testDeploymentABI = `[{"type":"constructor","inputs":[
	{"name":"_manager","type":"address"},
	{"name":"_windowSeconds","type":"uint256"}
]}]`

func writeDeployment(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "solcInputs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "solcInputs", "abc123.json"), []byte(`{"language":"Solidity"}`), 0o600))

	metadata := `{"compiler":{"version":"0.7.3+commit.9bfce1f6"},"settings":{"compilationTarget":{"contracts/timelocks/YakTimelockForDexStrategyV3.sol":"YakTimelockForDexStrategyV3"}}}`
	deployment := map[string]any{
		"address":       testTimelock.Hex(),
		"args":          []any{testManager.Hex(), "28800"},
		"abi":           json.RawMessage(testDeploymentABI),
		"solcInputHash": "abc123",
		"metadata":      metadata,
	}
	raw, err := json.Marshal(deployment)
	require.NoError(t, err)

	path := filepath.Join(dir, "YakTimelockForDexStrategyV3.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	return path
}

type fakeExplorer struct {
	mu       sync.Mutex
	form     map[string]string
	submit   string
	statuses []string
	polls    int
}

func (f *fakeExplorer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodPost {
		_ = r.ParseForm()
		f.form = map[string]string{}
		for k := range r.PostForm {
			f.form[k] = r.PostForm.Get(k)
		}
		status := "1"
		if f.submit != "guid-1" {
			status = "0"
		}
		_ = json.NewEncoder(w).Encode(explorerResponse{Status: status, Message: "OK", Result: f.submit})

		return
	}

	result := f.statuses[min(f.polls, len(f.statuses)-1)]
	f.polls++
	_ = json.NewEncoder(w).Encode(explorerResponse{Status: "1", Result: result})
}

func Test_ContractVerifier_Verify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		submit    string
		statuses  []string
		wantErr   string
		wantPolls int
	}{
		{
			name:      "verified after pending",
			submit:    "guid-1",
			statuses:  []string{verifyStatusPending, verifyStatusVerified},
			wantPolls: 2,
		},
		{
			name:   "already verified on submit",
			submit: "Contract source code already verified: Already Verified",
		},
		{
			name:      "rejected",
			submit:    "guid-1",
			statuses:  []string{"Fail - Unable to verify"},
			wantErr:   "verification failed: Fail - Unable to verify",
			wantPolls: 1,
		},
		{
			name:    "submission error",
			submit:  "Invalid API Key",
			wantErr: "verification failed: Invalid API Key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			explorer := &fakeExplorer{submit: tt.submit, statuses: tt.statuses}
			srv := httptest.NewServer(explorer)
			t.Cleanup(srv.Close)

			v := NewContractVerifier(config.Explorer{APIURL: srv.URL}, WithVerifyPollInterval(time.Millisecond))
			err := v.Verify(context.Background(), writeDeployment(t))

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			explorer.mu.Lock()
			defer explorer.mu.Unlock()
			assert.Equal(t, tt.wantPolls, explorer.polls)
			assert.Equal(t, "verifysourcecode", explorer.form["action"])
			assert.Equal(t, testTimelock.Hex(), explorer.form["contractaddress"])
			assert.Equal(t, "v0.7.3+commit.9bfce1f6", explorer.form["compilerversion"])
			assert.Equal(t, "contracts/timelocks/YakTimelockForDexStrategyV3.sol:YakTimelockForDexStrategyV3", explorer.form["contractname"])
			assert.JSONEq(t, `{"language":"Solidity"}`, explorer.form["sourceCode"])
			assert.Equal(t,
				"000000000000000000000000dcedf06fd33e1d7b6eb4b309f779a0e9d3172e44"+
					"0000000000000000000000000000000000000000000000000000000000007080",
				explorer.form["constructorArguements"])
		})
	}
}

func Test_ContractVerifier_MissingSolcInput(t *testing.T) {
	t.Parallel()

	path := writeDeployment(t)
	require.NoError(t, os.Remove(filepath.Join(filepath.Dir(path), "solcInputs", "abc123.json")))

	err := NewContractVerifier(config.Explorer{APIURL: "http://127.0.0.1:0"}).Verify(context.Background(), path)
	require.ErrorContains(t, err, "failed to read solc input")
}

func Test_LoadDeployment_NoAddress(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"args":[]}`), 0o600))

	_, err := LoadDeployment(path)
	require.ErrorContains(t, err, "has no address")
}
