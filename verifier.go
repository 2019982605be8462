package stratops

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-resty/resty/v2"

	"github.com/stratops/stratops/config"
	abiutils "github.com/stratops/stratops/internal/utils/abi"
	"github.com/stratops/stratops/sdk"
)

const (
	defaultVerifyPollInterval = 5 * time.Second
	standardJSONCodeFormat    = "solidity-standard-json-input"

	verifyStatusPending  = "Pending in queue"
	verifyStatusVerified = "Pass - Verified"
	verifyStatusAlready  = "Already Verified"
)

// ErrVerificationFailed is returned when the explorer rejects a submission.
var ErrVerificationFailed = errors.New("verification failed")

// Deployment is the subset of a hardhat-deploy artifact needed for verification.
type Deployment struct {
	Address       common.Address  `json:"address"`
	Args          []any           `json:"args"`
	ABI           json.RawMessage `json:"abi"`
	SolcInputHash string          `json:"solcInputHash"`
	Metadata      string          `json:"metadata"`
}

type compilerMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// LoadDeployment reads a hardhat-deploy artifact. Numbers in args keep their decimal text.
func LoadDeployment(path string) (Deployment, error) {
	f, err := os.Open(path)
	if err != nil {
		return Deployment{}, fmt.Errorf("failed to open deployment file: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var d Deployment
	if err := dec.Decode(&d); err != nil {
		return Deployment{}, fmt.Errorf("failed to decode deployment file %s: %w", path, err)
	}
	if d.Address == (common.Address{}) {
		return Deployment{}, fmt.Errorf("deployment file %s has no address", path)
	}

	return d, nil
}

// ConstructorArgs ABI-encodes the deployment args against the artifact ABI.
func (d Deployment) ConstructorArgs() (string, error) {
	parsed, err := abi.JSON(strings.NewReader(string(d.ABI)))
	if err != nil {
		return "", fmt.Errorf("failed to parse deployment abi: %w", err)
	}

	encoded, err := abiutils.EncodeConstructorArgs(&parsed, d.Args)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(encoded), nil
}

// contract returns the fully qualified contract name and the compiler version.
func (d Deployment) contract() (name string, compiler string, err error) {
	var meta compilerMetadata
	if err := json.Unmarshal([]byte(d.Metadata), &meta); err != nil {
		return "", "", fmt.Errorf("failed to decode deployment metadata: %w", err)
	}
	if len(meta.Settings.CompilationTarget) != 1 {
		return "", "", fmt.Errorf("expected one compilation target, got %d", len(meta.Settings.CompilationTarget))
	}
	for source, contract := range meta.Settings.CompilationTarget {
		name = source + ":" + contract
	}

	return name, "v" + meta.Compiler.Version, nil
}

type explorerResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

type VerifierOption func(*ContractVerifier)

// WithVerifyPollInterval sets how often the verification status is polled.
func WithVerifyPollInterval(d time.Duration) VerifierOption {
	return func(v *ContractVerifier) {
		v.pollInterval = d
	}
}

// ContractVerifier submits deployed sources to an Etherscan compatible explorer.
type ContractVerifier struct {
	client       *resty.Client
	apiKey       string
	pollInterval time.Duration
}

func NewContractVerifier(explorer config.Explorer, opts ...VerifierOption) *ContractVerifier {
	v := &ContractVerifier{
		client:       resty.New().SetBaseURL(explorer.APIURL),
		apiKey:       explorer.APIKey(),
		pollInterval: defaultVerifyPollInterval,
	}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Verify submits the deployment at path along with its solc input and waits for the
// explorer verdict. The solc input is read from solcInputs/<hash>.json next to the
// deployment file.
func (v *ContractVerifier) Verify(ctx context.Context, path string) error {
	lggr := sdk.LoggerFrom(ctx)
	lggr.Infof("Verifying %s", path)

	d, err := LoadDeployment(path)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(filepath.Join(filepath.Dir(path), "solcInputs", d.SolcInputHash+".json"))
	if err != nil {
		return fmt.Errorf("failed to read solc input: %w", err)
	}

	name, compiler, err := d.contract()
	if err != nil {
		return err
	}

	args, err := d.ConstructorArgs()
	if err != nil {
		return err
	}

	var submitted explorerResponse
	resp, err := v.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"apikey":          v.apiKey,
			"module":          "contract",
			"action":          "verifysourcecode",
			"contractaddress": d.Address.Hex(),
			"sourceCode":      string(source),
			"codeformat":      standardJSONCodeFormat,
			"contractname":    name,
			"compilerversion": compiler,
			// Etherscan's parameter name is misspelled.
			"constructorArguements": args,
		}).
		SetResult(&submitted).
		Post("")
	if err != nil {
		return fmt.Errorf("failed to submit verification: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("failed to submit verification: explorer returned %s", resp.Status())
	}

	if submitted.Status != "1" {
		if strings.Contains(submitted.Result, verifyStatusAlready) {
			lggr.Infof("%s is already verified", d.Address.Hex())
			return nil
		}

		return fmt.Errorf("%w: %s", ErrVerificationFailed, submitted.Result)
	}

	lggr.Infof("Submitted %s for verification, guid %s", name, submitted.Result)

	return v.waitForVerdict(ctx, submitted.Result)
}

func (v *ContractVerifier) waitForVerdict(ctx context.Context, guid string) error {
	ticker := time.NewTicker(v.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("verification %s still pending: %w", guid, ctx.Err())
		case <-ticker.C:
		}

		var status explorerResponse
		resp, err := v.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"apikey": v.apiKey,
				"module": "contract",
				"action": "checkverifystatus",
				"guid":   guid,
			}).
			SetResult(&status).
			Get("")
		if err != nil {
			return fmt.Errorf("failed to check verification status: %w", err)
		}
		if resp.IsError() {
			return fmt.Errorf("failed to check verification status: explorer returned %s", resp.Status())
		}

		switch {
		case status.Result == verifyStatusPending:
			continue
		case status.Result == verifyStatusVerified, strings.Contains(status.Result, verifyStatusAlready):
			sdk.LoggerFrom(ctx).Infof("Verification %s: %s", guid, status.Result)
			return nil
		default:
			return fmt.Errorf("%w: %s", ErrVerificationFailed, status.Result)
		}
	}
}
