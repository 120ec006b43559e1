//go:build basic || database

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedCovidashPath holds the path to a shared covidash binary built once for all tests.
	sharedCovidashPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// datasetCSV is a small dataset with two regions and three dates.
const datasetCSV = `Province/State,Country/Region,Lat,Long,Date,Confirmed,Deaths,Recovered,Active,WHO Region
,US,40.0,-100.0,2020-01-22,1,0,0,1,Americas
,France,46.2,2.2,2020-01-22,4,1,0,3,Europe
,US,40.0,-100.0,2020-01-23,2,1,1,0,Americas
,Brazil,-14.2,-51.9,2020-01-23,5,0,2,3,Americas
,France,46.2,2.2,2020-01-24,6,2,3,1,Europe
,US,40.0,-100.0,2020-01-24,3,1,2,0,Americas
`

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getCovidashBinary returns the path to the covidash binary, building it once if needed.
func getCovidashBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "covidash-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		covidashPath := filepath.Join(tempDir, "covidash")
		buildCmd := exec.Command("go", "build", "-o", covidashPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build covidash: %v", err))
		}

		sharedCovidashPath = covidashPath
	})

	return sharedCovidashPath
}

// writeDataset writes the test dataset into a temp dir and returns its path.
func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "covid_19_clean_complete.csv")
	require.NoError(t, os.WriteFile(path, []byte(datasetCSV), 0o644))
	return path
}

// runCovidashCommand runs the binary and returns its stdout.
// Stderr is only logged when the command fails.
func runCovidashCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getCovidashBinary(), args...)
	cmd.Dir = t.TempDir() // Keep any .covidash.yaml of the repo out of the run
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), stdout.String(), stderr.String())
		return stdout.String(), err
	}
	return stdout.String(), nil
}
