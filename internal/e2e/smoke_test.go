package e2e

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/bnema/todo-cli/internal/testutil/fakeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	server := fakeapi.New(t)

	env := []string{
		"HOME=" + home,
		"TODO_API_BASE_URL=" + server.URL(),
		"TODO_SECRETS_BACKEND=file",
		"TODO_PASSWORD=hunter2",
	}

	stdout, stderr, err := runTodo(t, binaryPath, env, "signup", "-u", "alice")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Equal(t, "Welcome, alice!\n", stdout)

	stdout, stderr, err = runTodo(t, binaryPath, env, "add", "buy milk")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Equal(t, "Added 1: buy milk\n", stdout)

	_, stderr, err = runTodo(t, binaryPath, env, "done", "1")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runTodo(t, binaryPath, env, "list", "--json")
	require.NoError(t, err, "stderr: %s", stderr)

	var tasks []struct {
		ID        string `json:"id"`
		Text      string `json:"text"`
		Completed bool   `json:"completed"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy milk", tasks[0].Text)
	assert.True(t, tasks[0].Completed)

	_, stderr, err = runTodo(t, binaryPath, env, "logout")
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runTodo(t, binaryPath, env, "list")
	require.Error(t, err)
	assert.Contains(t, stderr, "not logged in")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "todo-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/todo")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build todo binary: %s", string(output))
	return binaryPath
}

func runTodo(t *testing.T, binaryPath string, env []string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), env...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
