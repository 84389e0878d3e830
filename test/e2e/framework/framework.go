package framework

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/creack/pty"
)

const mainModule = "module github.com/Hanaasagi/activelabel\n"

// findProjectRoot searches for the directory whose go.mod declares the main module
func findProjectRoot(startDir string) string {
	dir := startDir
	for {
		content, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil && strings.HasPrefix(strings.TrimSpace(string(content))+"\n", mainModule) {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Framework runs the activelabel binary inside a pseudo terminal
type Framework struct {
	BinaryPath string
	Timeout    time.Duration
}

// TestCase is one run of the binary. Input is written to a file passed as
// the positional argument; Keys are typed once the program is up.
type TestCase struct {
	Name           string
	Input          string
	Args           []string
	Keys           string
	ExpectedOutput string
	Timeout        time.Duration
}

// TestResult represents the result of a test case
type TestResult struct {
	Name    string
	Passed  bool
	Error   string
	Output  string
	Elapsed time.Duration
}

// NewFramework creates a new e2e test framework
func NewFramework() *Framework {
	return &Framework{
		Timeout: 5 * time.Second,
	}
}

// SetBinaryPath uses a prebuilt binary instead of building one
func (f *Framework) SetBinaryPath(path string) {
	f.BinaryPath = path
}

// BuildBinary builds cmd/activelabel into the project's build directory
func (f *Framework) BuildBinary() error {
	if f.BinaryPath != "" {
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	projectRoot := findProjectRoot(wd)
	if projectRoot == "" {
		return fmt.Errorf("could not find project root directory from %s", wd)
	}

	buildDir := filepath.Join(projectRoot, "build")
	binaryPath := filepath.Join(buildDir, "activelabel")

	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/activelabel")
	cmd.Dir = projectRoot

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to build binary: %w, output: %s", err, string(output))
	}

	f.BinaryPath = binaryPath
	return nil
}

// RunTest executes a single test case. It passes as soon as the expected
// output shows up on the terminal.
func (f *Framework) RunTest(testCase TestCase) TestResult {
	start := time.Now()
	result := TestResult{Name: testCase.Name}
	fail := func(format string, args ...any) TestResult {
		result.Error = fmt.Sprintf(format, args...)
		result.Elapsed = time.Since(start)
		return result
	}

	if err := f.BuildBinary(); err != nil {
		return fail("failed to build binary: %v", err)
	}

	dir, err := os.MkdirTemp("", "activelabel-test-*")
	if err != nil {
		return fail("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	inputPath := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(inputPath, []byte(testCase.Input), 0o644); err != nil {
		return fail("failed to write input file: %v", err)
	}

	// the config path does not exist so the defaults apply
	args := append([]string{"--config", filepath.Join(dir, "config.toml")}, testCase.Args...)
	args = append(args, inputPath)

	cmd := exec.Command(f.BinaryPath, args...)
	cmd.Env = append(os.Environ(), "XDG_STATE_HOME="+dir, "TMUX=")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fail("failed to start command: %v", err)
	}
	defer ptmx.Close()

	// Wait for program initialization
	time.Sleep(200 * time.Millisecond)

	if testCase.Keys != "" {
		if _, err := ptmx.Write([]byte(testCase.Keys)); err != nil {
			return fail("failed to send keys: %v", err)
		}
	}

	timeout := testCase.Timeout
	if timeout == 0 {
		timeout = f.Timeout
	}
	timeoutCh := time.After(timeout)

	type readResult struct {
		output  string
		matched bool
		err     error
	}
	readCh := make(chan readResult, 1)

	go func() {
		reader := bufio.NewReader(ptmx)
		var output strings.Builder

		for {
			b, err := reader.ReadByte()
			if err != nil {
				if err == io.EOF {
					err = nil
				}
				readCh <- readResult{output: output.String(), err: err}
				return
			}

			output.WriteByte(b)
			if strings.Contains(output.String(), testCase.ExpectedOutput) {
				readCh <- readResult{output: output.String(), matched: true}
				return
			}
		}
	}()

	select {
	case r := <-readCh:
		result.Output = r.output
		result.Passed = r.matched
		if !r.matched {
			result.Error = "program exited without the expected output"
			if r.err != nil {
				result.Error += fmt.Sprintf(": %v", r.err)
			}
		}
	case <-timeoutCh:
		result.Error = "test timed out"
		_ = cmd.Process.Kill()
	}

	result.Elapsed = time.Since(start)
	return result
}

// RunTests executes multiple test cases
func (f *Framework) RunTests(testCases []TestCase) []TestResult {
	results := make([]TestResult, len(testCases))
	for i, testCase := range testCases {
		fmt.Printf("Running test: %s\n", testCase.Name)
		results[i] = f.RunTest(testCase)
		if results[i].Passed {
			fmt.Printf("PASS %s (%.2fs)\n", testCase.Name, results[i].Elapsed.Seconds())
		} else {
			fmt.Printf("FAIL %s (%.2fs): %s\n", testCase.Name, results[i].Elapsed.Seconds(), results[i].Error)
		}
	}
	return results
}

// PrintSummary prints a summary of test results
func (f *Framework) PrintSummary(results []TestResult) {
	passed := 0
	total := len(results)

	fmt.Println("\n=== Test Summary ===")
	for _, result := range results {
		if result.Passed {
			passed++
			fmt.Printf("PASS %s\n", result.Name)
		} else {
			fmt.Printf("FAIL %s: %s\n", result.Name, result.Error)
		}
	}

	fmt.Printf("\nTotal: %d, Passed: %d, Failed: %d\n", total, passed, total-passed)
}
