package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestValidateFileExists(t *testing.T) {
	// Create temporary test files
	tmpDir := t.TempDir()
	validFile := filepath.Join(tmpDir, "valid.xlsx")
	if err := os.WriteFile(validFile, []byte("test"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name        string
		filePath    string
		description string
		expectError bool
	}{
		{
			name:        "valid file",
			filePath:    validFile,
			description: "test file",
			expectError: false,
		},
		{
			name:        "empty path",
			filePath:    "",
			description: "test file",
			expectError: true,
		},
		{
			name:        "non-existent file",
			filePath:    "/non/existent/file.xlsx",
			description: "test file",
			expectError: true,
		},
		{
			name:        "directory instead of file",
			filePath:    tmpDir,
			description: "test file",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFileExists(tt.filePath, tt.description)

			if tt.expectError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateGenerateFlags(t *testing.T) {
	// Create a temporary input spreadsheet
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "despliegues.csv")
	if err := os.WriteFile(input, []byte("UNIDAD,NOMBRE ORDEN\nGEO,Op"), 0644); err != nil {
		t.Fatalf("failed to create input file: %v", err)
	}

	tests := []struct {
		name          string
		setupFlags    func()
		expectError   bool
		errorContains string
	}{
		{
			name: "valid flags",
			setupFlags: func() {
				viper.Set("input", input)
				viper.Set("output", filepath.Join(tmpDir, "out.pdf"))
			},
			expectError: false,
		},
		{
			name: "missing input",
			setupFlags: func() {
				viper.Set("input", "")
			},
			expectError:   true,
			errorContains: "input is required",
		},
		{
			name: "non-existent input",
			setupFlags: func() {
				viper.Set("input", filepath.Join(tmpDir, "absent.xlsx"))
			},
			expectError:   true,
			errorContains: "does not exist",
		},
		{
			name: "input is a directory",
			setupFlags: func() {
				viper.Set("input", tmpDir)
			},
			expectError:   true,
			errorContains: "is a directory",
		},
		{
			name: "empty output path",
			setupFlags: func() {
				viper.Set("input", input)
				viper.Set("output", "")
			},
			expectError:   true,
			errorContains: "output path cannot be empty",
		},
		{
			name: "output directory missing",
			setupFlags: func() {
				viper.Set("input", input)
				viper.Set("output", filepath.Join(tmpDir, "nope", "out.pdf"))
			},
			expectError:   true,
			errorContains: "output directory does not exist",
		},
		{
			name: "negative year",
			setupFlags: func() {
				viper.Set("input", input)
				viper.Set("output", filepath.Join(tmpDir, "out.pdf"))
				viper.Set("year", -1)
			},
			expectError:   true,
			errorContains: "year cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper
			viper.Reset()
			tt.setupFlags()

			cmd := &cobra.Command{}
			err := validateGenerateFlags(cmd, []string{})

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				} else if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("expected error to contain '%s', got: %v", tt.errorContains, err)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestGenerateCommandHelp(t *testing.T) {
	cmd := generateCmd

	// Test that command has required flags
	inputFlag := cmd.Flags().Lookup("input")
	if inputFlag == nil {
		t.Error("input flag not found")
	}

	outputFlag := cmd.Flags().Lookup("output")
	if outputFlag == nil {
		t.Error("output flag not found")
	}

	complianceFlag := cmd.Flags().Lookup("compliance")
	if complianceFlag == nil {
		t.Error("compliance flag not found")
	}

	// Test help output contains key information
	var helpOutput bytes.Buffer
	cmd.SetOut(&helpOutput)
	cmd.Help()

	helpText := helpOutput.String()

	expectedSections := []string{
		"Usage:",
		"Examples:",
		"Flags:",
		"--input",
		"--by-unit",
		"--compliance",
	}

	for _, section := range expectedSections {
		if !strings.Contains(helpText, section) {
			t.Errorf("help text should contain '%s'", section)
		}
	}
}

func TestFlagBinding(t *testing.T) {
	// Test that all flags are declared on the command
	cmd := generateCmd

	flagNames := []string{
		"input",
		"sheet",
		"output",
		"icons-dir",
		"by-unit",
		"compliance",
		"month",
		"year",
	}

	for _, name := range flagNames {
		t.Run(name, func(t *testing.T) {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("flag '%s' not found", name)
			}
		})
	}
}
