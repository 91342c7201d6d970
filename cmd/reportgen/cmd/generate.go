package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"deployment-report-service/cmd/reportgen/config"
	"deployment-report-service/internal/assembler"
	"deployment-report-service/internal/ingest"
	"deployment-report-service/internal/layout"
	"deployment-report-service/internal/render"
	"deployment-report-service/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the generate command
var (
	inputFile  string
	sheetName  string
	outputFile string
	iconsDir   string
	byUnit     bool
	compliance bool
	month      string
	year       int
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a deployment report PDF from a spreadsheet",
	Long: `Generate reads a deployment spreadsheet (Excel or delimited text),
reconciles it against the expected column set and renders a paginated PDF.

Three report modes are available:
- flat (default): one table listing every deployment
- grouped (--by-unit): one titled table per organizational unit
- compliance (--compliance): aggregate statistics with charts; takes
  precedence over --by-unit when both are set

Examples:
  # Flat listing
  reportgen generate --input despliegues.xlsx --output reporte.pdf

  # Grouped by unit with header icons
  reportgen generate --input despliegues.xlsx --by-unit --icons-dir ./icons

  # Compliance summary for a specific period
  reportgen generate --input marzo.csv --compliance --month Marzo --year 2025

  # Read a specific day sheet
  reportgen generate --input despliegues.xlsx --sheet 05 --by-unit`,

	PreRunE: validateGenerateFlags,
	RunE:    runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Required flags
	generateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "path to the source spreadsheet (required)")

	// Input selection flags
	generateCmd.Flags().StringVar(&sheetName, "sheet", "", "workbook sheet to read (default: OPERATIVOS or first)")

	// Output flags
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "reporte_despliegues.pdf", "output PDF path")
	generateCmd.Flags().StringVar(&iconsDir, "icons-dir", "", "directory with PNG header icons and logo")

	// Mode flags
	generateCmd.Flags().BoolVar(&byUnit, "by-unit", false, "group tables by organizational unit")
	generateCmd.Flags().BoolVar(&compliance, "compliance", false, "produce the compliance summary report")
	generateCmd.Flags().StringVar(&month, "month", "", "reporting period month name, display only (default: current)")
	generateCmd.Flags().IntVar(&year, "year", 0, "reporting period year, display only (default: current)")

	// Mark required flags
	generateCmd.MarkFlagRequired("input")

	// Bind flags to viper
	viper.BindPFlag("input", generateCmd.Flags().Lookup("input"))
	viper.BindPFlag("sheet", generateCmd.Flags().Lookup("sheet"))
	viper.BindPFlag("output", generateCmd.Flags().Lookup("output"))
	viper.BindPFlag("icons-dir", generateCmd.Flags().Lookup("icons-dir"))
	viper.BindPFlag("by-unit", generateCmd.Flags().Lookup("by-unit"))
	viper.BindPFlag("compliance", generateCmd.Flags().Lookup("compliance"))
	viper.BindPFlag("month", generateCmd.Flags().Lookup("month"))
	viper.BindPFlag("year", generateCmd.Flags().Lookup("year"))
}

func validateGenerateFlags(cmd *cobra.Command, args []string) error {
	// Get values from viper (allows override from config file)
	inputFile = viper.GetString("input")
	sheetName = viper.GetString("sheet")
	outputFile = viper.GetString("output")
	iconsDir = viper.GetString("icons-dir")
	byUnit = viper.GetBool("by-unit")
	compliance = viper.GetBool("compliance")
	month = viper.GetString("month")
	year = viper.GetInt("year")

	if inputFile == "" {
		return fmt.Errorf("input is required")
	}

	if err := validateFileExists(inputFile, "input spreadsheet"); err != nil {
		return err
	}

	if outputFile == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if dir := filepath.Dir(outputFile); dir != "." {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("output directory does not exist: %s", dir)
		}
	}

	if year < 0 {
		return fmt.Errorf("year cannot be negative")
	}

	return nil
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if log, err := logger.NewLogger(config.CreateLoggerConfig(viper.GetBool("verbose"))); err == nil {
		logger.SetGlobalLogger(log)
	}
	log := logger.GetGlobalLogger().WithComponent("reportgen")

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Input file: %s\n", inputFile)
		fmt.Fprintf(os.Stderr, "Output file: %s\n", outputFile)
		if sheetName != "" {
			fmt.Fprintf(os.Stderr, "Sheet: %s\n", sheetName)
		}
	}

	handler := NewCLIErrorHandler()

	layoutConfig, err := config.CreateLayoutConfig()
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	icons, err := config.CreateIconResolver(iconsDir, log)
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	loader := ingest.NewLoader()
	ds, err := loader.LoadFile(inputFile, sheetName)
	if err != nil {
		os.Exit(handler.HandleError(err))
	}
	log.WithFields(logger.Fields{
		"rows":    ds.Len(),
		"columns": ds.NumColumns(),
	}).Info("dataset loaded")

	renderer := render.NewRenderer(config.CreateRenderConfig(layoutConfig), icons)
	asm := assembler.New(renderer, nil)
	blocks, err := asm.Assemble(ds, config.CreateAssemblerOptions(byUnit, compliance, month, year))
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	engine := layout.NewEngine(layoutConfig, icons)
	pdf, err := engine.Render(blocks)
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	if err := os.WriteFile(outputFile, pdf, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputFile, err)
	}

	log.WithFields(logger.Fields{
		"output": outputFile,
		"bytes":  len(pdf),
	}).Info("report generated")
	fmt.Printf("Report written to %s\n", outputFile)
	return nil
}
