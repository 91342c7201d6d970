// Command deployment_generator produces sample deployment spreadsheets
// for manual testing. It writes either a delimited text file or an Excel
// workbook with an OPERATIVOS sheet, optionally with per-day sheets.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"deployment-report-service/internal/dataset"

	"github.com/xuri/excelize/v2"
)

type generatorConfig struct {
	Rows      int
	Days      int
	StartDate time.Time
	Seed      int64
}

var units = []string{
	"DIRECCIÓN I",
	"DIRECCIÓN II",
	"DIRECCIÓN III",
	"DIRECCIÓN IV",
	"DIRECCIÓN V",
	"GEO",
	"GRUPO HALCONES",
	"REGIMIENTO \"GUARDIA DE CORACEROS\"",
	"DIRECCIÓN NACIONAL",
}

var orderTypes = []string{"O/S", "O/O", "ORDEN TELEFÓNICA"}

var operativeNames = []string{
	"PATRULLAJE PREVENTIVO",
	"CUSTODIA ESPECTÁCULO DEPORTIVO",
	"OPERATIVO DE SATURACIÓN",
	"CUSTODIA PERIMETRAL",
	"APOYO A SECCIONAL",
	"CONTROL DE TRÁNSITO",
}

var sections = []string{"1RA.", "2DA.", "3RA.", "4TA.", "5TA."}

func main() {
	var (
		output    = flag.String("output", "testdata/despliegues.xlsx", "Output file path (.xlsx, .csv or .tsv)")
		rows      = flag.Int("rows", 40, "Number of deployment rows to generate")
		days      = flag.Int("days", 0, "Also write this many per-day sheets (xlsx only)")
		startDate = flag.String("start-date", "2025-03-01", "First deployment date")
		seed      = flag.Int64("seed", time.Now().UnixNano(), "Random seed for reproducible generation")
	)
	flag.Parse()

	start, err := time.Parse("2006-01-02", *startDate)
	if err != nil {
		log.Fatalf("Invalid start date: %v", err)
	}

	cfg := generatorConfig{
		Rows:      *rows,
		Days:      *days,
		StartDate: start,
		Seed:      *seed,
	}

	records := generate(cfg)

	switch filepath.Ext(*output) {
	case ".xlsx":
		err = writeWorkbook(*output, records, cfg)
	case ".csv":
		err = writeDelimited(*output, records, ',')
	case ".tsv", ".txt":
		err = writeDelimited(*output, records, '\t')
	default:
		log.Fatalf("Unsupported output extension: %s", *output)
	}
	if err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}

	fmt.Printf("Generated %d deployments in %s\n", len(records)-1, *output)
	fmt.Printf("Seed used: %d\n", cfg.Seed)
}

func header() []string {
	return []string{
		dataset.ColUnit,
		dataset.ColOrderType,
		dataset.ColOrderNumber,
		dataset.ColOrderName,
		dataset.ColOperativeType,
		dataset.ColDate,
		dataset.ColStartTime,
		dataset.ColEndTime,
		dataset.ColSection,
		dataset.ColVehicles,
		dataset.ColMotorcycles,
		dataset.ColMounted,
		dataset.ColSubOfficers,
		dataset.ColPersonnelInVehicle,
		dataset.ColPersonnelOnFoot,
		dataset.ColShockPosted,
		dataset.ColShockAlert,
		dataset.ColGeoPosted,
		dataset.ColGeoAlert,
		dataset.ColPersonnelTotal,
	}
}

// generate builds a header row plus cfg.Rows data rows. Counts are kept
// internally consistent so that aggregate totals add up.
func generate(cfg generatorConfig) [][]string {
	rng := rand.New(rand.NewSource(cfg.Seed))
	records := make([][]string, 0, cfg.Rows+1)
	records = append(records, header())

	for i := 0; i < cfg.Rows; i++ {
		date := cfg.StartDate.AddDate(0, 0, rng.Intn(maxInt(cfg.Days, 1)))
		startHour := 6 + rng.Intn(14)
		duration := 2 + rng.Intn(8)

		vehicles := rng.Intn(5)
		motos := rng.Intn(4)
		mounted := rng.Intn(3)
		inVehicle := vehicles * 2
		onFoot := rng.Intn(12)
		shockPosted := rng.Intn(6)
		shockAlert := rng.Intn(4)
		geoPosted := rng.Intn(3)
		geoAlert := rng.Intn(3)
		ssoo := 1 + rng.Intn(3)
		total := inVehicle + onFoot + shockPosted + shockAlert + geoPosted + geoAlert + ssoo

		records = append(records, []string{
			units[rng.Intn(len(units))],
			orderTypes[rng.Intn(len(orderTypes))],
			fmt.Sprintf("%d/2025", 100+i),
			operativeNames[rng.Intn(len(operativeNames))],
			"PLANIFICADO",
			date.Format("2006-01-02"),
			fmt.Sprintf("%02d:00", startHour),
			fmt.Sprintf("%02d:00", (startHour+duration)%24),
			sections[rng.Intn(len(sections))],
			strconv.Itoa(vehicles),
			strconv.Itoa(motos),
			strconv.Itoa(mounted),
			strconv.Itoa(ssoo),
			strconv.Itoa(inVehicle),
			strconv.Itoa(onFoot),
			strconv.Itoa(shockPosted),
			strconv.Itoa(shockAlert),
			strconv.Itoa(geoPosted),
			strconv.Itoa(geoAlert),
			strconv.Itoa(total),
		})
	}

	return records
}

func writeDelimited(path string, records [][]string, sep rune) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = sep
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeWorkbook(path string, records [][]string, cfg generatorConfig) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), "OPERATIVOS")
	if err := writeSheet(f, "OPERATIVOS", records); err != nil {
		return err
	}

	// Per-day sheets carry the same header; the loader tags them with a
	// DIA column on read.
	dateCol := indexOf(records[0], dataset.ColDate)
	for day := 0; day < cfg.Days; day++ {
		date := cfg.StartDate.AddDate(0, 0, day)
		name := fmt.Sprintf("%02d", date.Day())
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		daily := [][]string{records[0]}
		for _, row := range records[1:] {
			if dateCol >= 0 && row[dateCol] == date.Format("2006-01-02") {
				daily = append(daily, row)
			}
		}
		if err := writeSheet(f, name, daily); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, sheet string, records [][]string) error {
	for i, row := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func indexOf(row []string, name string) int {
	for i, v := range row {
		if v == name {
			return i
		}
	}
	return -1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
