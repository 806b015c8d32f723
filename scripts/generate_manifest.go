//go:build ignore

// This script writes sample containers.csv and items.csv files for the import endpoints.
// Run with: go run scripts/generate_manifest.go [-items 200] [-out .]
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var zones = []string{"Crew Quarters", "Airlock", "Laboratory", "Medical Bay", "Storage Bay", "Command Center"}

var names = []string{"Food Packet", "Oxygen Cylinder", "First Aid Kit", "Water Bottle", "Research Sample", "Spare Filter", "Tool Kit", "Blanket"}

func main() {
	numItems := flag.Int("items", 200, "number of items")
	perZone := flag.Int("containers", 3, "containers per zone")
	out := flag.String("out", ".", "output directory")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewPCG(*seed, *seed))

	fmt.Println("=== Cargo Manifest Generator ===")
	fmt.Println()

	containers := [][]string{{"Zone", "Container ID", "Width (cm)", "Depth (cm)", "Height (cm)"}}
	for _, zone := range zones {
		for i := 0; i < *perZone; i++ {
			id := fmt.Sprintf("cont%c%d", zone[0], i+1)
			containers = append(containers, []string{
				zone, id,
				strconv.Itoa(50 + 10*rng.IntN(10)),
				strconv.Itoa(40 + 5*rng.IntN(10)),
				strconv.Itoa(100 + 20*rng.IntN(6)),
			})
		}
	}

	start := time.Now().UTC()
	items := [][]string{{"Item ID", "Name", "Width (cm)", "Depth (cm)", "Height (cm)", "Mass (kg)", "Priority", "Expiry Date", "Usage Limit", "Preferred Zone"}}
	for i := 0; i < *numItems; i++ {
		expiry := "N/A"
		if rng.IntN(3) == 0 {
			expiry = start.AddDate(0, 0, 1+rng.IntN(120)).Format("2006-01-02")
		}
		items = append(items, []string{
			fmt.Sprintf("%06d", i+1),
			names[rng.IntN(len(names))],
			strconv.Itoa(5 + rng.IntN(30)),
			strconv.Itoa(5 + rng.IntN(30)),
			strconv.Itoa(5 + rng.IntN(40)),
			strconv.FormatFloat(0.5+rng.Float64()*20, 'f', 2, 64),
			strconv.Itoa(1 + rng.IntN(100)),
			expiry,
			strconv.Itoa(1 + rng.IntN(50)),
			zones[rng.IntN(len(zones))],
		})
	}

	for name, rows := range map[string][][]string{"containers.csv": containers, "items.csv": items} {
		path := filepath.Join(*out, name)
		if err := writeCSV(path, rows); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(rows)-1, path)
	}

	fmt.Println()
	fmt.Println("Import with:")
	fmt.Println("  curl -F file=@containers.csv localhost:8080/api/import/containers")
	fmt.Println("  curl -F file=@items.csv localhost:8080/api/import/items")
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
