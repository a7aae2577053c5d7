package seed

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"medstore/m/domain"
	"medstore/m/internal/store"
)

// LoadCatalog ingests the CSV into the catalog store on first run. A
// non-empty catalog or a missing CSV leaves everything untouched.
// Expected columns: name, category, price, quantity, expiry.
func LoadCatalog(st *store.Store, csvPath string) {
	records, err := st.Load()
	if err != nil {
		log.Printf("unable to read catalog before seeding: %v", err)
		return
	}
	if len(records) > 0 {
		return
	}

	file, err := os.Open(csvPath)
	if err != nil {
		log.Printf("no seed catalog at %s: %v", csvPath, err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Printf("unable to read seed header: %v", err)
		return
	}

	rows := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("unable to read seed row: %v", err)
			continue
		}
		if len(row) < 5 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil || price < 0 {
			log.Printf("skipping seed row %q: bad price %q", name, row[2])
			continue
		}
		quantity, err := strconv.ParseInt(strings.TrimSpace(row[3]), 10, 64)
		if err != nil || quantity < 0 {
			log.Printf("skipping seed row %q: bad quantity %q", name, row[3])
			continue
		}

		records = append(records, domain.Medicine{
			ID:       st.NextID(records),
			Name:     name,
			Category: strings.TrimSpace(row[1]),
			Price:    price,
			Quantity: quantity,
			Expiry:   strings.TrimSpace(row[4]),
		})
		rows++
	}

	if rows == 0 {
		return
	}
	if err := st.SaveAll(records); err != nil {
		log.Printf("unable to save seeded catalog: %v", err)
		return
	}
	log.Printf("seeded medicine catalog with %d rows", rows)
}
