// Package mrio ingests an OECD ICIO-format multi-region input-output
// CSV (spec §6) into per-country technical coefficient matrices. It
// reads on the stdlib encoding/csv, grounded on the header-then-index
// idiom the airline-data loader in the retrieval pack uses for its own
// flat-file ingestion (build a header->column index, then scan rows) —
// see DESIGN.md for why no third-party CSV library from the pack fit
// better than the stdlib reader here.
package mrio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nivenhall/econsim/internal/commodity"
	"github.com/nivenhall/econsim/internal/diagnostics"
	"github.com/nivenhall/econsim/internal/matrix"
)

// SectorMapping maps an ISIC Rev 4 sector code (e.g. "01T02", "10T12")
// to the simulation commodity bucket it rolls up into. Supplied as data
// alongside the CSV, per spec §6 ("a fixed many-to-one mapping,
// supplied as data").
type SectorMapping map[string]commodity.Commodity

// specialRows are ICIO row/column labels that aren't COUNTRY_SECTOR
// flow cells.
var specialRows = map[string]bool{
	"V1": true, "VA": true, "TLS": true, "OUT": true,
}

// finalDemandCols are ICIO column suffixes that represent final demand
// rather than intermediate use; not part of the technical coefficient
// computation.
var finalDemandCols = map[string]bool{
	"HFCE": true, "NPISH": true, "GGFC": true, "GFCF": true, "INVNT": true, "DPABR": true,
}

// cell identifies a parsed COUNTRY_SECTOR label.
type cell struct {
	country string
	sector  string
}

// parseLabel splits a "COUNTRY_SECTOR" label, e.g. "AUS_01T02", into
// its country and sector parts. Labels with no underscore, or whose
// suffix is a final-demand or special tag, are not flow cells.
func parseLabel(label string) (cell, bool) {
	i := strings.IndexByte(label, '_')
	if i < 0 {
		return cell{}, false
	}
	country, sector := label[:i], label[i+1:]
	if specialRows[sector] || finalDemandCols[sector] {
		return cell{}, false
	}
	return cell{country: country, sector: sector}, true
}

// Ingest parses an OECD ICIO CSV from r and returns one technical
// coefficient matrix per country, aggregated from the 50 ISIC sectors
// into the simulation's K=12 commodities via mapping. Countries are
// returned in the order their COUNTRY_SECTOR columns first appear in
// the header, which callers should use to assign CountryIDs when
// combining this with scenario.Load output.
//
// Coefficients are computed at the aggregated K-bucket level:
// sectoral flows and gross output are summed into their commodity
// bucket first, then A[i,j] = ZAgg[i,j] / XAgg[j] (zero if XAgg[j] is
// zero), matching spec §6's per-column ratio but applied after
// aggregation rather than before, since the bucket is what the
// simulation's coefficients are indexed by.
func Ingest(r io.Reader, mapping SectorMapping) ([]matrix.Coefficients, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("mrio: read header: %w", err)
	}

	// colCell[j] is the parsed (country, sector) for header column j, or
	// !ok if column j is the row-label column, a final-demand column, or
	// a special column.
	colCell := make([]cell, len(header))
	colOK := make([]bool, len(header))
	var countryOrder []string
	seenCountry := make(map[string]bool)
	for j, label := range header {
		c, ok := parseLabel(label)
		if !ok {
			continue
		}
		colCell[j] = c
		colOK[j] = true
		if !seenCountry[c.country] {
			seenCountry[c.country] = true
			countryOrder = append(countryOrder, c.country)
		}
	}

	// out[country][bucket] accumulates OUT (gross output) per bucket.
	out := make(map[string]*[commodity.K]float64)
	// z[country][i][j] accumulates intermediate flows within a country's
	// own technical matrix: input bucket i -> output bucket j.
	z := make(map[string]*[commodity.K * commodity.K]float64)
	for _, c := range countryOrder {
		out[c] = &[commodity.K]float64{}
		z[c] = &[commodity.K * commodity.K]float64{}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mrio: read row: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		rowLabel := record[0]

		if rowLabel == "OUT" {
			for j := 1; j < len(record) && j < len(header); j++ {
				if !colOK[j] {
					continue
				}
				v, err := strconv.ParseFloat(strings.TrimSpace(record[j]), 64)
				if err != nil || v == 0 {
					continue
				}
				bucket, ok := mapping[colCell[j].sector]
				if !ok {
					return nil, &diagnostics.SchemaError{Field: "mrio.sector", Reason: fmt.Sprintf("unmapped ISIC sector %q", colCell[j].sector)}
				}
				o, ok := out[colCell[j].country]
				if !ok {
					continue
				}
				o[bucket] += v
			}
			continue
		}

		rowCell, ok := parseLabel(rowLabel)
		if !ok {
			// V1, VA, TLS, or an unrecognized row: not an intermediate flow.
			continue
		}
		rowBucket, ok := mapping[rowCell.sector]
		if !ok {
			return nil, &diagnostics.SchemaError{Field: "mrio.sector", Reason: fmt.Sprintf("unmapped ISIC sector %q", rowCell.sector)}
		}

		for j := 1; j < len(record) && j < len(header); j++ {
			if !colOK[j] {
				continue
			}
			colCellJ := colCell[j]
			if colCellJ.country != rowCell.country {
				// Cross-country intermediate flows feed trade baselines,
				// not a country's own technical coefficients.
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(record[j]), 64)
			if err != nil || v == 0 {
				continue
			}
			colBucket, ok := mapping[colCellJ.sector]
			if !ok {
				return nil, &diagnostics.SchemaError{Field: "mrio.sector", Reason: fmt.Sprintf("unmapped ISIC sector %q", colCellJ.sector)}
			}
			zc, ok := z[rowCell.country]
			if !ok {
				continue
			}
			zc[int(rowBucket)*commodity.K+int(colBucket)] += v
		}
	}

	result := make([]matrix.Coefficients, 0, len(countryOrder))
	for _, c := range countryOrder {
		flat := make([]float64, commodity.K*commodity.K)
		zc, xc := z[c], out[c]
		for j := 0; j < commodity.K; j++ {
			if xc[j] == 0 {
				continue
			}
			for i := 0; i < commodity.K; i++ {
				flat[i*commodity.K+j] = zc[i*commodity.K+j] / xc[j]
			}
		}
		mat, err := matrix.FromRowMajor(flat)
		if err != nil {
			return nil, fmt.Errorf("mrio: country %s: %w", c, err)
		}
		if err := mat.Validate(); err != nil {
			return nil, &diagnostics.SchemaError{Field: "mrio.technicalCoefficients", Reason: fmt.Sprintf("country %s: %s", c, err.Error())}
		}
		result = append(result, *mat)
	}
	return result, nil
}
