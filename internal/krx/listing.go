package krx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// Column headers of the KIND download
const (
	colName        = "회사명"
	colTicker      = "종목코드"
	colIndustry    = "업종"
	colListingDate = "상장일"
	colRegion      = "지역"

	tickerWidth = 6
)

// GetListedCompanies fetches and parses the KIND listed-company table
func (c *Client) GetListedCompanies(ctx context.Context) ([]ListedCompany, error) {
	log.Debugf("GetListedCompanies begins (from KIND)")
	body, err := c.doRequest(ctx, c.directoryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listed companies: %w", err)
	}

	companies, err := parseListingTable(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	log.Debugf("GetListedCompanies ends (%d companies)", len(companies))
	return companies, nil
}

// parseListingTable parses the first HTML table in r.
// Required columns: 회사명, 종목코드, 지역. 업종 and 상장일 are read when present.
func parseListingTable(r io.Reader) ([]ListedCompany, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := findElement(doc, "table")
	if table == nil {
		return nil, fmt.Errorf("no table found in listing response")
	}

	var rows [][]string
	collectRows(table, &rows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("listing table has no header row")
	}

	// Build column index map
	colIdx := make(map[string]int)
	for i, col := range rows[0] {
		colIdx[col] = i
	}

	// Verify required columns exist
	for _, col := range []string{colName, colTicker, colRegion} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	cell := func(record []string, col string) string {
		i, ok := colIdx[col]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	companies := make([]ListedCompany, 0, len(rows)-1)
	for _, record := range rows[1:] {
		name := cell(record, colName)
		if name == "" {
			continue
		}

		entry := ListedCompany{
			Name:     name,
			Ticker:   NormalizeTicker(cell(record, colTicker)),
			Industry: cell(record, colIndustry),
			Region:   cell(record, colRegion),
		}

		// Parse listing date
		if ds := cell(record, colListingDate); ds != "" {
			if t, err := time.Parse("2006-01-02", ds); err == nil {
				entry.ListingDate = &t
			}
		}

		companies = append(companies, entry)
	}

	return companies, nil
}

// NormalizeTicker left-pads a ticker with zeros to six characters.
// The download sometimes drops leading zeros ("5930" for 005930).
func NormalizeTicker(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || len(s) >= tickerWidth {
		return s
	}
	return strings.Repeat("0", tickerWidth-len(s)) + s
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// collectRows appends the text of every th/td cell, row by row.
// Nested tables are not descended into.
func collectRows(n *html.Node, rows *[][]string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "tr":
			var row []string
			for cellNode := c.FirstChild; cellNode != nil; cellNode = cellNode.NextSibling {
				if cellNode.Type == html.ElementNode && (cellNode.Data == "td" || cellNode.Data == "th") {
					row = append(row, textContent(cellNode))
				}
			}
			if len(row) > 0 {
				*rows = append(*rows, row)
			}
		case "table":
			// skip nested tables
		default:
			collectRows(c, rows)
		}
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
