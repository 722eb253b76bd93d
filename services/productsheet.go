package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"

	"ramani-storefront/models"
	"ramani-storefront/store"
)

// Spreadsheet formats accepted for bulk product import and export
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

const productSheetName = "Products"

var sheetColumns = []string{
	"name", "description", "price", "originalPrice", "category", "fabric",
	"color", "occasion", "images", "stockQuantity", "inStock", "rating",
	"reviewCount", "isNewArrival", "isBestseller", "isTrending",
}

// productRow is one spreadsheet line. Cells stay strings so each row can be
// validated on its own.
type productRow struct {
	Name          string `csv:"name"`
	Description   string `csv:"description"`
	Price         string `csv:"price"`
	OriginalPrice string `csv:"originalPrice"`
	Category      string `csv:"category"`
	Fabric        string `csv:"fabric"`
	Color         string `csv:"color"`
	Occasion      string `csv:"occasion"`
	Images        string `csv:"images"`
	StockQuantity string `csv:"stockQuantity"`
	InStock       string `csv:"inStock"`
	Rating        string `csv:"rating"`
	ReviewCount   string `csv:"reviewCount"`
	IsNewArrival  string `csv:"isNewArrival"`
	IsBestseller  string `csv:"isBestseller"`
	IsTrending    string `csv:"isTrending"`
}

func (r *productRow) cells() []interface{} {
	return []interface{}{
		r.Name, r.Description, r.Price, r.OriginalPrice, r.Category, r.Fabric,
		r.Color, r.Occasion, r.Images, r.StockQuantity, r.InStock, r.Rating,
		r.ReviewCount, r.IsNewArrival, r.IsBestseller, r.IsTrending,
	}
}

func (r *productRow) set(column, value string) {
	value = strings.TrimSpace(value)
	switch column {
	case "name":
		r.Name = value
	case "description":
		r.Description = value
	case "price":
		r.Price = value
	case "originalPrice":
		r.OriginalPrice = value
	case "category":
		r.Category = value
	case "fabric":
		r.Fabric = value
	case "color":
		r.Color = value
	case "occasion":
		r.Occasion = value
	case "images":
		r.Images = value
	case "stockQuantity":
		r.StockQuantity = value
	case "inStock":
		r.InStock = value
	case "rating":
		r.Rating = value
	case "reviewCount":
		r.ReviewCount = value
	case "isNewArrival":
		r.IsNewArrival = value
	case "isBestseller":
		r.IsBestseller = value
	case "isTrending":
		r.IsTrending = value
	}
}

func rowFromProduct(p models.Product) *productRow {
	r := &productRow{
		Name:          p.Name,
		Description:   p.Description,
		Price:         cast.ToString(p.Price),
		Category:      p.Category,
		Fabric:        p.Fabric,
		Color:         p.Color,
		Occasion:      p.Occasion,
		Images:        strings.Join(p.Images, "|"),
		StockQuantity: cast.ToString(p.StockQuantity),
		InStock:       cast.ToString(p.InStock),
		Rating:        cast.ToString(p.Rating),
		ReviewCount:   cast.ToString(p.ReviewCount),
		IsNewArrival:  cast.ToString(p.IsNewArrival),
		IsBestseller:  cast.ToString(p.IsBestseller),
		IsTrending:    cast.ToString(p.IsTrending),
	}
	if p.OriginalPrice > 0 {
		r.OriginalPrice = cast.ToString(p.OriginalPrice)
	}
	return r
}

// toInput converts the row's cells into a product input, rejecting bad numbers.
func (r *productRow) toInput() (models.ProductInput, error) {
	var in models.ProductInput
	str := func(v string) *string {
		if v == "" {
			return nil
		}
		return &v
	}
	in.Name = str(r.Name)
	in.Description = str(r.Description)
	in.Category = str(r.Category)
	in.Fabric = str(r.Fabric)
	in.Color = str(r.Color)
	in.Occasion = str(r.Occasion)
	if r.Images != "" {
		images := splitImages(r.Images)
		in.Images = &images
	}

	var err error
	if in.Price, err = floatCell("price", r.Price); err != nil {
		return in, err
	}
	if in.OriginalPrice, err = floatCell("originalPrice", r.OriginalPrice); err != nil {
		return in, err
	}
	if in.Rating, err = floatCell("rating", r.Rating); err != nil {
		return in, err
	}
	if in.StockQuantity, err = intCell("stockQuantity", r.StockQuantity); err != nil {
		return in, err
	}
	if in.ReviewCount, err = intCell("reviewCount", r.ReviewCount); err != nil {
		return in, err
	}
	for _, flag := range []struct {
		name string
		raw  string
		dst  **bool
	}{
		{"inStock", r.InStock, &in.InStock},
		{"isNewArrival", r.IsNewArrival, &in.IsNewArrival},
		{"isBestseller", r.IsBestseller, &in.IsBestseller},
		{"isTrending", r.IsTrending, &in.IsTrending},
	} {
		if *flag.dst, err = boolCell(flag.name, flag.raw); err != nil {
			return in, err
		}
	}
	return in, in.ValidateCreate()
}

func splitImages(raw string) []string {
	images := []string{}
	for _, part := range strings.Split(raw, "|") {
		if part = strings.TrimSpace(part); part != "" {
			images = append(images, part)
		}
	}
	return images
}

func floatCell(name, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil, invalid(name, "must be a number")
	}
	return &v, nil
}

func intCell(name, raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return nil, invalid(name, "must be a whole number")
	}
	return &v, nil
}

func boolCell(name, raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := cast.ToBoolE(raw)
	if err != nil {
		return nil, invalid(name, "must be true or false")
	}
	return &v, nil
}

// ImportResult reports the outcome of a bulk import
type ImportResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

// ProductSheet moves products in and out of spreadsheets
type ProductSheet struct {
	products ProductStore
	now      func() time.Time
}

func NewProductSheet(products ProductStore) *ProductSheet {
	return &ProductSheet{products: products, now: time.Now}
}

// FormatOf derives the spreadsheet format from a file name.
func FormatOf(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", invalid("file", "must be an .xlsx or .csv file")
}

// Import reads every row, inserts the valid ones and reports the rest.
// Row numbers in errors are spreadsheet line numbers, header included.
func (s *ProductSheet) Import(ctx context.Context, format string, r io.Reader) (*ImportResult, error) {
	var (
		rows []*productRow
		err  error
	)
	switch format {
	case FormatXLSX:
		rows, err = readXLSX(r)
	case FormatCSV:
		err = gocsv.Unmarshal(r, &rows)
	default:
		return nil, invalid("format", "must be xlsx or csv")
	}
	if err != nil {
		return nil, invalid("file", "could not be read: "+err.Error())
	}

	result := &ImportResult{Errors: []string{}}
	now := s.now()
	valid := make([]models.Product, 0, len(rows))
	for i, row := range rows {
		in, err := row.toInput()
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		p := models.Product{Images: []string{}, CreatedAt: now, UpdatedAt: now}
		in.Apply(&p)
		valid = append(valid, p)
	}

	if err := s.products.InsertMany(ctx, valid); err != nil {
		return nil, err
	}
	result.Imported = len(valid)
	return result, nil
}

func readXLSX(r io.Reader) ([]*productRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	sheet := f.GetSheetName(1)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	lines := f.GetRows(sheet)
	if len(lines) == 0 {
		return []*productRow{}, nil
	}

	header := lines[0]
	rows := make([]*productRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if blank(line) {
			continue
		}
		row := &productRow{}
		for col, name := range header {
			if col < len(line) {
				row.set(strings.TrimSpace(name), line[col])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func blank(line []string) bool {
	for _, cell := range line {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Export writes the whole catalog in the requested format.
func (s *ProductSheet) Export(ctx context.Context, format string, w io.Writer) error {
	products, err := s.products.Find(ctx, bson.M{}, store.Page{Sort: bson.D{{Key: "createdAt", Value: 1}}})
	if err != nil {
		return err
	}
	rows := make([]*productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, rowFromProduct(p))
	}

	switch format {
	case FormatCSV:
		return gocsv.Marshal(rows, w)
	case FormatXLSX:
		return writeXLSX(rows, w)
	}
	return invalid("format", "must be xlsx or csv")
}

func writeXLSX(rows []*productRow, w io.Writer) error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", productSheetName)

	header := make([]interface{}, len(sheetColumns))
	for i, c := range sheetColumns {
		header[i] = c
	}
	f.SetSheetRow(productSheetName, "A1", &header)
	for i, row := range rows {
		cells := row.cells()
		f.SetSheetRow(productSheetName, fmt.Sprintf("A%d", i+2), &cells)
	}
	return f.Write(w)
}
