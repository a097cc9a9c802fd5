package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedChunkDB creates a database shaped like the one the extraction tool
// writes and fills it with a handful of rows.
func seedChunkDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chunks.db")

	db, err := sqlx.Connect("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE excelparse (
		id INTEGER PRIMARY KEY,
		"row" INTEGER,
		"column" INTEGER,
		value TEXT,
		type TEXT,
		c_header TEXT,
		r_header TEXT,
		excel_RC TEXT,
		name TEXT,
		sheet TEXT
	)`)
	require.NoError(t, err)

	rows := [][]interface{}{
		{1, 2, 1, "Alice Johnson", "str", "Name", "1", "A2", "t1", "Employees"},
		{2, 2, 2, "25", "int", "Age", "1", "B2", "t1", "Employees"},
		{3, 3, 2, "30", "int", "Age", "2", "B3", "t1", "Employees"},
		{4, 2, 1, "Laptop", "str", "Product", "1", "A2", "t2", "Sales"},
		{5, 2, 2, "1,200", "int", "Q1_Sales", "1", "B2", "t2", "Sales"},
	}
	for _, r := range rows {
		_, err = db.Exec(`INSERT INTO excelparse (id, "row", "column", value, type, c_header, r_header, excel_RC, name, sheet)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, r...)
		require.NoError(t, err)
	}

	return path
}

func TestChunkRepositoryDetail(t *testing.T) {
	path := seedChunkDB(t)

	reader, err := NewChunkStore().Open(path)
	require.NoError(t, err)
	defer reader.Close()

	detail, err := reader.Detail(3)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Employees": 3, "Sales": 2}, detail.SheetCounts)
	assert.Equal(t, map[string]int{"Name": 1, "Age": 2, "Product": 1, "Q1_Sales": 1}, detail.ColumnCounts)
	assert.Equal(t, map[string]int{"str": 2, "int": 3}, detail.TypeCounts)
	assert.Equal(t, 5, detail.UniqueValues)

	// Sample capped at the requested limit, in id order.
	require.Len(t, detail.Sample, 3)
	assert.Equal(t, "Alice Johnson", detail.Sample[0].Value)
	assert.Equal(t, "Employees", detail.Sample[0].Sheet)

	// "25", "30" and "1,200" parse as numbers; names and products do not.
	assert.ElementsMatch(t, []float64{25, 30, 1200}, detail.NumericValues)
}

func TestOpenMissingDatabase(t *testing.T) {
	_, err := NewChunkStore().Open(filepath.Join(t.TempDir(), "absent.db"))
	assert.Error(t, err)
}

func TestDetailMissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sqlx.Connect("sqlite3", path)
	require.NoError(t, err)
	db.Close()

	reader, err := NewChunkStore().Open(path)
	require.NoError(t, err)
	defer reader.Close()

	_, err = reader.Detail(10)
	assert.Error(t, err)
}

func TestNumericValue(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" 3.5 ", 3.5, true},
		{"1,200", 1200, true},
		{"", 0, false},
		{"Laptop", 0, false},
	}
	for _, tt := range tests {
		got, ok := numericValue(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}
