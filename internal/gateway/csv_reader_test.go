package gateway

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-reconciliation/internal/domain"
)

func TestFileTransactionRepository_ReadCSV(t *testing.T) {
	tests := []struct {
		name     string
		csvData  [][]string
		expected []domain.Transaction
		wantErr  bool
	}{
		{
			name: "lines grouped by transaction",
			csvData: [][]string{
				{"transaction_id", "line"},
				{"T1", "Store #00                             "},
				{"T1", "DAIRY                                 "},
				{"T2", "Store #55                             "},
				{"T1", "        BLACKCHRY 0% 4PK        5.99 F"},
			},
			expected: []domain.Transaction{
				{
					ID:     "T1",
					Index:  0,
					Source: "receipts.csv",
					Lines: []string{
						"Store #00                             ",
						"DAIRY                                 ",
						"        BLACKCHRY 0% 4PK        5.99 F",
					},
				},
				{
					ID:     "T2",
					Index:  1,
					Source: "receipts.csv",
					Lines:  []string{"Store #55                             "},
				},
			},
		},
		{
			name: "empty file with header only",
			csvData: [][]string{
				{"transaction_id", "line"},
			},
			expected: nil,
		},
		{
			name: "missing transaction id",
			csvData: [][]string{
				{"transaction_id", "line"},
				{"", "DAIRY                                 "},
			},
			wantErr: true,
		},
		{
			name: "wrong column count",
			csvData: [][]string{
				{"transaction_id", "line"},
				{"T1", "DAIRY", "extra"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTempCSV(t, "receipts.csv", tt.csvData)

			repo := NewFileTransactionRepository()
			got, err := repo.GetTransactions(context.Background(), []string{path})
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFileTransactionRepository_ReadCSV_FileErrors(t *testing.T) {
	repo := NewFileTransactionRepository()
	ctx := context.Background()

	t.Run("file not found", func(t *testing.T) {
		_, err := repo.GetTransactions(ctx, []string{"nonexistent_file.csv"})
		assert.Error(t, err)
	})

	t.Run("file with no header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.csv")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := repo.GetTransactions(ctx, []string{path})
		assert.Error(t, err)
	})
}

// Helper functions

func createTempCSV(t testing.TB, name string, data [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	writer := csv.NewWriter(file)
	require.NoError(t, writer.WriteAll(data))
	return path
}

func createTempFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Benchmark tests

func BenchmarkReadCSV(b *testing.B) {
	data := [][]string{{"transaction_id", "line"}}
	for i := 0; i < 1000; i++ {
		data = append(data, []string{
			"T" + strconv.Itoa(i%10),
			"        BLACKCHRY 0% 4PK        5.99 F",
		})
	}
	path := createTempCSV(b, "benchmark.csv", data)

	repo := NewFileTransactionRepository()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := repo.GetTransactions(ctx, []string{path}); err != nil {
			b.Fatalf("Error in benchmark: %v", err)
		}
	}
}
