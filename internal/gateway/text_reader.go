package gateway

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"grocery-reconciliation/internal/domain"
)

// readText reads a single receipt, one line per receipt line.
func (r *FileTransactionRepository) readText(path string) ([]domain.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open receipt file %s: %w", path, err)
	}
	defer file.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return []domain.Transaction{{ID: id, Lines: lines}}, nil
}
