package sheets

import (
	"context"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store used by tests and by STORE_DRIVER=memory
// for local development. It mimics the remote API's observable behavior:
// ragged rows, trailing-empty trimming on reads, and append-after-last-
// occupied-row semantics.
type MemStore struct {
	mu   sync.Mutex
	tabs map[string][][]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{tabs: make(map[string][][]string)}
}

// Seed places rows on a tab starting at the given 1-based row, column A.
// Intended for tests and dev fixtures.
func (m *MemStore) Seed(tab string, topRow int, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, row := range rows {
		for j, val := range row {
			m.set(tab, topRow+i, j, val)
		}
	}
}

func (m *MemStore) ReadRange(ctx context.Context, rng string) ([][]string, error) {
	r, err := parseA1(rng)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	grid := m.tabs[r.tab]

	startRow := r.startRow
	if startRow < 1 {
		startRow = 1
	}
	endRow := r.endRow
	if endRow < 1 || endRow > len(grid) {
		endRow = len(grid)
	}

	var out [][]string
	for rowNum := startRow; rowNum <= endRow; rowNum++ {
		line := grid[rowNum-1]
		var cells []string
		for col := r.startCol; col <= r.endCol; col++ {
			if col < len(line) {
				cells = append(cells, line[col])
			} else {
				cells = append(cells, "")
			}
		}
		out = append(out, trimTrailing(cells))
	}

	// The remote API never returns trailing empty rows.
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (m *MemStore) AppendRow(ctx context.Context, rng string, row []string) error {
	r, err := parseA1(rng)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	grid := m.tabs[r.tab]
	startRow := r.startRow
	if startRow < 1 {
		startRow = 1
	}

	// Append lands after the last occupied row within the range's columns.
	last := startRow - 1
	for rowNum := startRow; rowNum <= len(grid); rowNum++ {
		line := grid[rowNum-1]
		for col := r.startCol; col <= r.endCol && col < len(line); col++ {
			if line[col] != "" {
				last = rowNum
				break
			}
		}
	}

	target := last + 1
	for j, val := range row {
		m.set(r.tab, target, r.startCol+j, val)
	}
	return nil
}

func (m *MemStore) UpdateCell(ctx context.Context, cell string, value string) error {
	return m.UpdateRow(ctx, cell, []string{value})
}

func (m *MemStore) UpdateRow(ctx context.Context, rng string, row []string) error {
	r, err := parseA1(rng)
	if err != nil {
		return err
	}
	if r.startRow < 1 {
		return fmt.Errorf("range %q has no target row", rng)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for j, val := range row {
		m.set(r.tab, r.startRow, r.startCol+j, val)
	}
	return nil
}

func (m *MemStore) BatchUpdate(ctx context.Context, writes []CellWrite) error {
	for _, w := range writes {
		if err := m.UpdateRow(ctx, w.Range, w.Values); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemStore) EnsureSheet(ctx context.Context, title string, header []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tabs[title]; ok {
		return nil
	}
	m.tabs[title] = nil
	for j, val := range header {
		m.set(title, 1, j, val)
	}
	return nil
}

func (m *MemStore) Ping(ctx context.Context) error {
	return nil
}

// set grows the tab's grid as needed and writes one cell. Callers hold mu.
func (m *MemStore) set(tab string, row, col int, value string) {
	grid := m.tabs[tab]
	for len(grid) < row {
		grid = append(grid, nil)
	}
	line := grid[row-1]
	for len(line) <= col {
		line = append(line, "")
	}
	line[col] = value
	grid[row-1] = line
	m.tabs[tab] = grid
}

func trimTrailing(cells []string) []string {
	end := len(cells)
	for end > 0 && cells[end-1] == "" {
		end--
	}
	return cells[:end]
}
