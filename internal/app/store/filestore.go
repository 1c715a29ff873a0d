package store

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aseptimu/linktable/internal/app/service"
	"go.uber.org/zap"
)

// FileStore хранит строки таблицы в JSON-lines файле.
// Каждое изменение дописывает полную строку в конец файла, при чтении побеждает последняя.
// При открытии файл уплотняется до одной строки на код.
type FileStore struct {
	mu       sync.Mutex
	filePath string
	data     map[string]tableRow
	now      func() time.Time
	logger   *zap.SugaredLogger
}

// NewFileStore открывает хранилище и загружает существующие записи.
func NewFileStore(filePath string, logger *zap.SugaredLogger) (*FileStore, error) {
	store := &FileStore{
		filePath: filePath,
		data:     make(map[string]tableRow),
		now:      time.Now,
		logger:   logger,
	}
	if err := store.loadFromFile(); err != nil {
		return nil, err
	}
	return store, nil
}

func (fs *FileStore) loadFromFile() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open %s: %w", fs.filePath, err)
	}
	defer file.Close()

	lineNo, lines := 0, 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		var row tableRow
		if err := json.Unmarshal(scanner.Bytes(), &row); err != nil {
			fs.logger.Warnw("Skipping malformed storage line", "path", fs.filePath, "line", lineNo, "error", err)
			continue
		}
		if row.PartitionKey != service.PartitionKey {
			continue
		}
		lines++
		fs.data[row.RowKey] = row
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", fs.filePath, err)
	}

	if lines > len(fs.data) {
		fs.logger.Infow("Compacting storage file", "path", fs.filePath, "lines", lines, "rows", len(fs.data))
		return fs.rewriteFile()
	}
	return nil
}

func (fs *FileStore) appendRow(row tableRow) error {
	file, err := os.OpenFile(fs.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	jsonData, err := json.Marshal(row)
	if err != nil {
		return err
	}
	_, err = file.Write(append(jsonData, '\n'))
	return err
}

func (fs *FileStore) rewriteFile() error {
	tmp := fs.filePath + ".tmp"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(file)
	for _, row := range fs.data {
		jsonData, err := json.Marshal(row)
		if err != nil {
			file.Close()
			return err
		}
		writer.Write(jsonData)
		writer.WriteString("\n")
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, fs.filePath)
}

// EnsureSchema создаёт каталог и пустой файл, если их ещё нет.
func (fs *FileStore) EnsureSchema(_ context.Context) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if dir := filepath.Dir(fs.filePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	file, err := os.OpenFile(fs.filePath, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return file.Close()
}

func (fs *FileStore) Ping(_ context.Context) error {
	_, err := os.Stat(fs.filePath)
	return err
}

func (fs *FileStore) Create(ctx context.Context, code, originalURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, exists := fs.data[code]; exists {
		return service.ErrCodeExists
	}

	row := newRow(code, originalURL, fs.now())
	if err := fs.appendRow(row); err != nil {
		return fmt.Errorf("append row %q: %w", code, err)
	}
	fs.data[code] = row
	return nil
}

func (fs *FileStore) GetAndIncrement(ctx context.Context, code string) (service.URLMapping, error) {
	if err := ctx.Err(); err != nil {
		return service.URLMapping{}, err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	row, exists := fs.data[code]
	if !exists {
		return service.URLMapping{}, service.ErrURLNotFound
	}

	row.Clicks++
	if err := fs.appendRow(row); err != nil {
		return service.URLMapping{}, fmt.Errorf("append row %q: %w", code, err)
	}
	fs.data[code] = row
	return row.mapping()
}

func (fs *FileStore) Close() error {
	return nil
}
