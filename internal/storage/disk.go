package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/model"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/pkg/logger"
)

const (
	userFile     = "user.json"
	historyFile  = "history.json"
	settingsFile = "settings.json"
	memoryFile   = "memory.txt"
)

// DiskStorage 把每个键存成数据目录下的一个 JSON/文本文件。
// 写入走临时文件 + rename，避免半截文件。
type DiskStorage struct {
	dataDir string
	mu      sync.RWMutex
}

func NewDiskStorage(dataDir string) *DiskStorage {
	return &DiskStorage{dataDir: dataDir}
}

func (d *DiskStorage) Init() error {
	dirs := []string{
		d.dataDir,
		filepath.Join(d.dataDir, "backup"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageInit, err)
		}
	}

	logger.Info("Disk storage initialized successfully")
	return nil
}

func (d *DiskStorage) Close() error {
	return nil
}

func (d *DiskStorage) writeFile(name string, data []byte) error {
	path := filepath.Join(d.dataDir, name)
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrFileOperation, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("%w: %v", ErrFileOperation, err)
	}

	return nil
}

func (d *DiskStorage) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	return d.writeFile(name, data)
}

func (d *DiskStorage) readJSON(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(d.dataDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrFileOperation, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	return nil
}

func (d *DiskStorage) GetUser() (*model.UserProfile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var user model.UserProfile
	if err := d.readJSON(userFile, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (d *DiskStorage) SaveUser(user *model.UserProfile) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.writeJSON(userFile, user)
}

func (d *DiskStorage) GetHistory() ([]model.Message, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var messages []model.Message
	if err := d.readJSON(historyFile, &messages); err != nil {
		if err == ErrNotFound {
			return []model.Message{}, nil
		}
		return nil, err
	}

	return messages, nil
}

func (d *DiskStorage) SaveHistory(messages []model.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.writeJSON(historyFile, messages)
}

func (d *DiskStorage) ClearHistory() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := os.Remove(filepath.Join(d.dataDir, historyFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrFileOperation, err)
	}

	return nil
}

func (d *DiskStorage) GetSettings() (model.UserSettings, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	settings := model.DefaultSettings()
	if err := d.readJSON(settingsFile, &settings); err != nil {
		if err == ErrNotFound {
			return model.DefaultSettings(), nil
		}
		return model.UserSettings{}, err
	}

	return settings, nil
}

func (d *DiskStorage) SaveSettings(settings model.UserSettings) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.writeJSON(settingsFile, settings)
}

func (d *DiskStorage) GetMemory() (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(d.dataDir, memoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrFileOperation, err)
	}

	return string(data), nil
}

func (d *DiskStorage) SaveMemory(memory string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.writeFile(memoryFile, []byte(memory))
}

func (d *DiskStorage) Backup() error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	backupDir := filepath.Join(d.dataDir, "backup", fmt.Sprintf("backup_%d", time.Now().Unix()))

	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrFileOperation, err)
	}

	for _, name := range []string{userFile, historyFile, settingsFile, memoryFile} {
		src := filepath.Join(d.dataDir, name)

		data, err := os.ReadFile(src)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("%w: %v", ErrFileOperation, err)
		}

		if err := os.WriteFile(filepath.Join(backupDir, name), data, 0644); err != nil {
			return fmt.Errorf("%w: %v", ErrFileOperation, err)
		}
	}

	logger.Infof("Backup completed: %s", backupDir)
	return nil
}
