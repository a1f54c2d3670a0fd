package file

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ninja0404/pump-signal/pkg/config/source"
)

// DefaultFormat 路径没有扩展名时按yaml解析
const DefaultFormat = "yaml"

type file struct {
	path   string
	format string
}

// NewSource 本地配置文件，格式取自扩展名
func NewSource(path string) source.Source {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		format = DefaultFormat
	}
	return &file{path: path, format: format}
}

func (f *file) Read() (*source.ChangeSet, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}

	cs := &source.ChangeSet{
		Format:    f.format,
		Source:    f.String(),
		Timestamp: info.ModTime(),
		Data:      data,
	}
	cs.Checksum = cs.Sum()
	return cs, nil
}

// Write 目录不存在时一并创建
func (f *file) Write(cs *source.ChangeSet) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.path, cs.Data, 0o644)
}

func (f *file) Watch() (source.Watcher, error) {
	if _, err := os.Stat(f.path); err != nil {
		return nil, err
	}
	return newWatcher(f)
}

func (f *file) String() string {
	return "file"
}
