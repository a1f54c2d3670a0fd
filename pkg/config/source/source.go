package source

import (
	"crypto/md5"
	"errors"
	"fmt"
	"time"
)

var ErrWatcherStopped = errors.New("watcher stopped")

// Source 配置来源，文件或远端配置中心
type Source interface {
	Read() (*ChangeSet, error)
	Write(*ChangeSet) error
	Watch() (Watcher, error)
	String() string
}

// ChangeSet 一次读取得到的原始配置数据
type ChangeSet struct {
	Data      []byte
	Checksum  string
	Format    string
	Source    string
	Timestamp time.Time
}

// Watcher 监听来源的变更
type Watcher interface {
	Next() (*ChangeSet, error)
	Stop() error
}

// Sum 计算数据的md5校验和
func (c *ChangeSet) Sum() string {
	h := md5.New()
	h.Write(c.Data)
	return fmt.Sprintf("%x", h.Sum(nil))
}
