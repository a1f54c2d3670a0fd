package config

import (
	"errors"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/ninja0404/pump-signal/pkg/config/reader"
	"github.com/ninja0404/pump-signal/pkg/config/reader/json"
	"github.com/ninja0404/pump-signal/pkg/config/source"
)

// Config 多来源配置，后加载的来源覆盖先加载的
type Config interface {
	Load(sources ...source.Source) error
	Get(path ...string) reader.Value
	Scan(v interface{}) error
	Bytes() []byte
	Watch(onChange func(*source.ChangeSet)) error
	Close() error
}

type config struct {
	sync.RWMutex
	opts     Options
	sets     []*source.ChangeSet
	vals     reader.Values
	watchers []source.Watcher
}

// NewConfig 创建配置实例，初始值为空树
func NewConfig(opts ...Option) Config {
	options := Options{
		Reader: json.NewReader(),
	}
	for _, o := range opts {
		o(&options)
	}

	c := &config{opts: options}
	if err := c.reload(); err != nil {
		panic(err)
	}
	return c
}

func (c *config) Load(sources ...source.Source) error {
	c.Lock()
	defer c.Unlock()

	for _, s := range sources {
		cs, err := s.Read()
		if err != nil {
			return err
		}
		c.opts.Source = append(c.opts.Source, s)
		c.sets = append(c.sets, cs)
	}
	return c.reload()
}

func (c *config) reload() error {
	merged, err := c.opts.Reader.Merge(c.sets...)
	if err != nil {
		return err
	}
	vals, err := c.opts.Reader.Values(merged)
	if err != nil {
		return err
	}
	c.vals = vals
	return nil
}

func (c *config) Get(path ...string) reader.Value {
	c.RLock()
	defer c.RUnlock()
	return c.vals.Get(path...)
}

func (c *config) Scan(v interface{}) error {
	c.RLock()
	defer c.RUnlock()
	return c.vals.Scan(v)
}

func (c *config) Bytes() []byte {
	c.RLock()
	defer c.RUnlock()
	return c.vals.Bytes()
}

// Watch 监听所有来源，变更时回调；已加载的值保持不变
func (c *config) Watch(onChange func(*source.ChangeSet)) error {
	c.Lock()
	defer c.Unlock()

	for _, s := range c.opts.Source {
		w, err := s.Watch()
		if err != nil {
			return err
		}
		c.watchers = append(c.watchers, w)

		go func(w source.Watcher) {
			for {
				cs, err := w.Next()
				if errors.Is(err, source.ErrWatcherStopped) {
					return
				}
				if err != nil || cs == nil {
					continue
				}
				onChange(cs)
			}
		}(w)
	}
	return nil
}

func (c *config) Close() error {
	c.Lock()
	defer c.Unlock()

	var merr error
	for _, w := range c.watchers {
		if err := w.Stop(); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	c.watchers = nil
	return merr
}
