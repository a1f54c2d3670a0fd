package file

import (
	"github.com/fsnotify/fsnotify"

	"github.com/ninja0404/pump-signal/pkg/config/source"
)

type watcher struct {
	f    *file
	fw   *fsnotify.Watcher
	exit chan struct{}
}

func newWatcher(f *file) (source.Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(f.path); err != nil {
		fw.Close()
		return nil, err
	}

	return &watcher{
		f:    f,
		fw:   fw,
		exit: make(chan struct{}),
	}, nil
}

func (w *watcher) Next() (*source.ChangeSet, error) {
	select {
	case <-w.exit:
		return nil, source.ErrWatcherStopped
	default:
	}

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return nil, source.ErrWatcherStopped
			}
			// 编辑器常用 rename+create 的方式保存，需要重新加入监听
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				_ = w.fw.Add(w.f.path)
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			cs, err := w.f.Read()
			if err != nil {
				continue
			}
			return cs, nil
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil, source.ErrWatcherStopped
			}
			return nil, err
		case <-w.exit:
			return nil, source.ErrWatcherStopped
		}
	}
}

func (w *watcher) Stop() error {
	select {
	case <-w.exit:
		return nil
	default:
		close(w.exit)
	}
	return w.fw.Close()
}
